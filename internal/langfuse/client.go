// Package langfuse talks to the Langfuse public API: trace and score
// ingestion for the coaching features, and prompt retrieval for the LLM.
// Without credentials the client is a no-op.
package langfuse

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// asyncTimeout bounds each fire-and-forget ingestion call.
const asyncTimeout = 5 * time.Second

const ingestionPath = "/api/public/ingestion"

// Client is the interface for Langfuse operations.
type Client interface {
	// IsEnabled returns true if Langfuse is configured and enabled.
	IsEnabled() bool
	// CreateTrace records a trace and returns its ID.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore attaches a score to an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
	// Flush waits until background ingestion calls finish or ctx is done.
	Flush(ctx context.Context) error
}

// TraceInput contains the data for creating a trace.
type TraceInput struct {
	ID       string // generated when empty
	UserID   string
	Name     string
	Input    any
	Output   any
	Tags     []string
	Metadata map[string]any
}

// ScoreInput contains the data for creating a score.
type ScoreInput struct {
	TraceID string
	Name    string
	Value   float64
	Comment string
}

type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
}

// Enabled reports whether every credential is present.
func (c Config) Enabled() bool {
	return c.BaseURL != "" && c.PublicKey != "" && c.SecretKey != ""
}

type client struct {
	http        *resty.Client
	environment string
	enabled     bool
	logger      *zap.Logger
	now         func() time.Time

	inflight sync.WaitGroup
}

// NewClient creates a Langfuse client. Missing credentials yield a
// disabled client whose calls succeed without doing anything.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("langfuse")

	enabled := cfg.Enabled()
	switch {
	case enabled:
		logger.Info("langfuse enabled",
			zap.String("base_url", cfg.BaseURL),
			zap.String("environment", cfg.Environment),
		)
	case cfg.BaseURL == "":
		logger.Info("langfuse disabled: LANGFUSE_BASE_URL is empty")
	default:
		logger.Info("langfuse disabled: credentials are missing")
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(10*time.Second).
		SetBasicAuth(cfg.PublicKey, cfg.SecretKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &client{
		http:        httpClient,
		environment: cfg.Environment,
		enabled:     enabled,
		logger:      logger,
		now:         time.Now,
	}
}

func (c *client) IsEnabled() bool {
	return c.enabled
}

func (c *client) CreateTrace(ctx context.Context, in TraceInput) (string, error) {
	if !c.enabled {
		return "", nil
	}

	traceID := in.ID
	if traceID == "" {
		traceID = uuid.New().String()
	}

	metadata := in.Metadata
	if c.environment != "" {
		if metadata == nil {
			metadata = make(map[string]any)
		}
		metadata["environment"] = c.environment
	}

	c.dispatch(ingestionEvent{
		ID:        uuid.New().String(),
		Type:      "trace-create",
		Timestamp: c.now().UTC().Format(time.RFC3339Nano),
		Body: traceBody{
			ID:       traceID,
			Name:     in.Name,
			UserID:   in.UserID,
			Input:    in.Input,
			Output:   in.Output,
			Tags:     in.Tags,
			Metadata: metadata,
		},
	})

	return traceID, nil
}

func (c *client) CreateScore(ctx context.Context, in ScoreInput) error {
	if !c.enabled {
		return nil
	}
	if in.TraceID == "" {
		return fmt.Errorf("score %q: trace id is required", in.Name)
	}

	c.dispatch(ingestionEvent{
		ID:        uuid.New().String(),
		Type:      "score-create",
		Timestamp: c.now().UTC().Format(time.RFC3339Nano),
		Body: scoreBody{
			ID:      uuid.New().String(),
			TraceID: in.TraceID,
			Name:    in.Name,
			Value:   in.Value,
			Comment: in.Comment,
		},
	})

	return nil
}

// dispatch sends the event in the background so request handlers never
// wait on Langfuse. Failures are logged; Flush waits for pending sends.
func (c *client) dispatch(event ingestionEvent) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := c.sendBatch(ctx, []ingestionEvent{event}); err != nil {
			c.logger.Warn("langfuse ingestion failed",
				zap.String("event_type", event.Type),
				zap.Error(err),
			)
		}
	}()
}

func (c *client) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush langfuse: %w", ctx.Err())
	}
}

func (c *client) sendBatch(ctx context.Context, events []ingestionEvent) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(batchPayload{Batch: events}).
		Post(ingestionPath)
	if err != nil {
		return fmt.Errorf("send ingestion batch: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode())
	}
	return nil
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	Input    any            `json:"input,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
