package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blaisecz/sleep-journal/internal/api/validation"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultTopic receives one JSON session per message; the second level
	// is the user id.
	DefaultTopic = "sleepjournal/+/sessions"

	// DefaultHandleTimeout bounds the work done for a single message.
	DefaultHandleTimeout = 10 * time.Second

	resultSuffix = "/result"
)

var errBadTopic = errors.New("topic does not carry a user id")

// SessionResult is published to "<session topic>/result" after each message.
type SessionResult struct {
	ClientRequestID *string    `json:"client_request_id,omitempty"`
	RecordID        *uuid.UUID `json:"record_id,omitempty"`
	Score           *int       `json:"score,omitempty"`
	Duplicate       bool       `json:"duplicate,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// SessionSubscriber turns wearable sessions into sensor sleep records.
type SessionSubscriber struct {
	client  Client
	records service.SleepRecordService
	topic   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewSessionSubscriber(client Client, records service.SleepRecordService, topic string, timeout time.Duration, logger *zap.Logger) *SessionSubscriber {
	if topic == "" {
		topic = DefaultTopic
	}
	if timeout <= 0 {
		timeout = DefaultHandleTimeout
	}
	return &SessionSubscriber{
		client:  client,
		records: records,
		topic:   topic,
		timeout: timeout,
		logger:  logger,
	}
}

// Start subscribes with QoS 1. Messages are handled on the client's goroutine.
func (s *SessionSubscriber) Start() error {
	if err := s.client.Subscribe(s.topic, 1, s.handleMessage); err != nil {
		return err
	}
	s.logger.Info("session subscriber started", zap.String("topic", s.topic))
	return nil
}

func (s *SessionSubscriber) Stop() {
	if err := s.client.Unsubscribe(s.topic); err != nil {
		s.logger.Warn("failed to unsubscribe", zap.String("topic", s.topic), zap.Error(err))
	}
	s.logger.Info("session subscriber stopped")
}

func (s *SessionSubscriber) handleMessage(msg Message) {
	defer msg.Ack()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result := s.process(ctx, msg.Topic(), msg.Payload())

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to encode session result", zap.Error(err))
		return
	}
	if err := s.client.Publish(msg.Topic()+resultSuffix, 1, false, payload); err != nil {
		s.logger.Warn("failed to publish session result", zap.String("topic", msg.Topic()), zap.Error(err))
	}
}

func (s *SessionSubscriber) process(ctx context.Context, topic string, payload []byte) SessionResult {
	userID, err := UserIDFromTopic(topic)
	if err != nil {
		s.logger.Warn("dropping session", zap.String("topic", topic), zap.Error(err))
		return SessionResult{Error: err.Error()}
	}

	var req domain.CreateSleepRecordRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.logger.Warn("malformed session payload", zap.String("topic", topic), zap.Error(err))
		return SessionResult{Error: "malformed payload"}
	}
	result := SessionResult{ClientRequestID: req.ClientRequestID}

	if fieldErrors := validation.Validate(&req); len(fieldErrors) > 0 {
		msgs := make([]string, len(fieldErrors))
		for i, fe := range fieldErrors {
			msgs[i] = fe.Field + " " + fe.Message
		}
		result.Error = strings.Join(msgs, "; ")
		s.logger.Warn("invalid session", zap.String("user_id", userID.String()), zap.String("errors", result.Error))
		return result
	}

	req.Source = domain.SourceSensor
	record, duplicate, err := s.records.Create(ctx, userID, &req)
	if err != nil {
		result.Error = err.Error()
		s.logger.Warn("session rejected",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return result
	}

	result.RecordID = &record.ID
	result.Score = &record.Score
	result.Duplicate = duplicate
	return result
}

// UserIDFromTopic reads the user id from a "<prefix>/<user id>/sessions" topic.
func UserIDFromTopic(topic string) (uuid.UUID, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 3 {
		return uuid.Nil, fmt.Errorf("%q: %w", topic, errBadTopic)
	}
	id, err := uuid.Parse(parts[len(parts)-2])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q: %w", topic, errBadTopic)
	}
	return id, nil
}
