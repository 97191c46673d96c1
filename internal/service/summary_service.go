package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/cache"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultSummaryTTL bounds how stale a cached summary can get. Window edges
// move with the clock, so even without writes a summary eventually expires.
const DefaultSummaryTTL = 10 * time.Minute

// SummaryService computes period summaries and keeps them in the KV store.
type SummaryService interface {
	SummaryInvalidator
	// Summary aggregates the user's records over the period ending now.
	Summary(ctx context.Context, userID uuid.UUID, period analytics.Period) (*domain.SummaryResponse, error)
	// Compute bypasses the cache and returns the raw aggregate together
	// with the records inside the window, oldest first.
	Compute(ctx context.Context, user *domain.User, period analytics.Period) (analytics.Summary, []domain.SleepRecord, error)
}

type summaryService struct {
	recordRepo repository.SleepRecordRepository
	userRepo   repository.UserRepository
	store      cache.KVStore
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewSummaryService(
	recordRepo repository.SleepRecordRepository,
	userRepo repository.UserRepository,
	store cache.KVStore,
	ttl time.Duration,
	logger *zap.Logger,
) SummaryService {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &summaryService{
		recordRepo: recordRepo,
		userRepo:   userRepo,
		store:      store,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *summaryService) Summary(ctx context.Context, userID uuid.UUID, period analytics.Period) (*domain.SummaryResponse, error) {
	tracer := otel.Tracer("sleep-journal-api/summary")
	ctx, span := tracer.Start(ctx, "SummaryService.Summary",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("summary.period", string(period)),
		),
	)
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The generation is read before computing so a concurrent Invalidate
	// leaves this result under a key nobody reads again.
	generation, cacheable := s.generation(ctx, userID)
	key := cache.SummaryKey(userID, generation, period)
	if cacheable {
		if cached, ok := s.fromCache(ctx, key); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return cached, nil
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	summary, _, err := s.Compute(ctx, user, period)
	if err != nil {
		return nil, err
	}
	resp := domain.NewSummaryResponse(summary)

	span.SetAttributes(attribute.Int("summary.nights", summary.Nights))
	if outputJSON, err := json.Marshal(resp); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
		if cacheable {
			if err := s.store.Set(ctx, key, string(outputJSON), s.ttl); err != nil {
				s.logger.Warn("summary cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return &resp, nil
}

func (s *summaryService) Compute(ctx context.Context, user *domain.User, period analytics.Period) (analytics.Summary, []domain.SleepRecord, error) {
	// Calendar windows follow the user's home zone
	now := s.now().In(user.Location())

	var from *time.Time
	if start := analytics.WindowStart(period, now); !start.IsZero() {
		from = &start
	}

	records, err := s.recordRepo.ListInRange(ctx, user.ID, from, &now)
	if err != nil {
		return analytics.Summary{}, nil, err
	}

	// Bed and wake times are read on each record's own local clock
	snapshots := make([]analytics.Record, len(records))
	for i := range records {
		snapshots[i] = records[i].Snapshot(nil)
	}

	return analytics.Summarize(snapshots, period, now), records, nil
}

func (s *summaryService) fromCache(ctx context.Context, key string) (*domain.SummaryResponse, bool) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var resp domain.SummaryResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		s.logger.Warn("summary cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &resp, true
}

// generation returns the user's current summary generation. The bool is
// false when the store could not be read and caching should be skipped.
func (s *summaryService) generation(ctx context.Context, userID uuid.UUID) (string, bool) {
	gen, err := s.store.Get(ctx, cache.GenerationKey(userID))
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, cache.ErrCacheMiss):
		return cache.InitialGeneration, true
	default:
		s.logger.Warn("summary generation read failed", zap.String("user_id", userID.String()), zap.Error(err))
		return "", false
	}
}

// Invalidate moves the user to a fresh generation and drops the summaries
// of the old one.
func (s *summaryService) Invalidate(ctx context.Context, userID uuid.UUID) {
	old, _ := s.generation(ctx, userID)

	if err := s.store.Set(ctx, cache.GenerationKey(userID), uuid.NewString(), 0); err != nil {
		s.logger.Warn("summary generation bump failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	if old == "" {
		return
	}
	if err := s.store.Delete(ctx, cache.SummaryKeys(userID, old)...); err != nil {
		s.logger.Warn("summary cache invalidation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
