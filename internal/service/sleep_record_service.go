package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/blaisecz/sleep-journal/pkg/pagination"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SleepRecordService interface {
	// Create stores a new record. The bool is true when an earlier record
	// with the same client_request_id was returned instead.
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, bool, error)
	Get(ctx context.Context, userID, recordID uuid.UUID) (*domain.SleepRecord, error)
	Delete(ctx context.Context, userID, recordID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error)
}

// SummaryInvalidator drops cached summaries after a user's records change.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type sleepRecordService struct {
	repo        repository.SleepRecordRepository
	userRepo    repository.UserRepository
	invalidator SummaryInvalidator
	target      time.Duration
	logger      *zap.Logger

	mu        sync.Mutex // guards generator
	generator *analytics.Generator
}

func NewSleepRecordService(
	repo repository.SleepRecordRepository,
	userRepo repository.UserRepository,
	generator *analytics.Generator,
	invalidator SummaryInvalidator,
	target time.Duration,
	logger *zap.Logger,
) SleepRecordService {
	return &sleepRecordService{
		repo:        repo,
		userRepo:    userRepo,
		invalidator: invalidator,
		target:      target,
		logger:      logger,
		generator:   generator,
	}
}

func (s *sleepRecordService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, bool, error) {
	// Load user to confirm existence and get their home timezone and goal
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if !req.EndAt.After(req.StartAt) {
		return nil, false, fmt.Errorf("end must be after start: %w", domain.ErrInvalidInput)
	}

	localTZ := user.Timezone
	if req.LocalTimezone != nil && *req.LocalTimezone != "" {
		localTZ = *req.LocalTimezone
	}
	if localTZ == "" {
		localTZ = "UTC"
	}

	startUTC := req.StartAt.UTC()
	endUTC := req.EndAt.UTC()

	if req.ClientRequestID != nil && *req.ClientRequestID != "" {
		existing, err := s.repo.GetByClientRequestID(ctx, userID, *req.ClientRequestID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, userID, startUTC, endUTC)
	if err != nil {
		return nil, false, err
	}
	if hasOverlap {
		return nil, false, domain.ErrOverlappingSleep
	}

	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	record := &domain.SleepRecord{
		ID:              uuid.New(),
		UserID:          userID,
		StartAt:         startUTC,
		EndAt:           endUTC,
		Score:           analytics.Score(endUTC.Sub(startUTC), user.SleepGoal(s.target)),
		Source:          source,
		LocalTimezone:   localTZ,
		ClientRequestID: req.ClientRequestID,
	}

	physiology, synthetic := s.backfill(req.SensorRecord())
	record.ApplyPhysiology(physiology)
	record.Synthetic = synthetic

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, false, err
	}

	s.invalidator.Invalidate(ctx, userID)

	s.logger.Info("sleep record created",
		zap.String("user_id", userID.String()),
		zap.String("record_id", record.ID.String()),
		zap.String("source", string(record.Source)),
		zap.Int("score", record.Score),
		zap.Bool("synthetic", record.Synthetic),
	)

	return record, false, nil
}

func (s *sleepRecordService) backfill(rec analytics.Record) (analytics.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generator.Backfill(rec)
}

func (s *sleepRecordService) Get(ctx context.Context, userID, recordID uuid.UUID) (*domain.SleepRecord, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	// Records of other users are reported as missing
	if record.UserID != userID {
		return nil, domain.ErrNotFound
	}

	return record, nil
}

func (s *sleepRecordService) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, recordID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, recordID); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, userID)

	s.logger.Info("sleep record deleted",
		zap.String("user_id", userID.String()),
		zap.String("record_id", recordID.String()),
	)
	return nil
}

func (s *sleepRecordService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("from must not be after to: %w", domain.ErrInvalidInput)
	}

	if _, err := pagination.DecodeCursor(filter.Cursor); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}

	records, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	records, hasMore := pagination.Page(records, filter.Limit)

	response := &domain.SleepRecordListResponse{
		Data: make([]domain.SleepRecordResponse, len(records)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i := range records {
		response.Data[i] = records[i].ToResponse()
	}

	if hasMore && len(records) > 0 {
		last := records[len(records)-1]
		cursor := &pagination.Cursor{
			ID:      last.ID,
			StartAt: last.StartAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
