package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TrackingService runs start/stop sleep sessions. A saved session becomes
// a regular record with source "tracked".
type TrackingService interface {
	Start(ctx context.Context, userID uuid.UUID) (*domain.TrackingStatusResponse, error)
	Status(ctx context.Context, userID uuid.UUID) (*domain.TrackingStatusResponse, error)
	Stop(ctx context.Context, userID uuid.UUID, req *domain.StopTrackingRequest) (*domain.StopTrackingResponse, error)
}

type trackingService struct {
	userRepo repository.UserRepository
	records  SleepRecordService
	logger   *zap.Logger
	now      func() time.Time
}

func NewTrackingService(userRepo repository.UserRepository, records SleepRecordService, logger *zap.Logger) TrackingService {
	return &trackingService{
		userRepo: userRepo,
		records:  records,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *trackingService) Start(ctx context.Context, userID uuid.UUID) (*domain.TrackingStatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TrackingStartedAt != nil {
		return nil, domain.ErrTrackingActive
	}

	startedAt := s.now().UTC().Truncate(time.Second)
	if err := s.userRepo.StartTracking(ctx, userID, startedAt); err != nil {
		return nil, err
	}

	s.logger.Info("sleep tracking started", zap.String("user_id", userID.String()))

	return s.status(&startedAt), nil
}

func (s *trackingService) Status(ctx context.Context, userID uuid.UUID) (*domain.TrackingStatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.status(user.TrackingStartedAt), nil
}

func (s *trackingService) status(startedAt *time.Time) *domain.TrackingStatusResponse {
	if startedAt == nil {
		return &domain.TrackingStatusResponse{Tracking: false}
	}

	elapsed := s.now().Sub(*startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return &domain.TrackingStatusResponse{
		Tracking:       true,
		StartedAt:      startedAt,
		Elapsed:        analytics.FormatDuration(elapsed),
		ElapsedSeconds: int64(elapsed / time.Second),
	}
}

// Stop ends the active session. Unless the session is discarded, the record
// is saved before the session is cleared so a rejected record (overlap,
// zero length) leaves the session running. The record is keyed by the
// session start, so a retry after a failed clear returns the saved record.
func (s *trackingService) Stop(ctx context.Context, userID uuid.UUID, req *domain.StopTrackingRequest) (*domain.StopTrackingResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TrackingStartedAt == nil {
		return nil, domain.ErrTrackingInactive
	}
	startedAt := *user.TrackingStartedAt

	if req.Discard {
		if err := s.userRepo.StopTracking(ctx, userID, startedAt); err != nil {
			return nil, err
		}
		s.logger.Info("sleep tracking discarded", zap.String("user_id", userID.String()))
		return &domain.StopTrackingResponse{Saved: false}, nil
	}

	endAt := s.now().UTC()
	if req.EndAt != nil {
		endAt = req.EndAt.UTC()
	}
	if !endAt.After(startedAt) {
		return nil, fmt.Errorf("session must end after %s: %w", startedAt.Format(time.RFC3339), domain.ErrInvalidInput)
	}

	requestID := sessionRequestID(startedAt)
	record, duplicate, err := s.records.Create(ctx, userID, &domain.CreateSleepRecordRequest{
		StartAt:         startedAt,
		EndAt:           endAt,
		LocalTimezone:   req.LocalTimezone,
		Source:          domain.SourceTracked,
		ClientRequestID: &requestID,
	})
	if err != nil {
		return nil, err
	}
	if duplicate {
		s.logger.Info("tracked session already saved, clearing session",
			zap.String("user_id", userID.String()),
			zap.String("record_id", record.ID.String()),
		)
	}

	if err := s.userRepo.StopTracking(ctx, userID, startedAt); err != nil && !errors.Is(err, domain.ErrTrackingInactive) {
		return nil, err
	}

	resp := record.ToResponse()
	return &domain.StopTrackingResponse{Saved: true, Record: &resp}, nil
}

func sessionRequestID(startedAt time.Time) string {
	return "tracking-" + startedAt.UTC().Format(time.RFC3339)
}
