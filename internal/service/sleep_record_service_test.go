package service

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/config"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRecordService(repo *MockSleepRecordRepository, userRepo *MockUserRepository, inv SummaryInvalidator) SleepRecordService {
	gen := analytics.NewGenerator(rand.New(rand.NewSource(42)), analytics.DefaultRanges())
	return NewSleepRecordService(repo, userRepo, gen, inv, analytics.DefaultTargetDuration, zap.NewNop())
}

func TestSleepRecordService_Create(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "Europe/Warsaw", SleepGoalMinutes: 480}

	night := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       *domain.CreateSleepRecordRequest
		setup     func(*MockSleepRecordRepository)
		wantErr   error
		wantExist bool
		wantScore int
	}{
		{
			name:      "eight hours scores 100",
			req:       &domain.CreateSleepRecordRequest{StartAt: night, EndAt: night.Add(8 * time.Hour)},
			wantScore: 100,
		},
		{
			name:      "six hours scores 80",
			req:       &domain.CreateSleepRecordRequest{StartAt: night, EndAt: night.Add(6 * time.Hour)},
			wantScore: 80,
		},
		{
			name:    "end before start",
			req:     &domain.CreateSleepRecordRequest{StartAt: night, EndAt: night.Add(-time.Hour)},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "overlapping sleep",
			req:  &domain.CreateSleepRecordRequest{StartAt: night.Add(-time.Hour), EndAt: night.Add(6 * time.Hour)},
			setup: func(repo *MockSleepRecordRepository) {
				repo.add(&domain.SleepRecord{UserID: userID, StartAt: night, EndAt: night.Add(8 * time.Hour)})
			},
			wantErr: domain.ErrOverlappingSleep,
		},
		{
			name: "idempotent request returns existing",
			req: &domain.CreateSleepRecordRequest{
				StartAt:         night,
				EndAt:           night.Add(8 * time.Hour),
				ClientRequestID: strPtr("req-123"),
			},
			setup: func(repo *MockSleepRecordRepository) {
				repo.add(&domain.SleepRecord{
					UserID:          userID,
					StartAt:         night,
					EndAt:           night.Add(8 * time.Hour),
					Score:           100,
					ClientRequestID: strPtr("req-123"),
				})
			},
			wantExist: true,
			wantScore: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockSleepRecordRepository()
			if tt.setup != nil {
				tt.setup(repo)
			}
			inv := newRecordingInvalidator()
			svc := newTestRecordService(repo, userRepo, inv)

			rec, existing, err := svc.Create(context.Background(), userID, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, inv.calls[userID])
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantExist, existing)
			assert.Equal(t, tt.wantScore, rec.Score)
			if !tt.wantExist {
				assert.Equal(t, 1, inv.calls[userID])
				assert.Equal(t, domain.SourceManual, rec.Source)
				assert.Equal(t, "Europe/Warsaw", rec.LocalTimezone)
			}
		})
	}
}

func TestSleepRecordService_Create_UsesSleepGoal(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC", SleepGoalMinutes: 360}

	svc := newTestRecordService(NewMockSleepRecordRepository(), userRepo, newRecordingInvalidator())
	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)

	rec, _, err := svc.Create(context.Background(), userID, &domain.CreateSleepRecordRequest{
		StartAt: start,
		EndAt:   start.Add(6 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, 100, rec.Score)
}

func TestSleepRecordService_Create_BackfillsMissingParts(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}
	svc := newTestRecordService(NewMockSleepRecordRepository(), userRepo, newRecordingInvalidator())

	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	t.Run("no sensor data is fully generated", func(t *testing.T) {
		rec, _, err := svc.Create(context.Background(), userID, &domain.CreateSleepRecordRequest{StartAt: start, EndAt: end})
		require.NoError(t, err)

		assert.True(t, rec.Synthetic)
		assert.NotEmpty(t, rec.Stages)
		assert.Greater(t, rec.RespiratoryRate, 0.0)

		snap := rec.Snapshot(time.UTC)
		assert.Equal(t, start, snap.Stages[0].Start)
		assert.Equal(t, end, snap.Stages[len(snap.Stages)-1].End)
		// every 30 minutes from start to end inclusive
		assert.Len(t, snap.HeartRate, 17)
		assert.Len(t, snap.BloodOxygen, 17)
	})

	t.Run("supplied sensor data is kept", func(t *testing.T) {
		nextStart := end.Add(16 * time.Hour)
		nextEnd := nextStart.Add(7 * time.Hour)
		rate := 16.5

		rec, _, err := svc.Create(context.Background(), userID, &domain.CreateSleepRecordRequest{
			StartAt: nextStart,
			EndAt:   nextEnd,
			Stages: []domain.StageInput{
				{Stage: analytics.StageDeep, StartAt: nextStart, EndAt: nextEnd},
			},
			HeartRate:       []domain.SampleInput{{Timestamp: nextStart, Value: 120}},
			RespiratoryRate: &rate,
			Source:          domain.SourceSensor,
		})
		require.NoError(t, err)

		snap := rec.Snapshot(time.UTC)
		require.Len(t, snap.Stages, 1)
		assert.Equal(t, analytics.StageDeep, snap.Stages[0].Stage)
		require.Len(t, snap.HeartRate, 1)
		assert.Equal(t, 120.0, snap.HeartRate[0].Value)
		assert.Equal(t, 16.5, snap.RespiratoryRate)
		// only the oxygen series was missing
		assert.NotEmpty(t, snap.BloodOxygen)
		assert.True(t, rec.Synthetic)
		assert.Equal(t, domain.SourceSensor, rec.Source)
	})
}

func TestSleepRecordService_GetAndDelete(t *testing.T) {
	userID, otherID := uuid.New(), uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID}
	userRepo.users[otherID] = &domain.User{ID: otherID}

	repo := NewMockSleepRecordRepository()
	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	rec := &domain.SleepRecord{UserID: userID, StartAt: start, EndAt: start.Add(8 * time.Hour)}
	repo.add(rec)

	inv := newRecordingInvalidator()
	svc := newTestRecordService(repo, userRepo, inv)

	_, err := svc.Get(context.Background(), otherID, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.Get(context.Background(), userID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	assert.ErrorIs(t, svc.Delete(context.Background(), otherID, rec.ID), domain.ErrNotFound)
	assert.Zero(t, inv.calls[otherID])

	require.NoError(t, svc.Delete(context.Background(), userID, rec.ID))
	assert.Equal(t, 1, inv.calls[userID])

	_, err = svc.Get(context.Background(), userID, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSleepRecordService_List_DefaultsAndCursor(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	records := make([]domain.SleepRecord, 25)
	base := time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)
	for i := range records {
		start := base.AddDate(0, 0, -i)
		records[i] = domain.SleepRecord{ID: uuid.New(), UserID: userID, StartAt: start, EndAt: start.Add(8 * time.Hour)}
	}

	repo := NewMockSleepRecordRepository()
	repo.listResult = records
	svc := newTestRecordService(repo, userRepo, newRecordingInvalidator())

	resp, err := svc.List(context.Background(), userID, domain.SleepRecordFilter{})
	require.NoError(t, err)

	assert.Len(t, resp.Data, pagination.DefaultLimit)
	assert.True(t, resp.Pagination.HasMore)

	cursor, err := pagination.DecodeCursor(resp.Pagination.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, records[pagination.DefaultLimit-1].ID, cursor.ID)
	assert.True(t, cursor.StartAt.Equal(records[pagination.DefaultLimit-1].StartAt))
}

func TestSleepRecordService_List_Errors(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID}
	svc := newTestRecordService(NewMockSleepRecordRepository(), userRepo, newRecordingInvalidator())

	_, err := svc.List(context.Background(), uuid.New(), domain.SleepRecordFilter{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.List(context.Background(), userID, domain.SleepRecordFilter{From: &from, To: timePtr(from.AddDate(0, 0, -1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.List(context.Background(), userID, domain.SleepRecordFilter{Cursor: "not-a-cursor"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	userRepo.SetError(errors.New("db down"))
	_, err = svc.List(context.Background(), userID, domain.SleepRecordFilter{})
	assert.EqualError(t, err, "db down")
}

func TestSleepRecordService_Create_UsesConfiguredTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target_duration: 7h\n"), 0o600))
	cfg, err := config.LoadAnalytics(path)
	require.NoError(t, err)

	userRepo := NewMockUserRepository()
	users := NewUserService(userRepo, cfg.TargetDuration)
	user, err := users.Create(context.Background(), &domain.CreateUserRequest{Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, 420, user.SleepGoalMinutes)

	gen := analytics.NewGenerator(rand.New(rand.NewSource(1)), cfg.Ranges)
	records := NewSleepRecordService(NewMockSleepRecordRepository(), userRepo, gen, newRecordingInvalidator(), cfg.TargetDuration, zap.NewNop())

	night := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	rec, _, err := records.Create(context.Background(), user.ID, &domain.CreateSleepRecordRequest{StartAt: night, EndAt: night.Add(7 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 100, rec.Score)
}

func TestSleepRecordService_Create_GoalFallsBackToConfiguredTarget(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	gen := analytics.NewGenerator(rand.New(rand.NewSource(1)), analytics.DefaultRanges())
	records := NewSleepRecordService(NewMockSleepRecordRepository(), userRepo, gen, newRecordingInvalidator(), 6*time.Hour, zap.NewNop())

	night := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	rec, _, err := records.Create(context.Background(), userID, &domain.CreateSleepRecordRequest{StartAt: night, EndAt: night.Add(6 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 100, rec.Score)
}
