package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/cache"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_Export(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	repo := NewMockSleepRecordRepository()
	start := time.Date(2024, 1, 18, 23, 0, 0, 0, time.UTC)
	repo.add(&domain.SleepRecord{
		UserID:        userID,
		StartAt:       start,
		EndAt:         start.Add(8 * time.Hour),
		Score:         100,
		Source:        domain.SourceSensor,
		LocalTimezone: "UTC",
		Stages: []domain.StageSegment{
			{Stage: analytics.StageLight, StartAt: start, EndAt: start.Add(3 * time.Hour)},
			{Stage: analytics.StageDeep, StartAt: start.Add(3 * time.Hour), EndAt: start.Add(8 * time.Hour)},
		},
	})
	addNight(repo, userID, 19, 6*time.Hour)

	summaries := newTestSummaryService(repo, userRepo, cache.NewMemoryKVStore())
	svc := NewExportService(userRepo, summaries).(*exportService)
	svc.now = func() time.Time { return summaryNow }

	export, err := svc.Export(context.Background(), userID, analytics.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, "sleep-journal-week-20240120.xlsx", export.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{recordsSheet, stagesSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(recordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, recordsHeader, rows[0])
	assert.Equal(t, []string{"2024-01-18", "23:00", "07:00", "8h 0m", "8", "100", "excellent", "sensor", "No", "0", "UTC"}, rows[1])
	assert.Equal(t, "80", rows[2][5])

	stages, err := f.GetRows(stagesSheet)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, []string{"2024-01-18", "light", "2024-01-18 23:00", "2024-01-19 02:00", "180"}, stages[1])

	period, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "week", period)
	nights, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", nights)
	score, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "excellent (90)", score)
}

func TestExportService_EmptyPeriod(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	summaries := newTestSummaryService(NewMockSleepRecordRepository(), userRepo, cache.NewMemoryKVStore())
	export, err := NewExportService(userRepo, summaries).Export(context.Background(), userID, analytics.PeriodMonth)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(export.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(recordsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	score, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, analytics.Placeholder, score)
}

func TestExportService_UnknownUser(t *testing.T) {
	summaries := newTestSummaryService(NewMockSleepRecordRepository(), NewMockUserRepository(), cache.NewMemoryKVStore())
	_, err := NewExportService(NewMockUserRepository(), summaries).Export(context.Background(), uuid.New(), analytics.PeriodWeek)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
