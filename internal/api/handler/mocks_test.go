package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// serve routes a single request through a chi router so URL params resolve.
func serve(method, pattern, target, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sampleRecord(userID uuid.UUID) *domain.SleepRecord {
	start := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC)
	return &domain.SleepRecord{
		ID:            uuid.New(),
		UserID:        userID,
		StartAt:       start,
		EndAt:         start.Add(8 * time.Hour),
		Score:         100,
		Source:        domain.SourceManual,
		LocalTimezone: "Europe/Prague",
		CreatedAt:     time.Now(),
	}
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	createFunc     func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	updateGoalFunc func(ctx context.Context, id uuid.UUID, req *domain.UpdateSleepGoalRequest) (*domain.User, error)
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.User{ID: uuid.New(), Timezone: req.Timezone, SleepGoalMinutes: domain.DefaultSleepGoalMinutes}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserService) UpdateSleepGoal(ctx context.Context, id uuid.UUID, req *domain.UpdateSleepGoalRequest) (*domain.User, error) {
	if m.updateGoalFunc != nil {
		return m.updateGoalFunc(ctx, id, req)
	}
	return &domain.User{ID: id, Timezone: "UTC", SleepGoalMinutes: req.TotalMinutes()}, nil
}

// MockSleepRecordService is a mock implementation of SleepRecordService
type MockSleepRecordService struct {
	createFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, bool, error)
	getFunc    func(ctx context.Context, userID, recordID uuid.UUID) (*domain.SleepRecord, error)
	deleteFunc func(ctx context.Context, userID, recordID uuid.UUID) error
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error)
}

func (m *MockSleepRecordService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSleepRecordRequest) (*domain.SleepRecord, bool, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	rec := sampleRecord(userID)
	rec.StartAt, rec.EndAt = req.StartAt, req.EndAt
	rec.Source = req.Source
	return rec, false, nil
}

func (m *MockSleepRecordService) Get(ctx context.Context, userID, recordID uuid.UUID) (*domain.SleepRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, recordID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockSleepRecordService) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, recordID)
	}
	return nil
}

func (m *MockSleepRecordService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepRecordListResponse{
		Data:       []domain.SleepRecordResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockTrackingService is a mock implementation of TrackingService
type MockTrackingService struct {
	startFunc  func(ctx context.Context, userID uuid.UUID) (*domain.TrackingStatusResponse, error)
	statusFunc func(ctx context.Context, userID uuid.UUID) (*domain.TrackingStatusResponse, error)
	stopFunc   func(ctx context.Context, userID uuid.UUID, req *domain.StopTrackingRequest) (*domain.StopTrackingResponse, error)
}

func (m *MockTrackingService) Start(ctx context.Context, userID uuid.UUID) (*domain.TrackingStatusResponse, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, userID)
	}
	now := time.Now().UTC()
	return &domain.TrackingStatusResponse{Tracking: true, StartedAt: &now}, nil
}

func (m *MockTrackingService) Status(ctx context.Context, userID uuid.UUID) (*domain.TrackingStatusResponse, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, userID)
	}
	return &domain.TrackingStatusResponse{Tracking: false}, nil
}

func (m *MockTrackingService) Stop(ctx context.Context, userID uuid.UUID, req *domain.StopTrackingRequest) (*domain.StopTrackingResponse, error) {
	if m.stopFunc != nil {
		return m.stopFunc(ctx, userID, req)
	}
	return &domain.StopTrackingResponse{Saved: false}, nil
}

// MockSummaryService is a mock implementation of SummaryService
type MockSummaryService struct {
	summaryFunc func(ctx context.Context, userID uuid.UUID, period analytics.Period) (*domain.SummaryResponse, error)
}

func (m *MockSummaryService) Summary(ctx context.Context, userID uuid.UUID, period analytics.Period) (*domain.SummaryResponse, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, userID, period)
	}
	resp := domain.NewSummaryResponse(analytics.EmptySummary(period))
	return &resp, nil
}

func (m *MockSummaryService) Compute(ctx context.Context, user *domain.User, period analytics.Period) (analytics.Summary, []domain.SleepRecord, error) {
	return analytics.EmptySummary(period), nil, nil
}

func (m *MockSummaryService) Invalidate(ctx context.Context, userID uuid.UUID) {}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	exportFunc func(ctx context.Context, userID uuid.UUID, period analytics.Period) (*service.Export, error)
}

func (m *MockExportService) Export(ctx context.Context, userID uuid.UUID, period analytics.Period) (*service.Export, error) {
	if m.exportFunc != nil {
		return m.exportFunc(ctx, userID, period)
	}
	return &service.Export{Filename: "sleep-journal-" + string(period) + ".xlsx", Content: []byte("PK")}, nil
}

// MockCoachService is a mock implementation of CoachService
type MockCoachService struct {
	feedbackFunc func(ctx context.Context, userID uuid.UUID) (*domain.CoachFeedbackResponse, error)
	weeklyFunc   func(ctx context.Context, userID uuid.UUID) (*domain.WeeklyReportResponse, error)
	rateFunc     func(ctx context.Context, userID uuid.UUID, req *domain.WeeklyReportFeedbackRequest) error
}

func (m *MockCoachService) Feedback(ctx context.Context, userID uuid.UUID) (*domain.CoachFeedbackResponse, error) {
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, userID)
	}
	return &domain.CoachFeedbackResponse{Feedback: analytics.NoRecordsFeedback}, nil
}

func (m *MockCoachService) WeeklyReport(ctx context.Context, userID uuid.UUID) (*domain.WeeklyReportResponse, error) {
	if m.weeklyFunc != nil {
		return m.weeklyFunc(ctx, userID)
	}
	return &domain.WeeklyReportResponse{Report: analytics.NoRecordsFeedback, Source: domain.ReportSourceLocal}, nil
}

func (m *MockCoachService) RateWeeklyReport(ctx context.Context, userID uuid.UUID, req *domain.WeeklyReportFeedbackRequest) error {
	if m.rateFunc != nil {
		return m.rateFunc(ctx, userID, req)
	}
	return nil
}
