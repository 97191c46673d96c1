package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/langfuse"
	"github.com/google/uuid"
)

// MockSleepRecordRepository is an in-memory SleepRecordRepository
type MockSleepRecordRepository struct {
	records         map[uuid.UUID]*domain.SleepRecord
	clientRequestID map[string]*domain.SleepRecord
	listResult      []domain.SleepRecord
	afterList       func() // runs once after the next ListInRange read
	err             error
}

func NewMockSleepRecordRepository() *MockSleepRecordRepository {
	return &MockSleepRecordRepository{
		records:         make(map[uuid.UUID]*domain.SleepRecord),
		clientRequestID: make(map[string]*domain.SleepRecord),
	}
}

func (m *MockSleepRecordRepository) add(rec *domain.SleepRecord) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.records[rec.ID] = rec
	if rec.ClientRequestID != nil {
		m.clientRequestID[rec.UserID.String()+":"+*rec.ClientRequestID] = rec
	}
}

func (m *MockSleepRecordRepository) Create(ctx context.Context, rec *domain.SleepRecord) error {
	if m.err != nil {
		return m.err
	}
	rec.CreatedAt = time.Now()
	m.add(rec)
	return nil
}

func (m *MockSleepRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (m *MockSleepRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MockSleepRecordRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listResult != nil {
		result := make([]domain.SleepRecord, len(m.listResult))
		copy(result, m.listResult)
		return result, nil
	}
	return m.sorted(userID, filter.From, filter.To, true), nil
}

func (m *MockSleepRecordRepository) ListInRange(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := m.sorted(userID, from, to, false)
	if hook := m.afterList; hook != nil {
		m.afterList = nil
		hook()
	}
	return result, nil
}

func (m *MockSleepRecordRepository) Latest(ctx context.Context, userID uuid.UUID, n int) ([]domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := m.sorted(userID, nil, nil, true)
	if len(result) > n {
		result = result[:n]
	}
	return result, nil
}

func (m *MockSleepRecordRepository) sorted(userID uuid.UUID, from, to *time.Time, desc bool) []domain.SleepRecord {
	var result []domain.SleepRecord
	for _, rec := range m.records {
		if rec.UserID != userID {
			continue
		}
		if from != nil && rec.StartAt.Before(*from) {
			continue
		}
		if to != nil && rec.StartAt.After(*to) {
			continue
		}
		result = append(result, *rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if desc {
			return result[i].StartAt.After(result[j].StartAt)
		}
		return result[i].StartAt.Before(result[j].StartAt)
	})
	return result
}

func (m *MockSleepRecordRepository) HasOverlap(ctx context.Context, userID uuid.UUID, startAt, endAt time.Time) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, rec := range m.records {
		if rec.UserID != userID {
			continue
		}
		if startAt.Before(rec.EndAt) && endAt.After(rec.StartAt) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSleepRecordRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.SleepRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.clientRequestID[userID.String()+":"+clientRequestID]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	users   map[uuid.UUID]*domain.User
	err     error
	stopErr error // returned once by the next StopTracking
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) UpdateSleepGoal(ctx context.Context, id uuid.UUID, minutes int) error {
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.SleepGoalMinutes = minutes
	return nil
}

func (m *MockUserRepository) StartTracking(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[id]
	if !ok || user.TrackingStartedAt != nil {
		return domain.ErrTrackingActive
	}
	user.TrackingStartedAt = &at
	return nil
}

func (m *MockUserRepository) StopTracking(ctx context.Context, id uuid.UUID, startedAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	if err := m.stopErr; err != nil {
		m.stopErr = nil
		return err
	}
	user, ok := m.users[id]
	if !ok || user.TrackingStartedAt == nil || !user.TrackingStartedAt.Equal(startedAt) {
		return domain.ErrTrackingInactive
	}
	user.TrackingStartedAt = nil
	return nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// recordingInvalidator counts invalidations per user
type recordingInvalidator struct {
	calls map[uuid.UUID]int
}

func newRecordingInvalidator() *recordingInvalidator {
	return &recordingInvalidator{calls: make(map[uuid.UUID]int)}
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) {
	r.calls[userID]++
}

// mockWeeklyCoach returns a canned report or error
type mockWeeklyCoach struct {
	report *domain.LLMWeeklyReport
	err    error
	got    *domain.WeeklyReportContext
}

func (m *mockWeeklyCoach) GenerateWeeklyReport(ctx context.Context, weekly *domain.WeeklyReportContext) (*domain.LLMWeeklyReport, error) {
	m.got = weekly
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockLangfuse records traces and scores
type mockLangfuse struct {
	mu      sync.Mutex
	enabled bool
	traces  []langfuse.TraceInput
	scores  []langfuse.ScoreInput
}

func (m *mockLangfuse) IsEnabled() bool { return m.enabled }

func (m *mockLangfuse) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return "", nil
	}
	m.traces = append(m.traces, in)
	if in.ID == "" {
		return "generated-trace", nil
	}
	return in.ID, nil
}

func (m *mockLangfuse) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled {
		return nil
	}
	m.scores = append(m.scores, in)
	return nil
}

func (m *mockLangfuse) Flush(ctx context.Context) error { return nil }

// Helper functions
func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func timePtr(t time.Time) *time.Time {
	return &t
}
