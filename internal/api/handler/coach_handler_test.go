package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoachHandler_Feedback(t *testing.T) {
	userID := uuid.New()
	target := "/v1/users/" + userID.String() + "/sleep/coach/feedback"
	pattern := "/v1/users/{userId}/sleep/coach/feedback"

	h := NewCoachHandler(&MockCoachService{})
	rec := serve(http.MethodGet, pattern, target, "", h.Feedback)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.CoachFeedbackResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, analytics.NoRecordsFeedback, resp.Feedback)
	assert.Nil(t, resp.Score)

	missing := NewCoachHandler(&MockCoachService{
		feedbackFunc: func(ctx context.Context, id uuid.UUID) (*domain.CoachFeedbackResponse, error) {
			return nil, domain.ErrNotFound
		},
	})
	rec = serve(http.MethodGet, pattern, target, "", missing.Feedback)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCoachHandler_WeeklyReport(t *testing.T) {
	userID := uuid.New()
	h := NewCoachHandler(&MockCoachService{
		weeklyFunc: func(ctx context.Context, id uuid.UUID) (*domain.WeeklyReportResponse, error) {
			return &domain.WeeklyReportResponse{
				Report:   "Solid week.",
				Guidance: []string{"Keep your bedtime steady."},
				Source:   domain.ReportSourceLLM,
				TraceID:  "trace-1",
			}, nil
		},
	})

	rec := serve(http.MethodGet, "/v1/users/{userId}/sleep/coach/weekly", "/v1/users/"+userID.String()+"/sleep/coach/weekly", "", h.WeeklyReport)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.WeeklyReportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.ReportSourceLLM, resp.Source)
	assert.Equal(t, "trace-1", resp.TraceID)
}

func TestCoachHandler_RateWeeklyReport(t *testing.T) {
	userID := uuid.New()
	target := "/v1/users/" + userID.String() + "/sleep/coach/weekly/feedback"
	pattern := "/v1/users/{userId}/sleep/coach/weekly/feedback"

	tests := []struct {
		name           string
		body           string
		rateErr        error
		wantStatusCode int
	}{
		{name: "valid rating", body: `{"trace_id": "trace-1", "rating": 4}`, wantStatusCode: http.StatusNoContent},
		{name: "with comment", body: `{"trace_id": "trace-1", "rating": 5, "comment": "spot on"}`, wantStatusCode: http.StatusNoContent},
		{name: "missing trace", body: `{"rating": 3}`, wantStatusCode: http.StatusUnprocessableEntity},
		{name: "rating out of range", body: `{"trace_id": "trace-1", "rating": 6}`, wantStatusCode: http.StatusUnprocessableEntity},
		{name: "malformed JSON", body: `nope`, wantStatusCode: http.StatusBadRequest},
		{name: "unknown user", body: `{"trace_id": "trace-1", "rating": 2}`, rateErr: domain.ErrNotFound, wantStatusCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *domain.WeeklyReportFeedbackRequest
			h := NewCoachHandler(&MockCoachService{
				rateFunc: func(ctx context.Context, id uuid.UUID, req *domain.WeeklyReportFeedbackRequest) error {
					got = req
					return tt.rateErr
				},
			})

			rec := serve(http.MethodPost, pattern, target, tt.body, h.RateWeeklyReport)
			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantStatusCode == http.StatusNoContent {
				require.NotNil(t, got)
				assert.Equal(t, "trace-1", got.TraceID)
			}
		})
	}
}
