package handler

import (
	"net/http"

	"github.com/blaisecz/sleep-journal/internal/api/validation"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/service"
	"github.com/blaisecz/sleep-journal/pkg/problem"
)

// CoachHandler handles the coaching endpoints.
type CoachHandler struct {
	service service.CoachService
}

func NewCoachHandler(service service.CoachService) *CoachHandler {
	return &CoachHandler{service: service}
}

// Feedback handles GET /v1/users/{userId}/sleep/coach/feedback
// @Summary Get feedback on the latest night
// @Description Coaching message for the most recent record, with an addendum when the score moved by 10 or more since the previous night
// @Tags coach
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.CoachFeedbackResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/coach/feedback [get]
func (h *CoachHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Feedback(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to compose feedback")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// WeeklyReport handles GET /v1/users/{userId}/sleep/coach/weekly
// @Summary Get the weekly sleep report
// @Description Analysis of the past 7 days. Generated by the LLM when configured (source "llm", with a trace_id for feedback); otherwise, or when generation fails, the rule-based report (source "local").
// @Tags coach
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.WeeklyReportResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/coach/weekly [get]
func (h *CoachHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.WeeklyReport(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to generate weekly report")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// RateWeeklyReport handles POST /v1/users/{userId}/sleep/coach/weekly/feedback
// @Summary Rate a weekly report
// @Description Submit a 1-5 rating and optional comment for a generated report, linked by its trace_id
// @Tags coach
// @Accept json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.WeeklyReportFeedbackRequest true "Rating"
// @Success 204 "Rating submitted"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/coach/weekly/feedback [post]
func (h *CoachHandler) RateWeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req domain.WeeklyReportFeedbackRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.service.RateWeeklyReport(r.Context(), userID, &req); err != nil {
		writeServiceError(w, err, "User not found", "Failed to submit rating")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
