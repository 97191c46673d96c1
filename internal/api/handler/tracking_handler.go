package handler

import (
	"net/http"

	"github.com/blaisecz/sleep-journal/internal/api/validation"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/service"
	"github.com/blaisecz/sleep-journal/pkg/problem"
)

type TrackingHandler struct {
	service service.TrackingService
}

func NewTrackingHandler(service service.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Start handles POST /v1/users/{userId}/sleep/tracking/start
// @Summary Start sleep tracking
// @Description Begin a live sleep session. Only one session can run at a time.
// @Tags tracking
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 201 {object} domain.TrackingStatusResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 409 {object} problem.Problem "A session is already running"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/tracking/start [post]
func (h *TrackingHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	status, err := h.service.Start(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to start tracking")
		return
	}

	writeJSON(w, http.StatusCreated, status)
}

// Status handles GET /v1/users/{userId}/sleep/tracking
// @Summary Get tracking status
// @Description Report whether a session is running and for how long
// @Tags tracking
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.TrackingStatusResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/tracking [get]
func (h *TrackingHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	status, err := h.service.Status(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to get tracking status")
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Stop handles POST /v1/users/{userId}/sleep/tracking/stop
// @Summary Stop sleep tracking
// @Description End the running session. The session becomes a "tracked" sleep record unless discard is set. The body is optional; end_at defaults to now.
// @Tags tracking
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.StopTrackingRequest false "Stop options"
// @Success 201 {object} domain.StopTrackingResponse "Session saved as a record"
// @Success 200 {object} domain.StopTrackingResponse "Session discarded"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 409 {object} problem.Problem "No session running or overlapping record"
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/tracking/stop [post]
func (h *TrackingHandler) Stop(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req domain.StopTrackingRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	resp, err := h.service.Stop(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to stop tracking")
		return
	}

	status := http.StatusOK
	if resp.Saved {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}
