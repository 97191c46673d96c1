package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blaisecz/sleep-journal/internal/api/validation"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/service"
	"github.com/blaisecz/sleep-journal/pkg/problem"
)

type SleepRecordHandler struct {
	service service.SleepRecordService
}

func NewSleepRecordHandler(service service.SleepRecordService) *SleepRecordHandler {
	return &SleepRecordHandler{service: service}
}

// Create handles POST /v1/users/{userId}/sleep-records
// @Summary Record a night of sleep
// @Description Log sleep and wake times. Stages, heart rate, blood oxygen and respiratory rate are optional; missing parts are generated and the record is flagged synthetic. The score is computed from the user's sleep goal. Use client_request_id for safe retries: returns 200 for a duplicate request, 201 for a new record.
// @Tags sleep-records
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateSleepRecordRequest true "Sleep record"
// @Success 201 {object} domain.SleepRecordResponse "New record created"
// @Success 200 {object} domain.SleepRecordResponse "Existing record returned (idempotent duplicate)"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "Sleep period overlaps with an existing record"
// @Failure 422 {object} problem.Problem "Validation failed"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-records [post]
func (h *SleepRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req domain.CreateSleepRecordRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	req.Source = domain.SourceManual
	record, isExisting, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to create sleep record")
		return
	}

	status := http.StatusCreated
	if isExisting {
		status = http.StatusOK
	}
	writeJSON(w, status, record.ToResponse())
}

// Get handles GET /v1/users/{userId}/sleep-records/{recordId}
// @Summary Get a sleep record
// @Description Fetch one record with its stages and physiological samples
// @Tags sleep-records
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param recordId path string true "Record UUID" format(uuid)
// @Success 200 {object} domain.SleepRecordResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep-records/{recordId} [get]
func (h *SleepRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	recordID, ok := pathUUID(w, r, "recordId", "record")
	if !ok {
		return
	}

	record, err := h.service.Get(r.Context(), userID, recordID)
	if err != nil {
		writeServiceError(w, err, "Sleep record not found", "Failed to get sleep record")
		return
	}

	writeJSON(w, http.StatusOK, record.ToResponse())
}

// Delete handles DELETE /v1/users/{userId}/sleep-records/{recordId}
// @Summary Delete a sleep record
// @Tags sleep-records
// @Param userId path string true "User UUID" format(uuid)
// @Param recordId path string true "Record UUID" format(uuid)
// @Success 204 "Record deleted"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep-records/{recordId} [delete]
func (h *SleepRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	recordID, ok := pathUUID(w, r, "recordId", "record")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, recordID); err != nil {
		writeServiceError(w, err, "Sleep record not found", "Failed to delete sleep record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /v1/users/{userId}/sleep-records
// @Summary List sleep records
// @Description Fetch paginated sleep history. Filter by date range. Results sorted by start_at descending (newest first).
// @Tags sleep-records
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (RFC3339)" format(date-time) example(2024-01-01T00:00:00Z)
// @Param to query string false "End of date range (RFC3339)" format(date-time) example(2024-01-31T23:59:59Z)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.SleepRecordListResponse "Sleep records with pagination"
// @Failure 400 {object} problem.Problem "Invalid cursor or range"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleep-records [get]
func (h *SleepRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to list sleep records")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func parseListFilter(r *http.Request) (domain.SleepRecordFilter, []problem.FieldError) {
	var filter domain.SleepRecordFilter
	var fieldErrors []problem.FieldError

	parseTime := func(name string) *time.Time {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			return nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   name,
				Message: "must be a valid RFC3339 timestamp",
			})
			return nil
		}
		return &t
	}
	filter.From = parseTime("from")
	filter.To = parseTime("to")

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}
	return filter, nil
}
