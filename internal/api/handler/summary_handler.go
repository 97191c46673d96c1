package handler

import (
	"net/http"
	"strconv"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SummaryHandler serves period statistics, the all-time profile and the
// spreadsheet export.
type SummaryHandler struct {
	summaries service.SummaryService
	exports   service.ExportService
}

func NewSummaryHandler(summaries service.SummaryService, exports service.ExportService) *SummaryHandler {
	return &SummaryHandler{
		summaries: summaries,
		exports:   exports,
	}
}

// Summary handles GET /v1/users/{userId}/sleep/summary
// @Summary Get period statistics
// @Description Average score, duration, typical bed and wake time (circular mean) and stage breakdown for the period ending now. Year view buckets stages per calendar month, averaged per night.
// @Tags statistics
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param period query string false "Period" Enums(day, week, month, year, all) default(week)
// @Success 200 {object} domain.SummaryResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/summary [get]
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	period, ok := periodParam(w, r, analytics.PeriodWeek)
	if !ok {
		return
	}

	resp, err := h.summaries.Summary(r.Context(), userID, period)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to compute summary")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Profile handles GET /v1/users/{userId}/sleep/profile
// @Summary Get all-time sleep profile
// @Description Average quality, duration and typical bedtime over every record
// @Tags statistics
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.SummaryResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/profile [get]
func (h *SummaryHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	resp, err := h.summaries.Summary(r.Context(), userID, analytics.PeriodAll)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to compute profile")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Export handles GET /v1/users/{userId}/sleep/export
// @Summary Export sleep records
// @Description Download the period's records, stages and summary as an xlsx workbook
// @Tags statistics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param userId path string true "User UUID" format(uuid)
// @Param period query string false "Period" Enums(day, week, month, year, all) default(all)
// @Success 200 {file} file
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleep/export [get]
func (h *SummaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	period, ok := periodParam(w, r, analytics.PeriodAll)
	if !ok {
		return
	}

	export, err := h.exports.Export(r.Context(), userID, period)
	if err != nil {
		writeServiceError(w, err, "User not found", "Failed to export sleep records")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Content)
}
