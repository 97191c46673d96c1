package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pathUUID parses a UUID path parameter, writing a 400 when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		problem.BadRequest("Invalid " + label + " ID format").Write(w)
		return uuid.Nil, false
	}
	return id, true
}

func userIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return pathUUID(w, r, "userId", "user")
}

// decodeBody decodes a JSON body into dst. An empty body is accepted when
// optional is set and leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		problem.BadRequest("Invalid JSON body").Write(w)
		return false
	}
	return true
}

// periodParam reads ?period=, falling back to def when absent.
func periodParam(w http.ResponseWriter, r *http.Request, def analytics.Period) (analytics.Period, bool) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return def, true
	}
	period, ok := analytics.ParsePeriod(raw)
	if !ok {
		problem.ValidationError("Invalid query parameters", []problem.FieldError{{
			Field:   "period",
			Message: "must be one of: day week month year all",
		}}).Write(w)
		return "", false
	}
	return period, true
}

// writeServiceError maps domain errors to problem responses. notFound is the
// detail used for ErrNotFound, fallback the detail for unexpected errors.
func writeServiceError(w http.ResponseWriter, err error, notFound, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound(notFound).Write(w)
	case errors.Is(err, domain.ErrOverlappingSleep):
		problem.Conflict("Overlapping sleep period detected").Write(w)
	case errors.Is(err, domain.ErrTrackingActive):
		problem.Conflict("Sleep tracking is already in progress").Write(w)
	case errors.Is(err, domain.ErrTrackingInactive):
		problem.Conflict("No sleep tracking in progress").Write(w)
	case errors.Is(err, domain.ErrConflict):
		problem.Conflict(err.Error()).Write(w)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	default:
		problem.InternalError(fallback).Write(w)
	}
}
