package domain

import "time"

// TrackingStatusResponse describes the user's current tracking session.
type TrackingStatusResponse struct {
	Tracking       bool       `json:"tracking"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	Elapsed        string     `json:"elapsed,omitempty" example:"6h 12m"`
	ElapsedSeconds int64      `json:"elapsed_seconds,omitempty"`
}

// StopTrackingRequest ends a session. The record is saved unless Discard is
// set; EndAt defaults to the current time.
type StopTrackingRequest struct {
	Discard       bool       `json:"discard"`
	EndAt         *time.Time `json:"end_at,omitempty"`
	LocalTimezone *string    `json:"local_timezone,omitempty" validate:"omitempty,timezone"`
}

// StopTrackingResponse reports what happened to the session.
type StopTrackingResponse struct {
	Saved  bool                 `json:"saved"`
	Record *SleepRecordResponse `json:"record,omitempty"`
}
