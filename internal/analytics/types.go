// Package analytics turns sleep intervals into scores, typical bed and wake
// times, synthetic physiological series and period summaries.
//
// Everything in this package is pure: functions take value snapshots, never
// mutate their inputs and perform no I/O. Callers own persistence, identity
// and time zones (convert timestamps to the sleeper's local zone first).
package analytics

import (
	"fmt"
	"time"
)

// Stage is a sleep stage category.
type Stage string

const (
	StageAwake Stage = "awake"
	StageREM   Stage = "rem"
	StageLight Stage = "light"
	StageDeep  Stage = "deep"
)

// AllStages lists every stage in display order.
var AllStages = []Stage{StageAwake, StageREM, StageLight, StageDeep}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	switch s {
	case StageAwake, StageREM, StageLight, StageDeep:
		return true
	}
	return false
}

// Interval is a single sleep session. End is expected after Start; a zero or
// negative duration is treated as a degenerate boundary case, not an error.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// StageSegment labels a contiguous part of an interval with one stage.
type StageSegment struct {
	Stage Stage
	Start time.Time
	End   time.Time
}

func (s StageSegment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// HealthSample is one point of a physiological series.
type HealthSample struct {
	Timestamp time.Time
	Value     float64
}

// Record is an immutable snapshot of a stored sleep record.
type Record struct {
	Interval        Interval
	Score           int
	Stages          []StageSegment
	HeartRate       []HealthSample
	BloodOxygen     []HealthSample
	RespiratoryRate float64
}

// StageDurations sums segment durations per stage.
func (r Record) StageDurations() map[Stage]time.Duration {
	totals := make(map[Stage]time.Duration, len(AllStages))
	for _, seg := range r.Stages {
		totals[seg.Stage] += seg.Duration()
	}
	return totals
}

// TimeOfDay is a wall-clock time in 24-hour form.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// TimeOfDayFromMinutes wraps minutes into [00:00, 24:00).
func TimeOfDayFromMinutes(minutes int) TimeOfDay {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return TimeOfDay{Hour: minutes / 60, Minute: minutes % 60}
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Period selects the window a summary covers.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod maps a query value to a Period.
func ParsePeriod(s string) (Period, bool) {
	switch p := Period(s); p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, true
	}
	return "", false
}
