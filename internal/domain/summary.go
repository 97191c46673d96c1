package domain

import (
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
)

// StageBucketResponse is one row of the stage chart.
type StageBucketResponse struct {
	Label            string           `json:"label" example:"2024-03"`
	Start            time.Time        `json:"start"`
	Nights           int              `json:"nights"`
	DurationsSeconds map[string]int64 `json:"durations_seconds"`
}

// SummaryResponse is the rendered period summary. Clock and duration strings
// read "-" when the period has no records.
type SummaryResponse struct {
	Period                 analytics.Period      `json:"period" example:"week"`
	Empty                  bool                  `json:"empty"`
	From                   *time.Time            `json:"from,omitempty"`
	To                     *time.Time            `json:"to,omitempty"`
	Nights                 int                   `json:"nights"`
	AverageScore           int                   `json:"average_score" example:"86"`
	AverageQuality         string                `json:"average_quality" example:"excellent (86)"`
	AverageEmoji           string                `json:"average_emoji,omitempty"`
	AverageDuration        string                `json:"average_duration" example:"7h 40m"`
	AverageDurationSeconds int64                 `json:"average_duration_seconds"`
	AverageBedtime         string                `json:"average_bedtime" example:"11:00 PM"`
	AverageWakeTime        string                `json:"average_wake_time" example:"6:40 AM"`
	AverageBedtimeMinutes  *int                  `json:"average_bedtime_minutes,omitempty"`
	AverageWakeTimeMinutes *int                  `json:"average_wake_time_minutes,omitempty"`
	BedtimeSpreadMinutes   int                   `json:"bedtime_spread_minutes"`
	WakeTimeSpreadMinutes  int                   `json:"wake_time_spread_minutes"`
	StageTotalsSeconds     map[string]int64      `json:"stage_totals_seconds"`
	StageBreakdown         []StageBucketResponse `json:"stage_breakdown"`
}

// NewSummaryResponse renders an analytics summary for the API.
func NewSummaryResponse(s analytics.Summary) SummaryResponse {
	resp := SummaryResponse{
		Period:                 s.Period,
		Empty:                  s.Empty,
		Nights:                 s.Nights,
		AverageScore:           s.AverageScore,
		AverageQuality:         analytics.Placeholder,
		AverageDuration:        analytics.Placeholder,
		AverageDurationSeconds: int64(s.AverageDuration / time.Second),
		AverageBedtime:         analytics.FormatTimeOfDay(s.AverageBedtime),
		AverageWakeTime:        analytics.FormatTimeOfDay(s.AverageWakeTime),
		BedtimeSpreadMinutes:   int(s.BedtimeSpread / time.Minute),
		WakeTimeSpreadMinutes:  int(s.WakeTimeSpread / time.Minute),
		StageTotalsSeconds:     secondsByStage(s.StageTotals),
		StageBreakdown:         make([]StageBucketResponse, 0, len(s.StageBreakdown)),
	}

	if !s.Empty {
		resp.AverageQuality = analytics.QualityLabel(s.AverageScore)
		resp.AverageEmoji = analytics.BandFor(s.AverageScore).Emoji
		resp.AverageDuration = analytics.FormatDuration(s.AverageDuration)
	}
	if !s.From.IsZero() {
		from := s.From
		resp.From = &from
	}
	if !s.To.IsZero() {
		to := s.To
		resp.To = &to
	}
	if s.AverageBedtime != nil {
		m := s.AverageBedtime.Minutes()
		resp.AverageBedtimeMinutes = &m
	}
	if s.AverageWakeTime != nil {
		m := s.AverageWakeTime.Minutes()
		resp.AverageWakeTimeMinutes = &m
	}

	for _, b := range s.StageBreakdown {
		resp.StageBreakdown = append(resp.StageBreakdown, StageBucketResponse{
			Label:            b.Label,
			Start:            b.Start,
			Nights:           b.Nights,
			DurationsSeconds: secondsByStage(b.Durations),
		})
	}

	return resp
}

func secondsByStage(m map[analytics.Stage]time.Duration) map[string]int64 {
	out := make(map[string]int64, len(m))
	for stage, d := range m {
		out[string(stage)] = int64(d / time.Second)
	}
	return out
}
