package domain

import "github.com/google/uuid"

// CoachFeedbackResponse carries the rule-based message for the latest night.
type CoachFeedbackResponse struct {
	Feedback      string     `json:"feedback"`
	RecordID      *uuid.UUID `json:"record_id,omitempty"`
	Score         *int       `json:"score,omitempty"`
	PreviousScore *int       `json:"previous_score,omitempty"`
}

// WeeklyReportSource tells whether the weekly report came from the model or
// the local composer.
type WeeklyReportSource string

const (
	ReportSourceLLM   WeeklyReportSource = "llm"
	ReportSourceLocal WeeklyReportSource = "local"
)

// WeeklyReportResponse is the weekly coaching analysis.
type WeeklyReportResponse struct {
	Report       string             `json:"report"`
	Observations []string           `json:"observations,omitempty"`
	Guidance     []string           `json:"guidance,omitempty"`
	Source       WeeklyReportSource `json:"source" example:"llm"`
	TraceID      string             `json:"trace_id,omitempty"`
	Summary      SummaryResponse    `json:"summary"`
}

// WeeklyReportContext is the JSON context handed to the language model.
type WeeklyReportContext struct {
	SleepGoal string               `json:"sleep_goal"`
	Timezone  string               `json:"timezone"`
	Summary   SummaryResponse      `json:"summary"`
	Nights    []WeeklyNightContext `json:"nights"`
}

// WeeklyNightContext is one night of the past week as seen by the model.
type WeeklyNightContext struct {
	Date     string `json:"date"`
	Bedtime  string `json:"bedtime"`
	WakeTime string `json:"wake_time"`
	Duration string `json:"duration"`
	Score    int    `json:"score"`
	Quality  string `json:"quality"`
}

// LLMWeeklyReport is the structured output expected from the model.
type LLMWeeklyReport struct {
	Summary      string   `json:"summary"`
	Observations []string `json:"observations"`
	Guidance     []string `json:"guidance"`
}

// WeeklyReportFeedbackRequest rates a generated weekly report.
type WeeklyReportFeedbackRequest struct {
	TraceID string  `json:"trace_id" validate:"required,max=128"`
	Rating  int     `json:"rating" validate:"min=1,max=5" example:"4"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
