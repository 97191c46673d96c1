package domain

import (
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/google/uuid"
)

// DefaultSleepGoalMinutes matches the engine's default target duration.
const DefaultSleepGoalMinutes = int(analytics.DefaultTargetDuration / time.Minute)

type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Timezone          string     `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	SleepGoalMinutes  int        `gorm:"not null;default:480" json:"sleep_goal_minutes"`
	TrackingStartedAt *time.Time `json:"tracking_started_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// GoalMinutes converts a target duration to whole goal minutes. A
// non-positive target means the engine default.
func GoalMinutes(target time.Duration) int {
	if target <= 0 {
		return DefaultSleepGoalMinutes
	}
	return int(target / time.Minute)
}

// SleepGoal is the user's target duration, used as the score target. Users
// without a stored goal get fallback.
func (u *User) SleepGoal(fallback time.Duration) time.Duration {
	if u.SleepGoalMinutes <= 0 {
		if fallback <= 0 {
			return analytics.DefaultTargetDuration
		}
		return fallback
	}
	return time.Duration(u.SleepGoalMinutes) * time.Minute
}

// Location resolves the user's home timezone, falling back to UTC.
func (u *User) Location() *time.Location {
	return loadLocation(u.Timezone)
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Timezone string `json:"timezone" validate:"required,timezone"`
	// Optional nightly sleep goal in minutes (defaults to the configured target)
	SleepGoalMinutes *int `json:"sleep_goal_minutes,omitempty" validate:"omitempty,min=60,max=960"`
}

// UpdateSleepGoalRequest sets the nightly sleep goal.
// @Description Nightly sleep goal, between 1 and 16 hours.
type UpdateSleepGoalRequest struct {
	Hours   int `json:"hours" validate:"min=0,max=16" example:"8"`
	Minutes int `json:"minutes" validate:"min=0,max=59" example:"0"`
}

// TotalMinutes returns the goal in minutes.
func (r UpdateSleepGoalRequest) TotalMinutes() int {
	return r.Hours*60 + r.Minutes
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Timezone          string     `json:"timezone"`
	SleepGoalMinutes  int        `json:"sleep_goal_minutes"`
	SleepGoal         string     `json:"sleep_goal" example:"8h 0m"`
	Tracking          bool       `json:"tracking"`
	TrackingStartedAt *time.Time `json:"tracking_started_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                u.ID,
		Timezone:          u.Timezone,
		SleepGoalMinutes:  u.SleepGoalMinutes,
		SleepGoal:         analytics.FormatDuration(time.Duration(u.SleepGoalMinutes) * time.Minute),
		Tracking:          u.TrackingStartedAt != nil,
		TrackingStartedAt: u.TrackingStartedAt,
		CreatedAt:         u.CreatedAt,
	}
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	if l, err := time.LoadLocation(name); err == nil {
		return l
	}
	return time.UTC
}
