package service

import (
	"context"
	"testing"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.CreateUserRequest
		wantGoal int
		wantErr  error
	}{
		{
			name:     "default goal",
			req:      &domain.CreateUserRequest{Timezone: "Europe/Budapest"},
			wantGoal: 480,
		},
		{
			name:     "custom goal",
			req:      &domain.CreateUserRequest{Timezone: "UTC", SleepGoalMinutes: intPtr(450)},
			wantGoal: 450,
		},
		{
			name:    "goal too long",
			req:     &domain.CreateUserRequest{Timezone: "UTC", SleepGoalMinutes: intPtr(17 * 60)},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(NewMockUserRepository(), analytics.DefaultTargetDuration)

			user, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tt.req.Timezone, user.Timezone)
			assert.Equal(t, tt.wantGoal, user.SleepGoalMinutes)
		})
	}
}

func TestUserService_GetByID(t *testing.T) {
	svc := NewUserService(NewMockUserRepository(), analytics.DefaultTargetDuration)

	created, err := svc.Create(context.Background(), &domain.CreateUserRequest{Timezone: "America/New_York"})
	require.NoError(t, err)

	user, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", user.Timezone)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_UpdateSleepGoal(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, analytics.DefaultTargetDuration)
	userID := uuid.New()
	repo.users[userID] = &domain.User{ID: userID, Timezone: "UTC", SleepGoalMinutes: 480}

	tests := []struct {
		name    string
		id      uuid.UUID
		req     domain.UpdateSleepGoalRequest
		want    int
		wantErr error
	}{
		{name: "seven and a half hours", id: userID, req: domain.UpdateSleepGoalRequest{Hours: 7, Minutes: 30}, want: 450},
		{name: "upper bound", id: userID, req: domain.UpdateSleepGoalRequest{Hours: 16}, want: 960},
		{name: "below one hour", id: userID, req: domain.UpdateSleepGoalRequest{Minutes: 45}, wantErr: domain.ErrInvalidInput},
		{name: "above sixteen hours", id: userID, req: domain.UpdateSleepGoalRequest{Hours: 16, Minutes: 1}, wantErr: domain.ErrInvalidInput},
		{name: "unknown user", id: uuid.New(), req: domain.UpdateSleepGoalRequest{Hours: 8}, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.UpdateSleepGoal(context.Background(), tt.id, &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, user.SleepGoalMinutes)
		})
	}
}
