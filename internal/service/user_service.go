package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/google/uuid"
)

const (
	MinSleepGoalMinutes = 60
	MaxSleepGoalMinutes = 16 * 60
)

type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateSleepGoal(ctx context.Context, id uuid.UUID, req *domain.UpdateSleepGoalRequest) (*domain.User, error)
}

type userService struct {
	repo        repository.UserRepository
	defaultGoal int
}

// NewUserService creates the service. defaultGoal is given to users created
// without one; a non-positive value means the engine default.
func NewUserService(repo repository.UserRepository, defaultGoal time.Duration) UserService {
	return &userService{repo: repo, defaultGoal: domain.GoalMinutes(defaultGoal)}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	goal := s.defaultGoal
	if req.SleepGoalMinutes != nil {
		goal = *req.SleepGoalMinutes
	}
	if goal < MinSleepGoalMinutes || goal > MaxSleepGoalMinutes {
		return nil, fmt.Errorf("sleep goal of %d minutes: %w", goal, domain.ErrInvalidInput)
	}

	user := &domain.User{
		ID:               uuid.New(),
		Timezone:         req.Timezone,
		SleepGoalMinutes: goal,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateSleepGoal changes the nightly target. Existing records keep the
// score they were given; only new records use the new goal.
func (s *userService) UpdateSleepGoal(ctx context.Context, id uuid.UUID, req *domain.UpdateSleepGoalRequest) (*domain.User, error) {
	minutes := req.TotalMinutes()
	if minutes < MinSleepGoalMinutes || minutes > MaxSleepGoalMinutes {
		return nil, fmt.Errorf("sleep goal of %d minutes: %w", minutes, domain.ErrInvalidInput)
	}

	if err := s.repo.UpdateSleepGoal(ctx, id, minutes); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
