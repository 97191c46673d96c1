package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/blaisecz/sleep-journal/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultDays = 40

// SampleUsers are the fixed accounts the seed fills with history.
var SampleUsers = []domain.User{
	{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam", SleepGoalMinutes: 480},
	{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York", SleepGoalMinutes: 450},
	{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo", SleepGoalMinutes: 420},
	{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Timezone: "Australia/Sydney", SleepGoalMinutes: 510},
}

// Options controls how much history is generated.
type Options struct {
	Users int
	Days  int
	Seed  int64
	Now   time.Time
}

// Result counts what a run touched.
type Result struct {
	Users    []domain.User
	Created  int
	Existing int
	Skipped  int
}

// Run creates the sample users and one night per day for each of them.
// Client request IDs are keyed by user and local date, so running it again
// returns existing records instead of duplicating them.
func Run(ctx context.Context, users repository.UserRepository, records service.SleepRecordService, opts Options, logger *zap.Logger) (*Result, error) {
	if opts.Users <= 0 || opts.Users > len(SampleUsers) {
		opts.Users = len(SampleUsers)
	}
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	result := &Result{}

	for _, sample := range SampleUsers[:opts.Users] {
		user, err := ensureUser(ctx, users, sample)
		if err != nil {
			return result, err
		}
		result.Users = append(result.Users, *user)

		for i := 1; i <= opts.Days; i++ {
			req := night(user, opts.Now.AddDate(0, 0, -i), rng)

			_, existing, err := records.Create(ctx, user.ID, req)
			switch {
			case errors.Is(err, domain.ErrOverlappingSleep):
				result.Skipped++
			case err != nil:
				return result, fmt.Errorf("failed to seed night %d for user %s: %w", i, user.ID, err)
			case existing:
				result.Existing++
			default:
				result.Created++
			}
		}

		logger.Info("seeded user",
			zap.String("user_id", user.ID.String()),
			zap.String("timezone", user.Timezone),
			zap.Int("days", opts.Days),
		)
	}

	return result, nil
}

func ensureUser(ctx context.Context, users repository.UserRepository, sample domain.User) (*domain.User, error) {
	user, err := users.GetByID(ctx, sample.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	created := sample
	if err := users.Create(ctx, &created); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", sample.ID, err)
	}
	return &created, nil
}

// night builds a bedtime between 21:30 and 00:30 local time and a duration
// of 5 to 9.5 hours.
func night(user *domain.User, day time.Time, rng *rand.Rand) *domain.CreateSleepRecordRequest {
	loc := user.Location()
	local := day.In(loc)

	bedtime := time.Date(local.Year(), local.Month(), local.Day(), 21, 30, 0, 0, loc).
		Add(time.Duration(rng.Intn(180)) * time.Minute)
	duration := 5*time.Hour + time.Duration(rng.Intn(270))*time.Minute

	clientReqID := fmt.Sprintf("seed-%s-%s", user.ID, local.Format("2006-01-02"))
	tz := user.Timezone
	return &domain.CreateSleepRecordRequest{
		StartAt:         bedtime.UTC(),
		EndAt:           bedtime.Add(duration).UTC(),
		LocalTimezone:   &tz,
		ClientRequestID: &clientReqID,
		Source:          domain.SourceManual,
	}
}
