// Seeds the database with sample users and a history of scored nights.
// Usage: go run scripts/seed/main.go --users 3 --days 60 --seed 42
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/cache"
	"github.com/blaisecz/sleep-journal/internal/config"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/blaisecz/sleep-journal/internal/seed"
	"github.com/blaisecz/sleep-journal/internal/service"
	"github.com/blaisecz/sleep-journal/internal/telemetry"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	users := pflag.Int("users", len(seed.SampleUsers), "number of sample users to create")
	days := pflag.Int("days", seed.DefaultDays, "nights of history per user")
	rngSeed := pflag.Int64("seed", time.Now().UnixNano(), "random seed for bedtimes and backfilled physiology")
	pflag.Parse()

	cfg := config.Load()

	logger, err := telemetry.NewLogger(cfg.LogLevel, "console", "sleep-journal-seed")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger, seed.Options{Users: *users, Days: *days, Seed: *rngSeed}); err != nil {
		logger.Error("seed failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, opts seed.Options) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := config.NewDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	analyticsCfg, err := config.LoadAnalytics(cfg.AnalyticsConfigPath)
	if err != nil {
		return err
	}

	store, closeStore, err := cache.Open(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("open summary cache: %w", err)
	}
	defer closeStore()

	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewSleepRecordRepository(db)
	summaries := service.NewSummaryService(recordRepo, userRepo, store, cfg.SummaryTTL, logger)
	records := service.NewSleepRecordService(recordRepo, userRepo, analytics.NewRandomGenerator(analyticsCfg.Ranges), summaries, analyticsCfg.TargetDuration, logger)

	result, err := seed.Run(ctx, userRepo, records, opts, logger)
	if err != nil {
		return err
	}

	logger.Info("seed completed",
		zap.Int("created", result.Created),
		zap.Int("existing", result.Existing),
		zap.Int("skipped_overlaps", result.Skipped),
	)
	fmt.Println("\nSample user IDs for testing:")
	for _, u := range result.Users {
		fmt.Printf("  %s (%s)\n", u.ID, u.Timezone)
	}
	return nil
}
