// Sleep Journal API
//
// REST API for logging nights of sleep, live tracking, summaries and coaching.
//
//	@title			Sleep Journal API
//	@version		1.0
//	@description	Log nights of sleep, track live sessions, and get scores, period summaries, exports and coaching.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			sleep-records
//	@tag.description	Sleep record endpoints
//
//	@tag.name			tracking
//	@tag.description	Live sleep tracking endpoints
//
//	@tag.name			statistics
//	@tag.description	Summaries, profile and export
//
//	@tag.name			coach
//	@tag.description	Coaching feedback and weekly reports
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/api"
	"github.com/blaisecz/sleep-journal/internal/api/handler"
	"github.com/blaisecz/sleep-journal/internal/cache"
	"github.com/blaisecz/sleep-journal/internal/config"
	"github.com/blaisecz/sleep-journal/internal/ingest"
	"github.com/blaisecz/sleep-journal/internal/langfuse"
	"github.com/blaisecz/sleep-journal/internal/llm"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/blaisecz/sleep-journal/internal/seed"
	"github.com/blaisecz/sleep-journal/internal/service"
	"github.com/blaisecz/sleep-journal/internal/telemetry"
	"go.uber.org/zap"
)

const serviceName = "sleep-journal-api"

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, serviceName)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// Connect to database and migrate the schema
	db, err := config.NewDatabase(cfg, logger)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	logger.Info("database migration completed")

	analyticsCfg, err := config.LoadAnalytics(cfg.AnalyticsConfigPath)
	if err != nil {
		return err
	}

	store, closeStore, err := cache.Open(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer closeStore()
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, caching summaries in memory")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewSleepRecordRepository(db)

	// Initialize services
	generator := analytics.NewRandomGenerator(analyticsCfg.Ranges)
	summaryService := service.NewSummaryService(recordRepo, userRepo, store, cfg.SummaryTTL, logger)
	userService := service.NewUserService(userRepo, analyticsCfg.TargetDuration)
	recordService := service.NewSleepRecordService(recordRepo, userRepo, generator, summaryService, analyticsCfg.TargetDuration, logger)
	trackingService := service.NewTrackingService(userRepo, recordService, logger)
	exportService := service.NewExportService(userRepo, summaryService)

	if cfg.Seed {
		logger.Info("seeding database with sample data (SEED=true)")
		if _, err := seed.Run(ctx, userRepo, recordService, seed.Options{Seed: time.Now().UnixNano()}, logger); err != nil {
			return err
		}
	}

	// Weekly report model; without a key the coach uses the local composer
	langfuseClient := langfuse.NewClient(cfg.Langfuse(), logger)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := langfuseClient.Flush(flushCtx); err != nil {
			logger.Warn("pending langfuse events dropped", zap.Error(err))
		}
	}()
	prompt, err := langfuse.LoadPrompt(ctx, cfg.PromptLoader(), logger)
	if err != nil {
		logger.Info("no weekly report prompt available, using built-in prompt", zap.Error(err))
	}
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIWeeklyReportModel, prompt)
	if openaiClient == nil {
		logger.Warn("OpenAI API key not configured, weekly reports use the local composer")
	}
	coachService := service.NewCoachService(recordRepo, userRepo, summaryService, openaiClient, langfuseClient, analyticsCfg.TargetDuration, logger)

	// Wearable ingestion
	if cfg.MQTTBrokerURL != "" {
		subscriber, disconnect, err := startIngest(ctx, cfg, recordService, logger)
		if err != nil {
			return err
		}
		defer disconnect()
		defer subscriber.Stop()
	}

	// Setup router
	router := api.NewRouter(api.Handlers{
		Users:    handler.NewUserHandler(userService),
		Records:  handler.NewSleepRecordHandler(recordService),
		Tracking: handler.NewTrackingHandler(trackingService),
		Summary:  handler.NewSummaryHandler(summaryService, exportService),
		Coach:    handler.NewCoachHandler(coachService),
	}, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func startIngest(ctx context.Context, cfg *config.Config, records service.SleepRecordService, logger *zap.Logger) (*ingest.SessionSubscriber, func(), error) {
	client := ingest.NewClient(ingest.ClientConfig{
		BrokerURL: cfg.MQTTBrokerURL,
		ClientID:  cfg.MQTTClientID,
		Username:  cfg.MQTTUsername,
		Password:  cfg.MQTTPassword,
	}, logger)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		return nil, nil, err
	}

	subscriber := ingest.NewSessionSubscriber(client, records, cfg.MQTTTopic, ingest.DefaultHandleTimeout, logger)
	if err := subscriber.Start(); err != nil {
		client.Disconnect()
		return nil, nil, err
	}
	return subscriber, client.Disconnect, nil
}
