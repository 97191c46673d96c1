package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/langfuse"
	"github.com/blaisecz/sleep-journal/internal/llm"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	weeklyTraceName = "sleep-weekly-report"
	userRatingScore = "user_rating"
)

// CoachService turns records into coaching text.
type CoachService interface {
	// Feedback compares the latest night with the one before.
	Feedback(ctx context.Context, userID uuid.UUID) (*domain.CoachFeedbackResponse, error)
	// WeeklyReport analyses the past week, with the model when available
	// and the local composer otherwise.
	WeeklyReport(ctx context.Context, userID uuid.UUID) (*domain.WeeklyReportResponse, error)
	// RateWeeklyReport forwards the user's rating of a report to Langfuse.
	RateWeeklyReport(ctx context.Context, userID uuid.UUID, req *domain.WeeklyReportFeedbackRequest) error
}

type coachService struct {
	recordRepo repository.SleepRecordRepository
	userRepo   repository.UserRepository
	summaries  SummaryService
	llmClient  llm.WeeklyCoach
	langfuse   langfuse.Client
	target     time.Duration
	logger     *zap.Logger
}

func NewCoachService(
	recordRepo repository.SleepRecordRepository,
	userRepo repository.UserRepository,
	summaries SummaryService,
	llmClient llm.WeeklyCoach,
	lf langfuse.Client,
	target time.Duration,
	logger *zap.Logger,
) CoachService {
	return &coachService{
		recordRepo: recordRepo,
		userRepo:   userRepo,
		summaries:  summaries,
		llmClient:  llmClient,
		langfuse:   lf,
		target:     target,
		logger:     logger,
	}
}

func (s *coachService) Feedback(ctx context.Context, userID uuid.UUID) (*domain.CoachFeedbackResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	latest, err := s.recordRepo.Latest(ctx, userID, 2)
	if err != nil {
		return nil, err
	}
	if len(latest) == 0 {
		return &domain.CoachFeedbackResponse{Feedback: analytics.NoRecordsFeedback}, nil
	}

	recent := latest[0].Snapshot(nil)
	resp := &domain.CoachFeedbackResponse{
		RecordID: &latest[0].ID,
		Score:    &latest[0].Score,
	}

	var previous *analytics.Record
	if len(latest) > 1 {
		prev := latest[1].Snapshot(nil)
		previous = &prev
		resp.PreviousScore = &latest[1].Score
	}

	resp.Feedback = analytics.Feedback(recent, previous)
	return resp, nil
}

func (s *coachService) WeeklyReport(ctx context.Context, userID uuid.UUID) (*domain.WeeklyReportResponse, error) {
	tracer := otel.Tracer("sleep-journal-api/coach")
	ctx, span := tracer.Start(ctx, "CoachService.WeeklyReport",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, records, err := s.summaries.Compute(ctx, user, analytics.PeriodWeek)
	if err != nil {
		return nil, err
	}
	summaryResp := domain.NewSummaryResponse(summary)

	resp := &domain.WeeklyReportResponse{
		Summary: summaryResp,
		Source:  domain.ReportSourceLocal,
		Report:  analytics.WeeklyReport(summary, user.SleepGoal(s.target)),
	}
	if summary.Empty {
		return resp, nil
	}

	weekly := &domain.WeeklyReportContext{
		SleepGoal: analytics.FormatDuration(user.SleepGoal(s.target)),
		Timezone:  user.Timezone,
		Summary:   summaryResp,
		Nights:    weeklyNights(records),
	}
	if inputJSON, err := json.Marshal(weekly); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	report, err := s.llmClient.GenerateWeeklyReport(ctx, weekly)
	if err != nil {
		// The local composer already filled the report
		span.RecordError(err)
		span.SetStatus(codes.Error, "weekly report generation failed")
		s.logger.Warn("weekly report falling back to local composer",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return resp, nil
	}

	resp.Source = domain.ReportSourceLLM
	resp.Report = report.Summary
	resp.Observations = report.Observations
	resp.Guidance = report.Guidance

	if outputJSON, err := json.Marshal(report); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	if s.langfuse.IsEnabled() {
		traceID := ""
		if sc := span.SpanContext(); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		}
		traceID, err = s.langfuse.CreateTrace(ctx, langfuse.TraceInput{
			ID:     traceID,
			UserID: userID.String(),
			Name:   weeklyTraceName,
			Input:  weekly,
			Output: report,
			Tags:   []string{"sleep-journal", "weekly-report"},
		})
		if err != nil {
			s.logger.Warn("langfuse trace failed", zap.Error(err))
		}
		resp.TraceID = traceID
	}

	return resp, nil
}

// weeklyNights describes each night on its own local clock.
func weeklyNights(records []domain.SleepRecord) []domain.WeeklyNightContext {
	nights := make([]domain.WeeklyNightContext, 0, len(records))
	for i := range records {
		r := records[i].Snapshot(nil)
		start, end := r.Interval.Start, r.Interval.End
		nights = append(nights, domain.WeeklyNightContext{
			Date:     start.Format("Mon 2006-01-02"),
			Bedtime:  analytics.FormatClock(analytics.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()}),
			WakeTime: analytics.FormatClock(analytics.TimeOfDay{Hour: end.Hour(), Minute: end.Minute()}),
			Duration: analytics.FormatDuration(r.Interval.Duration()),
			Score:    r.Score,
			Quality:  analytics.BandFor(r.Score).Label,
		})
	}
	return nights
}

func (s *coachService) RateWeeklyReport(ctx context.Context, userID uuid.UUID, req *domain.WeeklyReportFeedbackRequest) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	if strings.TrimSpace(req.TraceID) == "" {
		return fmt.Errorf("trace id is required: %w", domain.ErrInvalidInput)
	}

	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}

	return s.langfuse.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    userRatingScore,
		Value:   float64(req.Rating),
		Comment: comment,
	})
}
