package api

import (
	"net/http"

	_ "github.com/blaisecz/sleep-journal/docs"
	"github.com/blaisecz/sleep-journal/internal/api/handler"
	"github.com/blaisecz/sleep-journal/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Users    *handler.UserHandler
	Records  *handler.SleepRecordHandler
	Tracking *handler.TrackingHandler
	Summary  *handler.SummaryHandler
	Coach    *handler.CoachHandler
}

type Router struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewRouter(handlers Handlers, logger *zap.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Tracing)
	r.Use(middleware.RequestLogger(rt.logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	h := rt.handlers

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.Users.Create)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", h.Users.GetByID)
				r.Put("/sleep-goal", h.Users.UpdateSleepGoal)

				r.Route("/sleep-records", func(r chi.Router) {
					r.Post("/", h.Records.Create)
					r.Get("/", h.Records.List)
					r.Get("/{recordId}", h.Records.Get)
					r.Delete("/{recordId}", h.Records.Delete)
				})

				r.Route("/sleep", func(r chi.Router) {
					r.Get("/tracking", h.Tracking.Status)
					r.Post("/tracking/start", h.Tracking.Start)
					r.Post("/tracking/stop", h.Tracking.Stop)

					r.Get("/summary", h.Summary.Summary)
					r.Get("/profile", h.Summary.Profile)
					r.Get("/export", h.Summary.Export)

					r.Get("/coach/feedback", h.Coach.Feedback)
					r.Get("/coach/weekly", h.Coach.WeeklyReport)
					r.Post("/coach/weekly/feedback", h.Coach.RateWeeklyReport)
				})
			})
		})
	})

	return r
}
