package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Tracing opens a server span per request, continuing an incoming W3C trace
// context. After routing the span takes the chi route pattern as its name and
// records the user and period the request was about.
func Tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("sleep-journal-api/http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r.WithContext(ctx))

		input := map[string]any{"method": r.Method, "path": r.URL.Path}
		if period := r.URL.Query().Get("period"); period != "" {
			input["period"] = period
			span.SetAttributes(attribute.String("sleep.period", period))
		}

		// chi fills the route context in place, so it is complete only now
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				span.SetName(r.Method + " " + pattern)
				span.SetAttributes(attribute.String("http.route", pattern))
				input["route"] = pattern
			}
			if userID := rctx.URLParam("userId"); userID != "" {
				span.SetAttributes(attribute.String("user.id", userID))
			}
		}

		span.SetAttributes(attribute.Int("http.status_code", sw.statusCode))
		if sw.statusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(sw.statusCode))
		}

		setObservation(span, "langfuse.observation.input", input)
		setObservation(span, "langfuse.observation.output", map[string]any{
			"status_code": sw.statusCode,
			"bytes":       sw.bytes,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func setObservation(span trace.Span, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		span.SetAttributes(attribute.String(key, string(b)))
	}
}
