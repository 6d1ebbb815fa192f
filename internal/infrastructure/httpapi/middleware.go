package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// TraceIDHeader carries the request trace id in both directions.
const TraceIDHeader = "X-Trace-ID"

type traceIDKey struct{}

// ContextWithTraceID returns ctx carrying traceID.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace id stored in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

// LoggerMiddleware assigns a trace id to each request and logs its outcome.
// An incoming X-Trace-ID is kept when it is a valid UUID.
// A nil logger discards the request log.
func LoggerMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceIDHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.New().String()
			}
			w.Header().Set(TraceIDHeader, traceID)

			ctx := ContextWithTraceID(r.Context(), traceID)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.InfoContext(ctx, "request finished",
				"trace_id", traceID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
