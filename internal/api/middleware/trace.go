package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/hero-flashcards/internal/api/shared"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context along with a logger
// that stamps it on every record. Apply it before any handler that logs.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			log := base.With("trace_id", shared.GetTraceID(ctx))

			log.DebugContext(ctx, "request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr)

			next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
		})
	}
}
