package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/hececiz/internal/api/shared"
	"github.com/phrazzld/hececiz/internal/platform/logger"
)

// NewTraceMiddleware tags every request with a trace ID and stores a request
// logger carrying it in the context. A well-formed incoming X-Trace-ID is
// reused; the effective ID is echoed in the response.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.WithTraceID(r.Context(), r.Header.Get(shared.TraceIDHeader))
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
