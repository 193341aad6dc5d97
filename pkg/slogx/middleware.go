package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Hoangit1506/shortcourse/pkg/idx"
)

// HTTPMiddleware logs served requests and attaches a contextual logger to
// the request context. The client side of this repository stamps
// X-Request-Id on outgoing calls; reusing it here keeps the loopback
// callback's logs joinable with everything else.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			reqID := r.Header.Get("X-Request-Id")
			if reqID == "" {
				reqID = idx.New().String()
			}

			ctx := WithRequestID(WithContext(r.Context(), base), reqID)
			logger := FromContext(ctx).With(
				"method", r.Method,
				"path", r.URL.Path,
			)

			next.ServeHTTP(rw, r.WithContext(WithContext(ctx, logger)))

			logger.Info("http_request",
				"status", rw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter

	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
