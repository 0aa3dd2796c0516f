package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/storefront/internal/ctxkeys"
	"github.com/templui/storefront/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Paths to skip logging
var skipLoggingPaths = []string{
	"/assets/",
	"/favicon.ico",
	"/metrics",
	"/healthz",
}

// RequestLogging tags each request with an id (X-Request-ID, generated when
// the client sent none), logs method, path, status and duration, and
// records latency per route. Must be the last middleware before the mux so
// the matched route pattern is visible after the handler returns.
func RequestLogging(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" || len(requestID) > 64 {
				requestID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, requestID)
			r = r.WithContext(ctxkeys.WithRequestID(r.Context(), requestID))

			start := time.Now()
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			if m != nil {
				m.ObserveRequest(r.Method, route, rw.statusCode, duration)
			}

			for _, prefix := range skipLoggingPaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					return
				}
			}

			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", duration.Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"request_id", requestID,
			)
		})
	}
}
