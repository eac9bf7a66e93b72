package middleware

import (
	"net/http"
	"time"
)

// RequestLogging пишет в лог каждый завершенный запрос
func RequestLogging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			requestID := RequestIDFrom(r.Context())
			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				log.Error("HTTP %s %s - status=%d, duration_ms=%d, request_id=%s",
					r.Method, r.URL.Path, wrapped.statusCode, duration.Milliseconds(), requestID)
			case wrapped.statusCode >= http.StatusBadRequest:
				log.Warn("HTTP %s %s - status=%d, duration_ms=%d, request_id=%s",
					r.Method, r.URL.Path, wrapped.statusCode, duration.Milliseconds(), requestID)
			default:
				log.Info("HTTP %s %s - status=%d, duration_ms=%d, request_id=%s",
					r.Method, r.URL.Path, wrapped.statusCode, duration.Milliseconds(), requestID)
			}
		})
	}
}
