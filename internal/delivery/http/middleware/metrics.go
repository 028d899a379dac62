package middleware

import (
	"net/http"
	"strconv"
	"time"

	"whenworks/internal/metrics"
)

// Metrics records request counts and latency for every handled request.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		metrics.ObserveHTTPRequest(r.Method, strconv.Itoa(wrapped.status), time.Since(start).Seconds())
	})
}
