package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	eventCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "whenworks",
			Name:      "event_created_total",
			Help:      "Count of events created by category.",
		},
		[]string{"category"},
	)

	eventDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "whenworks",
			Name:      "event_deleted_total",
			Help:      "Count of events deleted by their owners.",
		},
	)

	heatmapComputed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "whenworks",
			Name:      "heatmap_computed_total",
			Help:      "Count of team heatmaps computed.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "whenworks",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method and status code.",
		},
		[]string{"method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "whenworks",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(eventCreated, eventDeleted, heatmapComputed, httpRequests, httpDuration)
	})
}

func IncEventCreated(category string) {
	eventCreated.WithLabelValues(category).Inc()
}

func IncEventDeleted() {
	eventDeleted.Inc()
}

func IncHeatmapComputed() {
	heatmapComputed.Inc()
}

func ObserveHTTPRequest(method, status string, seconds float64) {
	httpRequests.WithLabelValues(method, status).Inc()
	httpDuration.WithLabelValues(method).Observe(seconds)
}
