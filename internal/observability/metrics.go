// Package observability provides application-level Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listforge_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "listforge_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// GenerationRequestsTotal counts outbound generation API calls by outcome.
	GenerationRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listforge_generation_requests_total",
		Help: "Total number of list generation requests by outcome",
	}, []string{"outcome"})

	// GenerationLatency records the latency of generation API calls.
	GenerationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "listforge_generation_latency_seconds",
		Help:    "Latency of list generation API calls in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})
)

// ObserveGeneration records one generation call with its outcome and duration.
func ObserveGeneration(outcome string, start time.Time) {
	GenerationRequestsTotal.WithLabelValues(outcome).Inc()
	GenerationLatency.Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
