package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bunker_generation_requests_total",
			Help: "Total number of narrative provider requests.",
		},
		[]string{"provider", "op", "status"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bunker_generation_duration_seconds",
			Help:    "Latency of narrative provider requests.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"provider", "op"},
	)
)

// observeGeneration records one provider round-trip.
func observeGeneration(provider, op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	generationRequestsTotal.WithLabelValues(provider, op, status).Inc()
	generationDuration.WithLabelValues(provider, op).Observe(time.Since(start).Seconds())
}
