package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchesTotal       = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carona", Name: "matches_total", Help: "Total number of simulated matches"})
	MatchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carona", Name: "match_failures_total", Help: "Searches that ended without a ride"})
	TripsCompleted     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "carona", Name: "trips_completed_total", Help: "Trips that reached completion"})
	MatchLatency       = promauto.NewHistogram(prometheus.HistogramOpts{Namespace: "carona", Name: "match_latency_seconds", Help: "Simulated match latency seconds"})
	ActiveTrips        = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "carona", Name: "active_trips", Help: "Trips currently in progress"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "carona", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "carona",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
