package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Task metrics
	TaskRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lolanalyzer_task_runs_total",
			Help: "Total number of task attempts",
		},
		[]string{"task", "status"}, // success, failed
	)

	TaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lolanalyzer_task_duration_seconds",
			Help:    "Task attempt duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"task"},
	)

	// Riot API metrics
	RiotRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lolanalyzer_riot_requests_total",
			Help: "Total number of requests made to the Riot API",
		},
		[]string{"status"},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lolanalyzer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lolanalyzer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)
