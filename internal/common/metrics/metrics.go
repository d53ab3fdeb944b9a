package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values of RecommendationsResolved.
const (
	OutcomeMatched = "matched"
	OutcomeDefault = "default"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	RecommendationsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_resolved_total",
			Help: "Recommendations produced, by application type and whether a terminal node was reached",
		},
		[]string{"app_type", "outcome"},
	)

	RecommendationsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_rejected_total",
			Help: "Requests rejected as malformed",
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Recommendations served from the cache",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Recommendations not found in the cache",
		},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_errors_total",
			Help: "Cache operations that failed",
		},
		[]string{"operation"},
	)
)

// Outcome returns the outcome label for a resolution.
func Outcome(matched bool) string {
	if matched {
		return OutcomeMatched
	}
	return OutcomeDefault
}
