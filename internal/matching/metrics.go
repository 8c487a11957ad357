package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_matches_total",
			Help: "Total number of matches persisted, by collaboration model",
		},
		[]string{"model_type"},
	)

	gateFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_gate_failures_total",
			Help: "Compatibility gate rejections, by gate",
		},
		[]string{"gate"},
	)

	matchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_final_scores",
			Help:    "Distribution of final compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	batchRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_batch_runs_total",
			Help: "Total number of batch matching sweeps",
		},
	)

	batchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_batch_duration_seconds",
			Help:    "Duration of batch matching sweeps",
			Buckets: prometheus.DefBuckets,
		},
	)

	batchMatchesFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_batch_matches_found",
			Help:    "Matches produced per batch sweep",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	batchCandidatesScanned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_batch_candidates_scanned",
			Help:    "Candidates evaluated per batch sweep",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)
)

func RecordMatchCreated(modelType string) {
	matchesTotal.WithLabelValues(modelType).Inc()
}

func RecordGateFailure(gate string) {
	gateFailuresTotal.WithLabelValues(gate).Inc()
}

func RecordMatchScore(score float64) {
	matchScores.Observe(score)
}

func RecordBatchRun(duration time.Duration, candidates, matches int) {
	batchRunsTotal.Inc()
	batchDuration.Observe(duration.Seconds())
	batchCandidatesScanned.Observe(float64(candidates))
	batchMatchesFound.Observe(float64(matches))
}
