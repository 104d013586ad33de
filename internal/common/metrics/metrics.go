package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_runs_total",
			Help: "Total number of batch matching runs by outcome",
		},
		[]string{"status"},
	)

	PairsProcessedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matcher_pairs_processed_total",
			Help: "Total number of listing/solicitation pairs processed",
		},
	)

	PairsMatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matcher_pairs_matched_total",
			Help: "Total number of pairs that scored above the persistence threshold",
		},
	)

	PairsEarlyTerminatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matcher_pairs_early_terminated_total",
			Help: "Total number of pairs skipped before full scoring, by reason",
		},
		[]string{"reason"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matcher_run_duration_seconds",
			Help:    "Duration of a full batch matching run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	ChunkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matcher_chunk_duration_seconds",
			Help:    "Duration of scoring one listing chunk in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	)
)
