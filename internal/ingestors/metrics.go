package ingestors

import (
	"emontx-aggregator/internal/shared/metrics"
)

var (
	metricLinesIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubLoop,
			Name:      "lines_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricCyclesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubLoop,
			Name:      "cycles_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricCycleDurationSeconds = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubLoop,
			Name:      "cycle_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{},
	)

	metricWindowEntries = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubWindow,
			Name:      "entries",
			Help:      "Timestamped entries held in the window after the last eviction.",
		},
		[]string{metrics.FieldCategory},
	)

	metricEvictedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubWindow,
			Name:      "evicted_total",
		},
		[]string{},
	)
)
