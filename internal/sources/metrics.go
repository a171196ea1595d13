package sources

import (
	"emontx-aggregator/internal/shared/metrics"
)

var (
	metricLinesReadTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "lines_read_total",
		},
		[]string{metrics.FieldSource},
	)

	metricLinesDroppedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "lines_dropped_total",
			Help:      "Lines discarded before decoding, e.g. longer than the configured maximum.",
		},
		[]string{metrics.FieldSource, "reason"},
	)
)
