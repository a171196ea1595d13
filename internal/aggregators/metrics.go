package aggregators

import (
	"emontx-aggregator/internal/shared/metrics"
)

var (
	// metricSeriesReported is the number of series with at least one sample
	// in the window at the last aggregation, per category. A series that ages
	// out drops from this count on the next cycle.
	metricSeriesReported = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "series_reported",
		},
		[]string{metrics.FieldCategory},
	)

	metricSamplesAveraged = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "samples_averaged",
		},
		[]string{metrics.FieldCategory},
	)
)
