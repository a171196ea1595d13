package decoders

import (
	"emontx-aggregator/internal/shared/metrics"
)

var (
	metricLinesDecodedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDecode,
			Name:      "lines_total",
			Help:      "Lines handed to the decoder, by outcome.",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricUnknownCategoriesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubDecode,
			Name:      "unknown_categories_total",
			Help:      "Top-level record fields ignored because they name no known category.",
		},
		[]string{"field"},
	)
)
