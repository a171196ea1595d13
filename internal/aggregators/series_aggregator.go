package aggregators

import (
	"sort"
	"time"

	"emontx-aggregator/internal/models"
	"emontx-aggregator/internal/stores"
)

// SeriesAggregator turns the contents of an already evicted window into a
// snapshot of per-series averages.
//
//go:generate mockgen -source=series_aggregator.go -destination=./mocks/series_aggregator_mock.go -package=mocks
type SeriesAggregator interface {
	Aggregate(store *stores.WindowedStore, capturedAt time.Time) *models.Snapshot
}

type seriesAggregator struct{}

func NewSeriesAggregator() SeriesAggregator {
	return &seriesAggregator{}
}

// Aggregate groups every value in the store by category and series id,
// averages each series and applies the category rounding and naming.
// Categories come out in models.Categories order, series ids sorted within a
// category. A series without values produces no entry.
func (a *seriesAggregator) Aggregate(store *stores.WindowedStore, capturedAt time.Time) *models.Snapshot {
	series := make(map[models.Category]map[string][]float64, len(models.Categories))
	store.RangeAll(func(category models.Category, _ time.Time, payload models.Payload) {
		byID, ok := series[category]
		if !ok {
			byID = make(map[string][]float64)
			series[category] = byID
		}
		for seriesID, value := range payload {
			byID[seriesID] = append(byID[seriesID], value)
		}
	})

	var entries []models.SnapshotEntry
	for _, category := range models.Categories {
		byID := series[category]

		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		samples := 0
		reported := 0
		for _, id := range ids {
			values := byID[id]
			mean, ok := Mean(values)
			if !ok {
				continue
			}
			entries = append(entries, models.SnapshotEntry{
				Category: category,
				SeriesID: id,
				Key:      category.OutputKey(id),
				Value:    Round(mean, category.Precision()),
				Samples:  len(values),
			})
			samples += len(values)
			reported++
		}

		metricSeriesReported.WithLabelValues(string(category)).Set(float64(reported))
		metricSamplesAveraged.WithLabelValues(string(category)).Set(float64(samples))
	}

	return models.NewSnapshot(capturedAt, entries)
}
