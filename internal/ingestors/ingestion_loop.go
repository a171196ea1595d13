package ingestors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"emontx-aggregator/internal/aggregators"
	"emontx-aggregator/internal/decoders"
	"emontx-aggregator/internal/models"
	"emontx-aggregator/internal/shared/loggers"
	"emontx-aggregator/internal/shared/metrics"
	"emontx-aggregator/internal/shared/svcerrors"
	"emontx-aggregator/internal/shared/ulid"
	"emontx-aggregator/internal/sources"
	"emontx-aggregator/internal/stores"
)

// EmitMode selects what drives an evict, aggregate and write pass.
type EmitMode string

const (
	// EmitModeLine runs one pass after every successfully decoded line.
	EmitModeLine EmitMode = "line"
	// EmitModeInterval runs passes on a ticker; lines only insert.
	EmitModeInterval EmitMode = "interval"
)

const (
	// DefaultWindow is the age after which samples leave the window.
	DefaultWindow = 5 * time.Minute
	// DefaultEmitInterval is the snapshot period in interval mode.
	DefaultEmitInterval = 30 * time.Second
)

type Options struct {
	Window       time.Duration
	EmitMode     EmitMode
	EmitInterval time.Duration
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// IngestionLoop drives Source → Decoder → Store → Aggregator → Sink.
type IngestionLoop interface {
	// Run blocks until ctx is cancelled (returns nil), the source stops
	// (source read error) or a snapshot cannot be written (sink write error).
	Run(ctx context.Context) error
}

type ingestionLoop struct {
	source        sources.LineSource
	decoder       decoders.RecordDecoder
	store         *stores.WindowedStore
	aggregator    aggregators.SeriesAggregator
	snapshotStore stores.SnapshotStore
	opts          Options
	logger        loggers.Logger
}

func NewIngestionLoop(
	source sources.LineSource,
	decoder decoders.RecordDecoder,
	store *stores.WindowedStore,
	aggregator aggregators.SeriesAggregator,
	snapshotStore stores.SnapshotStore,
	opts Options,
	logger loggers.Logger,
) IngestionLoop {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.EmitMode == "" {
		opts.EmitMode = EmitModeLine
	}
	if opts.EmitMode == EmitModeInterval && opts.EmitInterval <= 0 {
		opts.EmitInterval = DefaultEmitInterval
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &ingestionLoop{
		source:        source,
		decoder:       decoder,
		store:         store,
		aggregator:    aggregator,
		snapshotStore: snapshotStore,
		opts:          opts,
		logger:        logger,
	}
}

func (l *ingestionLoop) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if l.opts.EmitMode == EmitModeInterval {
		ticker := time.NewTicker(l.opts.EmitInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	l.logger.Info().
		Str(loggers.FieldSource, l.source.Name()).
		Dur("window", l.opts.Window).
		Str("emit_mode", string(l.opts.EmitMode)).
		Msg("ingestion loop started")

	lines := l.source.Lines()
	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				return l.sourceStopped(ctx)
			}
			if err := l.safely(ctx, func(ctx context.Context) error {
				return l.handleLine(ctx, line)
			}); err != nil {
				return err
			}

		case <-tick:
			if err := l.safely(ctx, func(ctx context.Context) error {
				return l.pass(ctx, l.opts.Clock())
			}); err != nil {
				return err
			}
		}
	}
}

func (l *ingestionLoop) sourceStopped(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	err := l.source.Err()
	if errors.Is(err, sources.ErrSourceClosed) {
		return nil
	}
	if err == nil {
		err = io.EOF
	}
	return errSourceReadFailed(err)
}

// handleLine decodes one line and inserts it at the current time. A line that
// fails to decode is dropped without a pass.
func (l *ingestionLoop) handleLine(ctx context.Context, line string) error {
	record, err := l.decoder.Decode(line)
	if err != nil {
		metricLinesIngestedTotal.WithLabelValues(errorCode(err)).Inc()
		loggers.Ctx(ctx).Debug().Err(err).Str("line", line).Msg("skipping undecodable line")
		return nil
	}

	now := l.opts.Clock()
	l.store.InsertRecord(models.TimestampedRecord{ReceivedAt: now, Record: record})
	metricLinesIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()

	if l.opts.EmitMode != EmitModeLine {
		return nil
	}
	return l.pass(ctx, now)
}

// pass evicts everything older than now minus the window, aggregates what is
// left and writes the snapshot. The cutoff is computed once and applied to
// every category.
func (l *ingestionLoop) pass(ctx context.Context, now time.Time) error {
	start := time.Now()
	logger := loggers.Ctx(ctx)

	cutoff := now.Add(-l.opts.Window)
	evicted := l.store.EvictOlderThan(cutoff)
	metricEvictedTotal.WithLabelValues().Add(float64(evicted))
	for _, category := range models.Categories {
		metricWindowEntries.WithLabelValues(string(category)).Set(float64(l.store.Len(category)))
	}

	snapshot := l.aggregator.Aggregate(l.store, now)
	if err := l.snapshotStore.Put(ctx, snapshot); err != nil {
		svcErr := errSinkWriteFailed(err)
		metricCyclesTotal.WithLabelValues(svcErr.Code).Inc()
		logger.Error().Err(err).Msg("failed to write snapshot")
		return svcErr
	}

	metricCyclesTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricCycleDurationSeconds.WithLabelValues().Observe(time.Since(start).Seconds())
	logger.Debug().
		Int("evicted", evicted).
		Int("entries", len(snapshot.Entries)).
		Msg("snapshot written")
	return nil
}

func errorCode(err error) string {
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		return svcErr.Code
	}
	return svcerrors.NewInternalErrorUndefined(err).Code
}

// safely runs fn with a cycle-scoped logger and keeps a panic from stopping
// the loop.
func (l *ingestionLoop) safely(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx = l.logger.With().
		Str(loggers.FieldCycleID, ulid.NewULID()).
		Logger().WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("ingestion loop panic recovered: %v", r)

			var panicErr error
			if e, ok := r.(error); ok {
				panicErr = e
			} else {
				panicErr = fmt.Errorf("%v", r)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricCyclesTotal.WithLabelValues(svcErr.Code).Inc()
			err = nil
		}
	}()

	return fn(ctx)
}
