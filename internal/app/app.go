package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"emontx-aggregator/internal/aggregators"
	"emontx-aggregator/internal/decoders"
	internalhttp "emontx-aggregator/internal/http"
	"emontx-aggregator/internal/ingestors"
	"emontx-aggregator/internal/shared/configs"
	"emontx-aggregator/internal/shared/filestorages"
	"emontx-aggregator/internal/shared/loggers"
	"emontx-aggregator/internal/sources"
	"emontx-aggregator/internal/stores"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger

	source sources.LineSource
	loop   ingestors.IngestionLoop
	server *http.Server // nil unless server.enabled
}

// newSource opens the configured line source.
var newSource = func(ctx context.Context, conf configs.SourceConfig) (sources.LineSource, error) {
	sourceConf := sources.Config{
		BufferSize:   conf.BufferSize,
		MaxLineBytes: conf.MaxLineBytes,
	}
	switch conf.Kind {
	case configs.SourceSerial:
		return sources.NewSerialSource(ctx, sources.SerialConfig{
			Device:   conf.Serial.Device,
			BaudRate: conf.Serial.BaudRate,
		}, sourceConf)
	case configs.SourceReader:
		return sources.NewReaderSource(ctx, conf.Reader.Path, sourceConf)
	case configs.SourceMQTT:
		return sources.NewMQTTSource(ctx, sources.MQTTConfig{
			Broker:         conf.MQTT.Broker,
			Topic:          conf.MQTT.Topic,
			ClientID:       conf.MQTT.ClientID,
			QoS:            conf.MQTT.QoS,
			KeepAlive:      conf.MQTT.KeepAlive,
			ConnectTimeout: conf.MQTT.ConnectTimeout,
		}, sourceConf)
	default:
		return nil, fmt.Errorf("unknown source kind %q", conf.Kind)
	}
}

// New creates and initializes a new App instance. The source is opened
// immediately; ctx bounds its lifetime.
func New(ctx context.Context, config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "emontx-aggregator").
		Logger()

	fileStorage, err := filestorages.NewFileStorage(config.Sink.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	snapshotStore := stores.NewSnapshotStore(fileStorage, config.Sink.FileKey)

	source, err := newSource(ctx, config.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source: %w", config.Source.Kind, err)
	}

	loopLogger := appLogger.With().
		Str(loggers.FieldComponent, "loop").
		Str(loggers.FieldSource, source.Name()).
		Logger()
	loop := ingestors.NewIngestionLoop(
		source,
		decoders.NewRecordDecoder(),
		stores.NewWindowedStore(),
		aggregators.NewSeriesAggregator(),
		snapshotStore,
		ingestors.Options{
			Window:       config.Window.Duration,
			EmitMode:     ingestors.EmitMode(config.Emit.Mode),
			EmitInterval: config.Emit.Interval,
		},
		loopLogger,
	)

	app := &App{
		config:    config,
		appLogger: appLogger,
		source:    source,
		loop:      loop,
	}

	if config.Server.Enabled {
		httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
		app.server = &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Server.Port),
			Handler:           internalhttp.NewRouter(snapshotStore, httpLogger),
			ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
			ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
			WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
			IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
		}
	}

	return app, nil
}

// Run blocks until ctx is cancelled or the loop stops. End of input on a
// reader source is a clean exit; every other loop error is returned so the
// supervisor can restart the process.
func (app *App) Run(ctx context.Context) error {
	app.appLogger.Info().
		Msgf("Starting emontx-aggregator (source=%s, window=%s, emit=%s, output=%s/%s, status_server=%t)",
			app.config.Source.Kind,
			app.config.Window.Duration,
			app.config.Emit.Mode,
			app.config.Sink.RootDir,
			app.config.Sink.FileKey,
			app.config.Server.Enabled)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// A loop that stops for any reason takes the status server down too.
		defer cancel()
		defer func() {
			if err := app.source.Close(); err != nil {
				app.appLogger.Warn().Err(err).Msg("failed to close source")
			}
		}()
		return app.loop.Run(gctx)
	})

	if app.server != nil {
		g.Go(func() error {
			if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("status server failed: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := app.server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			app.appLogger.Info().Msg("Status server stopped")
			return nil
		})
	}

	err := g.Wait()
	if err != nil && app.config.Source.Kind == configs.SourceReader && errors.Is(err, io.EOF) {
		app.appLogger.Info().Msg("Input exhausted")
		return nil
	}
	if err != nil {
		return err
	}
	app.appLogger.Info().Msg("Stopped")
	return nil
}
