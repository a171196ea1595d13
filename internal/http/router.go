package http

import (
	"net/http"

	"emontx-aggregator/internal/shared/loggers"
	"emontx-aggregator/internal/shared/metrics"
	"emontx-aggregator/internal/stores"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates the status router: latest snapshot, health and metrics.
func NewRouter(snapshotStore stores.SnapshotStore, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	snapshotHandler := NewSnapshotHandler(snapshotStore)
	healthHandler := NewHealthHandler(snapshotStore)

	router.Get("/snapshot", errorHandlingAdapter(snapshotHandler))
	router.Get("/healthz", errorHandlingAdapter(healthHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
