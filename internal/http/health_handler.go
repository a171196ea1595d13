package http

import (
	"encoding/json"
	"net/http"
	"time"

	"emontx-aggregator/internal/stores"
)

// HealthResponse is the JSON body of GET /healthz.
type HealthResponse struct {
	Status         string     `json:"status"`
	LastSnapshotAt *time.Time `json:"lastSnapshotAt,omitempty"`
}

type healthHandler struct {
	snapshotStore stores.SnapshotStore
}

func NewHealthHandler(snapshotStore stores.SnapshotStore) AppHttpHandler {
	return &healthHandler{snapshotStore: snapshotStore}
}

// Handle serves GET /healthz. The process is healthy as long as it answers;
// the time of the last written snapshot lets a probe detect a stalled loop.
func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	resp := HealthResponse{Status: "ok"}
	if snapshot, ok := h.snapshotStore.Latest(); ok {
		capturedAt := snapshot.CapturedAt
		resp.LastSnapshotAt = &capturedAt
	}

	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp)
}
