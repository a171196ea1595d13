package http

import (
	"encoding/json"
	"net/http"
	"time"

	"emontx-aggregator/internal/models"
	"emontx-aggregator/internal/stores"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// SnapshotResponse is the JSON body of GET /snapshot.
type SnapshotResponse struct {
	CapturedAt time.Time              `json:"capturedAt"`
	Timestamp  int64                  `json:"ts"`
	Entries    []models.SnapshotEntry `json:"entries"`
}

type snapshotHandler struct {
	snapshotStore stores.SnapshotStore
}

func NewSnapshotHandler(snapshotStore stores.SnapshotStore) AppHttpHandler {
	return &snapshotHandler{snapshotStore: snapshotStore}
}

// Handle serves GET /snapshot. ?format=text returns the same bytes as the
// output file.
func (h *snapshotHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatText {
		return errInvalidFormat(format)
	}

	snapshot, ok := h.snapshotStore.Latest()
	if !ok {
		return errSnapshotNotFound()
	}

	if format == formatText {
		w.Header().Set(headerContentType, "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(snapshot.Text())
		return nil
	}

	entries := snapshot.Entries
	if entries == nil {
		entries = []models.SnapshotEntry{}
	}
	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(SnapshotResponse{
		CapturedAt: snapshot.CapturedAt,
		Timestamp:  snapshot.CapturedAt.Unix(),
		Entries:    entries,
	})
}
