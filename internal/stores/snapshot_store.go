package stores

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"

	"emontx-aggregator/internal/models"
	"emontx-aggregator/internal/shared/filestorages"
)

// SnapshotStore publishes each cycle's snapshot as a single text file that is
// replaced atomically, so a consumer reading the file sees either the
// previous cycle or the new one. The last published snapshot is also kept in
// memory for the status endpoint.
//
//go:generate mockgen -source=snapshot_store.go -destination=./mocks/snapshot_store_mock.go -package=mocks
type SnapshotStore interface {
	Put(ctx context.Context, snapshot *models.Snapshot) error
	Latest() (*models.Snapshot, bool)
}

type snapshotStore struct {
	fileStorage filestorages.FileStorage
	fileKey     string
	latest      atomic.Pointer[models.Snapshot]
}

func NewSnapshotStore(fileStorage filestorages.FileStorage, fileKey string) SnapshotStore {
	return &snapshotStore{fileStorage: fileStorage, fileKey: fileKey}
}

func (s *snapshotStore) Put(ctx context.Context, snapshot *models.Snapshot) error {
	reader := bytes.NewReader(snapshot.Text())
	_, err := s.fileStorage.Put(ctx, s.fileKey, reader, filestorages.PutOptions{})
	if err != nil {
		return fmt.Errorf("failed to put snapshot: %w", err)
	}
	s.latest.Store(snapshot)
	return nil
}

func (s *snapshotStore) Latest() (*models.Snapshot, bool) {
	snapshot := s.latest.Load()
	return snapshot, snapshot != nil
}
