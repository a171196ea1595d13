package stores

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"emontx-aggregator/internal/models"
	"emontx-aggregator/internal/shared/filestorages"
	"emontx-aggregator/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSnapshotStore_Put_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewSnapshotStore(mockFileStorage, "emontx")

	ctx := context.Background()
	snapshot := models.NewSnapshot(time.Unix(1700000000, 0), []models.SnapshotEntry{
		{Category: models.CategoryTemperature, SeriesID: "a", Key: "Ta", Value: 21},
		{Category: models.CategoryHumidity, SeriesID: "a", Key: "Ha", Value: 47},
	})

	mockFileStorage.EXPECT().
		Put(ctx, "emontx", gomock.Any(), filestorages.PutOptions{}).
		DoAndReturn(func(ctx context.Context, key string, r io.Reader, opts filestorages.PutOptions) (*filestorages.PutResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "TS=1700000000\nTa=21.0\nHa=47\n", string(data))
			return &filestorages.PutResult{FileKey: key, Bytes: int64(len(data))}, nil
		})

	_, ok := store.Latest()
	assert.False(t, ok)

	err := store.Put(ctx, snapshot)
	require.NoError(t, err)

	latest, ok := store.Latest()
	require.True(t, ok)
	assert.Same(t, snapshot, latest)
}

func TestSnapshotStore_Put_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	store := NewSnapshotStore(mockFileStorage, "emontx")

	ctx := context.Background()
	putError := errors.New("disk full")

	mockFileStorage.EXPECT().
		Put(ctx, "emontx", gomock.Any(), filestorages.PutOptions{}).
		Return(nil, putError)

	err := store.Put(ctx, models.NewSnapshot(time.Unix(1700000000, 0), nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, putError)
	assert.Contains(t, err.Error(), "failed to put snapshot")

	_, ok := store.Latest()
	assert.False(t, ok, "failed writes are not published as latest")
}

func TestSnapshotStore_Put_RealFileStorage(t *testing.T) {
	t.Parallel()

	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	store := NewSnapshotStore(fileStorage, "emontx")

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, models.NewSnapshot(time.Unix(1, 0), []models.SnapshotEntry{
		{Category: models.CategoryPower, SeriesID: "ct1", Key: "ct1", Value: 10.5},
	})))
	require.NoError(t, store.Put(ctx, models.NewSnapshot(time.Unix(2, 0), nil)))

	latest, ok := store.Latest()
	require.True(t, ok)
	assert.Equal(t, int64(2), latest.CapturedAt.Unix())
	assert.Empty(t, latest.Entries)
}
