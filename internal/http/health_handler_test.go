package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	storemocks "emontx-aggregator/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	snapshotStore := storemocks.NewMockSnapshotStore(ctrl)
	gomock.InOrder(
		snapshotStore.EXPECT().Latest().Return(nil, false),
		snapshotStore.EXPECT().Latest().Return(testSnapshot(), true),
	)
	handler := NewHealthHandler(snapshotStore)

	rr := httptest.NewRecorder()
	require.NoError(t, handler.Handle(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	require.NoError(t, handler.Handle(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil)))
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.LastSnapshotAt)
	assert.Equal(t, capturedAt, *resp.LastSnapshotAt)
}
