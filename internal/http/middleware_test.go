package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emontx-aggregator/internal/shared/loggers"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, level string) (loggers.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := loggers.NewWithWriter(level, &buf)
	require.NoError(t, err)
	return logger, &buf
}

func decodeErrorResponse(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var errorResponse ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errorResponse))
	return errorResponse
}

func TestMwRequestID_GeneratesIDWhenNotProvided(t *testing.T) {
	t.Parallel()

	logger, _ := newTestLogger(t, "info")
	handler := mwRequestID(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ULIDs are 26 characters.
		assert.Len(t, r.Header.Get(headerRequestID), 26)
		assert.NotNil(t, loggers.Ctx(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/snapshot", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMwRequestID_UsesProvidedID(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger(t, "info")
	handler := mwRequestID(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "probe-42", r.Header.Get(headerRequestID))
		loggers.Ctx(r.Context()).Info().Msg("inside handler")
	}))

	req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)
	req.Header.Set(headerRequestID, "probe-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"probe-42"`)
}

func TestMwRecoverer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		panic any
	}{
		{name: "string panic", panic: "snapshot exploded"},
		{name: "error panic", panic: assert.AnError},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := newTestLogger(t, "debug")
			// Same order as setupMiddleware: the recoverer sees the request logger.
			handler := mwRequestID(logger)(mwRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panic)
			})))

			req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)
			req.Header.Set(headerRequestID, "req-1")
			rr := httptest.NewRecorder()
			assert.NotPanics(t, func() { handler.ServeHTTP(rr, req) })

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get(headerContentType))

			errorResponse := decodeErrorResponse(t, rr)
			assert.Equal(t, "req-1", errorResponse.RequestID)
			assert.Equal(t, "internal", errorResponse.ErrorCategory)
			assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
			assert.Equal(t, "internal server error", errorResponse.ErrorDescription)
			assert.Contains(t, buf.String(), loggers.FieldErrorStack)
		})
	}
}

func TestMwRecoverer_PassesThroughWhenNoPanic(t *testing.T) {
	t.Parallel()

	handler := mwRecoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("success"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
}

func TestMwRequestCompletionLog_ProbesAtDebug(t *testing.T) {
	t.Parallel()

	logger, buf := newTestLogger(t, "info")
	router := chi.NewRouter()
	setupMiddleware(router, logger)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {})
	router.Get("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotContains(t, buf.String(), "request completed")

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/snapshot", nil))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"http_status":404`)
	assert.Contains(t, lines[0], `"http_path":"/snapshot"`)
}

func TestSetupMiddleware_Integration(t *testing.T) {
	t.Parallel()

	logger, _ := newTestLogger(t, "info")
	router := chi.NewRouter()
	setupMiddleware(router, logger)

	router.Get("/test-id", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get(headerRequestID))
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/test-panic", func(w http.ResponseWriter, r *http.Request) {
		panic("integration test panic")
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test-id", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test-panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	errorResponse := decodeErrorResponse(t, rr)
	assert.NotEmpty(t, errorResponse.RequestID)
	assert.Equal(t, "SYS_9000", errorResponse.ErrorCode)
}
