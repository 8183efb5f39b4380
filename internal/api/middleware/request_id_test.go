package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen context.Context
	handler := RequestID(captureContext(&seen))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	header := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(header)
	require.NoError(t, err)
	assert.Equal(t, header, logger.RequestIDFromContext(seen))
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	handler := RequestID(okHandler)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get(RequestIDHeader)
		assert.False(t, seen[id], "duplicate request id %s", id)
		seen[id] = true
	}
}

func TestRequestID_InErrorEnvelope(t *testing.T) {
	t.Parallel()

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, shared.NotFound("Task 9 not found"))
	})

	rec := httptest.NewRecorder()
	RequestID(failing).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tasks/9", nil))

	body := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), body.RequestID)
	assert.NotEmpty(t, body.RequestID)
}
