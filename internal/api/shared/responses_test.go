package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithLogger(t *testing.T, requestID string) (*http.Request, *logger.TestLogBuffer) {
	t.Helper()
	log, buf := logger.NewTestLogger()
	ctx := logger.WithLogger(context.Background(), log)
	ctx = logger.WithRequestID(ctx, requestID)
	return httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil).WithContext(ctx), buf
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name      string
		apiErr    *APIError
		wantCode  string
		wantLevel string
	}{
		{name: "not found", apiErr: NotFound("Task 7 not found"), wantCode: CodeNotFound, wantLevel: "DEBUG"},
		{name: "validation", apiErr: Validation("title is required"), wantCode: CodeValidation, wantLevel: "DEBUG"},
		{name: "rate limited", apiErr: TooManyRequests("slow down", 30*time.Second), wantCode: CodeRateLimitExceeded, wantLevel: "WARN"},
		{name: "internal", apiErr: Internal(errors.New("boom")), wantCode: CodeInternal, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, buf := requestWithLogger(t, "req-123")
			w := httptest.NewRecorder()

			RespondWithError(w, req, tt.apiErr)

			assert.Equal(t, tt.apiErr.Status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.apiErr.Message, resp.Error.Message)
			assert.Equal(t, "req-123", resp.Error.RequestID)

			entries, err := buf.Entries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			assert.Equal(t, "req-123", entries[0]["request_id"])
		})
	}
}

func TestRespondWithError_RetryAfter(t *testing.T) {
	req, _ := requestWithLogger(t, "req-1")
	w := httptest.NewRecorder()

	RespondWithError(w, req, TooManyRequests("Too many requests. Please try again later.", 12*time.Second))

	assert.Equal(t, "12", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":{"code":"RATE_LIMIT_EXCEEDED","message":"Too many requests. Please try again later.","request_id":"req-1","retry_after":12}}`, w.Body.String())
}

func TestRespondWithError_DoesNotLeakCause(t *testing.T) {
	req, buf := requestWithLogger(t, "req-2")
	w := httptest.NewRecorder()

	cause := errors.New("dial tcp: password=hunter2 rejected")
	RespondWithError(w, req, Internal(cause))

	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Contains(t, w.Body.String(), GenericErrorMessage)
	assert.NotContains(t, buf.String(), "hunter2", "causes are redacted before logging")
}

func TestAPIError(t *testing.T) {
	base := Forbidden("Admin access required")
	cause := errors.New("role user")
	withCause := base.WithCause(cause)

	assert.Nil(t, base.Err, "WithCause copies")
	assert.ErrorIs(t, withCause, cause)
	assert.Equal(t, "FORBIDDEN (403): Admin access required: role user", withCause.Error())
	assert.Equal(t, http.StatusMethodNotAllowed, MethodNotAllowed("x").Status)
	assert.Equal(t, http.StatusServiceUnavailable, ServiceUnavailable("x").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").Status)
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").Status)
}
