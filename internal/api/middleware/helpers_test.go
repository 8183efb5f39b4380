package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// withTestLogger attaches a capturing logger to req.
func withTestLogger(req *http.Request) (*http.Request, *logger.TestLogBuffer) {
	log, buf := logger.NewTestLogger()
	return req.WithContext(logger.WithLogger(req.Context(), log)), buf
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorBody {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
})

// captureContext records the context the final handler saw.
func captureContext(dst *context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*dst = r.Context()
		w.WriteHeader(http.StatusNoContent)
	})
}
