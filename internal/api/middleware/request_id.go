package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// RequestIDHeader carries the correlation id of every response.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a fresh UUID to each request. The id is stored in the
// request context and written to the response header before the rest of the
// chain runs, so it is present even on error paths.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)

		ctx := logger.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
