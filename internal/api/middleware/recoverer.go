package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// Recoverer turns a panic in a downstream handler into a 500 envelope.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				"panic", redact.String(fmt.Sprint(rec)),
				"stack", string(debug.Stack()))

			shared.RespondWithError(w, r, shared.Internal(fmt.Errorf("panic: %v", rec)))
		}()

		next.ServeHTTP(w, r)
	})
}
