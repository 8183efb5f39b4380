package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// ProcessTimeHeader reports the handler latency in seconds.
const ProcessTimeHeader = "X-Process-Time"

// Logging returns a stage that logs the start and end of every request and
// adds the X-Process-Time header. Handlers downstream get a logger tagged
// with the request id through logger.FromContext.
func Logging(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			reqLogger := base.With(slog.String("request_id", logger.RequestIDFromContext(ctx)))
			ctx = logger.WithLogger(ctx, reqLogger)

			reqLogger.Info("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			status := http.StatusOK
			var bytes int64
			headerWritten := false

			// The header must be set before the status line goes out.
			writeProcessTime := func() {
				if headerWritten {
					return
				}
				headerWritten = true
				elapsed := time.Since(start).Seconds()
				w.Header().Set(ProcessTimeHeader, strconv.FormatFloat(elapsed, 'f', 6, 64))
			}

			hooked := httpsnoop.Wrap(w, httpsnoop.Hooks{
				WriteHeader: func(orig httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
					return func(code int) {
						if !headerWritten {
							status = code
						}
						writeProcessTime()
						orig(code)
					}
				},
				Write: func(orig httpsnoop.WriteFunc) httpsnoop.WriteFunc {
					return func(b []byte) (int, error) {
						writeProcessTime()
						n, err := orig(b)
						bytes += int64(n)
						return n, err
					}
				},
			})

			next.ServeHTTP(hooked, r.WithContext(ctx))
			writeProcessTime()

			reqLogger.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", bytes),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
