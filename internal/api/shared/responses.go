package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// ErrorBody is the content of the error envelope.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	// RetryAfter is the number of seconds to wait, set only for 429.
	RetryAfter int `json:"retry_after,omitempty"`
}

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError renders apiErr as the error envelope and logs it.
//
// Log level strategy:
//   - 5xx errors: ERROR
//   - 429 Too Many Requests: WARN (operational concern)
//   - other 4xx errors: DEBUG
//
// The cause in apiErr.Err is logged after redaction and never sent.
func RespondWithError(w http.ResponseWriter, r *http.Request, apiErr *APIError) {
	ctx := r.Context()
	requestID := logger.RequestIDFromContext(ctx)

	body := ErrorBody{
		Code:      apiErr.Code,
		Message:   apiErr.Message,
		RequestID: requestID,
	}

	if apiErr.RetryAfter > 0 {
		seconds := int(apiErr.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		body.RetryAfter = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	logAttrs := []slog.Attr{
		slog.String("request_id", requestID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", apiErr.Status),
		slog.String("error_code", apiErr.Code),
		slog.String("user_message", apiErr.Message),
	}
	if apiErr.Err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(apiErr.Err)),
			slog.String("error_type", fmt.Sprintf("%T", apiErr.Err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case apiErr.Status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case apiErr.Status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	}

	logger.FromContext(ctx).LogAttrs(ctx, logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, apiErr.Status, ErrorResponse{Error: body})
}
