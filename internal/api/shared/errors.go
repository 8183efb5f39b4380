package shared

import (
	"fmt"
	"net/http"
	"time"
)

// Error codes rendered in the envelope.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeValidation         = "VALIDATION_ERROR"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
)

// GenericErrorMessage is shown for every failure whose cause is not safe to expose.
const GenericErrorMessage = "An unexpected error occurred"

// APIError is a failure that knows how it should be rendered.
// Message is always safe to show to clients; Err is only ever logged.
type APIError struct {
	Status  int
	Code    string
	Message string
	// RetryAfter is sent as the Retry-After header when positive.
	RetryAfter time.Duration
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Err
}

// WithCause returns a copy of e that records err for logging.
func (e *APIError) WithCause(err error) *APIError {
	c := *e
	c.Err = err
	return &c
}

func newAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// BadRequest is a malformed request or a business conflict.
func BadRequest(message string) *APIError {
	return newAPIError(http.StatusBadRequest, CodeBadRequest, message)
}

// Unauthorized is a missing or rejected credential.
func Unauthorized(message string) *APIError {
	return newAPIError(http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden is an authenticated caller without permission.
func Forbidden(message string) *APIError {
	return newAPIError(http.StatusForbidden, CodeForbidden, message)
}

// NotFound is an unknown resource or route.
func NotFound(message string) *APIError {
	return newAPIError(http.StatusNotFound, CodeNotFound, message)
}

// MethodNotAllowed is a known route with the wrong method.
func MethodNotAllowed(message string) *APIError {
	return newAPIError(http.StatusMethodNotAllowed, CodeMethodNotAllowed, message)
}

// Validation is a well-formed request whose content breaks a rule.
func Validation(message string) *APIError {
	return newAPIError(http.StatusUnprocessableEntity, CodeValidation, message)
}

// TooManyRequests is a caller over its rate limit.
func TooManyRequests(message string, retryAfter time.Duration) *APIError {
	e := newAPIError(http.StatusTooManyRequests, CodeRateLimitExceeded, message)
	e.RetryAfter = retryAfter
	return e
}

// ServiceUnavailable is a temporary capacity problem.
func ServiceUnavailable(message string) *APIError {
	return newAPIError(http.StatusServiceUnavailable, CodeServiceUnavailable, message)
}

// Internal is any failure the caller cannot act on.
func Internal(err error) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: GenericErrorMessage,
		Err:     err,
	}
}
