// Package shared holds the HTTP building blocks used by both the handlers
// and the middleware: the error envelope, JSON helpers, request validation,
// bearer-token parsing, and request-scoped context values.
package shared
