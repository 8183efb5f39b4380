// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between clients and the
// services in internal/service, translating HTTP concerns to business
// operations and business errors back to the shared error envelope.
//
// Routing lives in cmd/server; the handlers here read their path
// parameters through chi.
package api
