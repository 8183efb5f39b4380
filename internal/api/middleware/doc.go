// Package middleware contains the HTTP stages every request passes through
// before reaching a handler: correlation ids, request logging, panic
// recovery, rate limiting and bearer-token authentication.
//
// The stages are plain func(http.Handler) http.Handler values so they can be
// mounted with chi's Use. The expected order is
//
//	RequestID -> Logging -> Recoverer -> CORS -> RateLimit -> Authenticate
//
// RequestID must come first so every later stage, including error envelopes
// rendered by RateLimit and Authenticate, sees the same id.
package middleware
