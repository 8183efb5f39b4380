// Package service contains the application use cases. It sits between the
// HTTP layer and the store interfaces (internal/store): it hashes passwords,
// enforces task ownership, and emits domain events, but never depends on a
// concrete store implementation.
//
// Expected failures are returned as sentinel errors (ErrTaskNotOwned,
// ErrInvalidCredentials) or as the store's own sentinels; the API layer maps
// them to HTTP status codes.
package service
