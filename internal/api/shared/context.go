package shared

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// ContextKey is the type of context keys owned by this package.
type ContextKey string

const (
	// UserContextKey holds the authenticated *domain.User.
	UserContextKey ContextKey = "user"

	// ClientIdentityKey holds the rate-limit identity of the caller.
	ClientIdentityKey ContextKey = "client_identity"
)

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok && user != nil
}

// WithClientIdentity returns a copy of ctx carrying the caller's identity.
func WithClientIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, ClientIdentityKey, identity)
}

// ClientIdentity returns the caller's identity, or "".
func ClientIdentity(ctx context.Context) string {
	id, _ := ctx.Value(ClientIdentityKey).(string)
	return id
}
