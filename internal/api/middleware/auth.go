package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// Client-facing authentication failures.
const (
	msgMissingAuthHeader = "Missing authorization header"
	msgInvalidAuthHeader = "Invalid authorization header format"
	msgInvalidToken      = "Invalid or expired token"
	msgUserNotFound      = "User not found"
	msgAdminRequired     = "Admin access required"
)

// UserGetter loads the account a token was issued for.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      UserGetter
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users UserGetter) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate validates the bearer token, loads its user and stores the
// user in the request context. Every rejection is a 401 envelope.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, err := shared.BearerToken(r)
		if err != nil {
			msg := msgInvalidAuthHeader
			if errors.Is(err, shared.ErrMissingAuthHeader) {
				msg = msgMissingAuthHeader
			}
			shared.RespondWithError(w, r, shared.Unauthorized(msg).WithCause(err))
			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, auth.ErrInvalidToken) {
				shared.RespondWithError(w, r, shared.Unauthorized(msgInvalidToken).WithCause(err))
				return
			}
			shared.RespondWithError(w, r, shared.Internal(err))
			return
		}

		user, err := m.users.GetByID(ctx, claims.UserID)
		if err != nil {
			if store.IsNotFoundError(err) {
				shared.RespondWithError(w, r, shared.Unauthorized(msgUserNotFound).WithCause(err))
				return
			}
			shared.RespondWithError(w, r, shared.Internal(err))
			return
		}

		ctx = shared.WithUser(ctx, user)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("user_id", user.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects callers without the admin role. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := shared.UserFromContext(r.Context())
		if !ok {
			shared.RespondWithError(w, r, shared.Unauthorized(msgMissingAuthHeader))
			return
		}
		if !user.IsAdmin() {
			shared.RespondWithError(w, r, shared.Forbidden(msgAdminRequired))
			return
		}
		next.ServeHTTP(w, r)
	})
}
