package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user, assigning its ID and CreatedAt.
	// The uniqueness checks and the insert happen atomically.
	// Returns ErrUsernameExists or ErrEmailExists if either is already taken,
	// and ErrInvalidEntity if the user fails domain validation. A failed
	// Create leaves the store unchanged.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// UsernameExists reports whether the username is already registered.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether the email is already registered.
	EmailExists(ctx context.Context, email string) (bool, error)
}
