package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// dummyPassword is hashed once at construction so that logins for unknown
// usernames spend the same bcrypt time as logins with a wrong password.
const dummyPassword = "dummy-password-for-timing"

// UserService provides account registration and credential checks.
type UserService interface {
	// Register creates a user with the "user" role and emits UserRegistered.
	// Returns store.ErrUsernameExists or store.ErrEmailExists on conflict.
	Register(ctx context.Context, email, username, password string) (*domain.User, error)

	// Authenticate returns the user identified by username and password,
	// or ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// EnsureAdmin creates an admin account unless the username is already
	// taken. The boolean reports whether a user was created.
	EnsureAdmin(ctx context.Context, email, username, password string) (*domain.User, bool, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	emitter   events.EventEmitter
	dummyHash string
	logger    *slog.Logger
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*UserServiceImpl, error) {
	if userStore == nil {
		return nil, errors.New("userStore cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("hasher cannot be nil")
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		emitter:   emitter,
		dummyHash: dummyHash,
		logger:    logger.With("component", "user_service"),
	}, nil
}

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	user, err := s.create(ctx, email, username, password, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	event, err := events.NewEvent(events.UserRegistered, events.UserRegisteredPayload{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		// The account exists either way; follow-up work is best effort.
		s.logger.Warn("failed to emit user registered event",
			"error", redact.Error(err),
			"user_id", user.ID)
	}

	return user, nil
}

func (s *UserServiceImpl) create(
	ctx context.Context,
	email, username, password string,
	role domain.Role,
) (*domain.User, error) {
	// Cheap pre-checks spare a bcrypt round for obvious conflicts. The store
	// re-checks atomically on insert.
	if exists, err := s.userStore.UsernameExists(ctx, username); err != nil {
		return nil, NewServiceError("user", "register", err)
	} else if exists {
		s.logger.Debug("attempted to register existing username", "username", username)
		return nil, store.ErrUsernameExists
	}
	if exists, err := s.userStore.EmailExists(ctx, email); err != nil {
		return nil, NewServiceError("user", "register", err)
	} else if exists {
		s.logger.Debug("attempted to register existing email", "username", username)
		return nil, store.ErrEmailExists
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, NewServiceError("user", "register", err)
	}

	user, err := domain.NewUser(email, username, hashed, role)
	if err != nil {
		return nil, NewServiceError("user", "register", fmt.Errorf("%w: %w", domain.ErrValidation, err))
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("registration lost a uniqueness race", "username", username)
			return nil, err
		}
		s.logger.Error("failed to save user", "error", redact.Error(err), "username", username)
		return nil, NewServiceError("user", "register", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"role", string(user.Role))
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to look up user", "error", redact.Error(err))
			return nil, NewServiceError("user", "authenticate", err)
		}
		_ = s.hasher.Compare(s.dummyHash, password)
		s.logger.Debug("login attempt for unknown username")
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Debug("user authenticated", "user_id", user.ID)
	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user", "error", redact.Error(err), "user_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// EnsureAdmin implements UserService.EnsureAdmin
func (s *UserServiceImpl) EnsureAdmin(
	ctx context.Context,
	email, username, password string,
) (*domain.User, bool, error) {
	existing, err := s.userStore.GetByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin() {
			s.logger.Warn("configured admin username belongs to a regular user", "user_id", existing.ID)
		}
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, false, NewServiceError("user", "ensure_admin", err)
	}

	user, err := s.create(ctx, email, username, password, domain.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
