package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// UserStore implements store.UserStore in memory.
type UserStore struct {
	mu         sync.RWMutex
	nextID     int64
	byID       map[int64]*domain.User
	byUsername map[string]int64
	byEmail    map[string]int64
	now        func() time.Time
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		nextID:     1,
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create implements store.UserStore.Create. On success the user's ID and
// CreatedAt are populated.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[user.Username]; taken {
		log.Debug("username already registered", slog.String("username", user.Username))
		return store.ErrUsernameExists
	}
	if _, taken := s.byEmail[user.Email]; taken {
		log.Debug("email already registered")
		return store.ErrEmailExists
	}

	stored := *user
	stored.ID = s.nextID
	stored.CreatedAt = s.now()
	s.nextID++

	s.byID[stored.ID] = &stored
	s.byUsername[stored.Username] = stored.ID
	s.byEmail[stored.Email] = stored.ID

	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt

	log.Debug("user created",
		slog.Int64("user_id", stored.ID),
		slog.String("role", string(stored.Role)))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	c := *s.byID[id]
	return &c, nil
}

// UsernameExists implements store.UserStore.UsernameExists
func (s *UserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byUsername[username]
	return ok, nil
}

// EmailExists implements store.UserStore.EmailExists
func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}
