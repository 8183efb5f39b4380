package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskStore implements store.TaskStore in memory.
type TaskStore struct {
	mu     sync.RWMutex
	nextID int64
	// order holds task IDs in insertion order.
	order []int64
	byID  map[int64]*domain.Task
	now   func() time.Time
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		nextID: 1,
		byID:   make(map[int64]*domain.Task),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "create", "validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := task.Clone()
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.nextID++

	s.byID[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	task.ID = stored.ID
	task.CreatedAt = now
	task.UpdatedAt = now

	logger.FromContext(ctx).Debug("task created",
		slog.Int64("task_id", stored.ID),
		slog.Int64("user_id", stored.UserID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return t.Clone(), nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, q store.TaskQuery) ([]*domain.Task, error) {
	s.mu.RLock()
	matched := s.filterLocked(q.OwnerID, q.Status)
	s.mu.RUnlock()

	sortTasks(matched, q.SortBy)

	start := q.Skip
	if start < 0 {
		start = 0
	}
	if start >= len(matched) {
		return []*domain.Task{}, nil
	}
	end := len(matched)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	return matched[start:end], nil
}

// Count implements store.TaskStore.Count
func (s *TaskStore) Count(ctx context.Context, ownerID int64, status *domain.TaskStatus) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, id := range s.order {
		if matches(s.byID[id], ownerID, status) {
			n++
		}
	}
	return n, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, id int64, u domain.TaskUpdate) (*domain.Task, error) {
	if err := u.Validate(); err != nil {
		return nil, store.NewStoreError("task", "update", "validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	now := s.now()
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	u.Apply(t, now)

	logger.FromContext(ctx).Debug("task updated", slog.Int64("task_id", id))
	return t.Clone(), nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	logger.FromContext(ctx).Debug("task deleted", slog.Int64("task_id", id))
	return nil
}

// ListAll implements store.TaskStore.ListAll
func (s *TaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, nil
}

// filterLocked returns copies of the owner's matching tasks in insertion
// order. The caller must hold s.mu.
func (s *TaskStore) filterLocked(ownerID int64, status *domain.TaskStatus) []*domain.Task {
	out := make([]*domain.Task, 0)
	for _, id := range s.order {
		t := s.byID[id]
		if matches(t, ownerID, status) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func matches(t *domain.Task, ownerID int64, status *domain.TaskStatus) bool {
	if t.UserID != ownerID {
		return false
	}
	return status == nil || t.Status == *status
}

// sortTasks orders tasks in place by the named field. A bare field sorts
// descending, a "-" prefix ascending. Unknown fields leave the order as is.
func sortTasks(tasks []*domain.Task, sortBy string) {
	if sortBy == "" {
		sortBy = store.DefaultSortField
	}
	ascending := strings.HasPrefix(sortBy, "-")
	field := strings.TrimPrefix(sortBy, "-")

	cmp := compareFunc(field)
	if cmp == nil {
		return
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if ascending {
			return cmp(tasks[i], tasks[j]) < 0
		}
		return cmp(tasks[i], tasks[j]) > 0
	})
}

func compareFunc(field string) func(a, b *domain.Task) int {
	switch field {
	case "id":
		return func(a, b *domain.Task) int { return compareInt(a.ID, b.ID) }
	case "title":
		return func(a, b *domain.Task) int { return strings.Compare(a.Title, b.Title) }
	case "status":
		return func(a, b *domain.Task) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case "created_at":
		return func(a, b *domain.Task) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "updated_at":
		return func(a, b *domain.Task) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	default:
		return nil
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
