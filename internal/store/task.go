package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// DefaultSortField is used when a query does not name a sort field.
const DefaultSortField = "created_at"

// TaskQuery selects a page of one user's tasks.
type TaskQuery struct {
	OwnerID int64
	// Status restricts results to a single status when non-nil.
	Status *domain.TaskStatus
	// SortBy names the sort field. A bare name sorts descending (newest
	// first for timestamps); a leading "-" sorts ascending. Records with
	// equal keys keep insertion order.
	SortBy string
	Skip   int
	Limit  int
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task, assigning its ID and stamping
	// CreatedAt and UpdatedAt with the same instant.
	// Returns ErrInvalidEntity if the task fails domain validation.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the owner's tasks filtered, sorted, then windowed by q.
	List(ctx context.Context, q TaskQuery) ([]*domain.Task, error)

	// Count returns how many of the owner's tasks match status (all if nil),
	// independent of paging.
	Count(ctx context.Context, ownerID int64, status *domain.TaskStatus) (int, error)

	// Update applies the present fields of u and refreshes UpdatedAt.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, u domain.TaskUpdate) (*domain.Task, error)

	// Delete removes a task.
	// Returns ErrTaskNotFound if nothing was removed.
	Delete(ctx context.Context, id int64) error

	// ListAll returns every task in insertion order. Callers are
	// responsible for restricting this to privileged users.
	ListAll(ctx context.Context) ([]*domain.Task, error)
}
