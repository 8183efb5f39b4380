package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TaskStore is a mock of store.TaskStore interface for use with testify/mock
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TaskStore.List
func (m *TaskStore) List(ctx context.Context, q store.TaskQuery) ([]*domain.Task, error) {
	args := m.Called(ctx, q)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Count is a mock implementation of store.TaskStore.Count
func (m *TaskStore) Count(ctx context.Context, ownerID int64, status *domain.TaskStatus) (int, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Int(0), args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TaskStore) Update(ctx context.Context, id int64, u domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, id, u)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TaskStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListAll is a mock implementation of store.TaskStore.ListAll
func (m *TaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}
