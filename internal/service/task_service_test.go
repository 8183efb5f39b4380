package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	owner    = &domain.User{ID: 1, Username: "owner", Role: domain.RoleUser}
	intruder = &domain.User{ID: 2, Username: "intruder", Role: domain.RoleUser}
	admin    = &domain.User{ID: 3, Username: "admin", Role: domain.RoleAdmin}
)

func newTaskService(t *testing.T) (service.TaskService, *memory.TaskStore) {
	t.Helper()
	log, _ := logger.NewTestLogger()
	taskStore := memory.NewTaskStore()
	svc, err := service.NewTaskService(taskStore, log)
	require.NoError(t, err)
	return svc, taskStore
}

func strPtr(s string) *string { return &s }

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskService(t)

	task, err := svc.CreateTask(ctx, owner, "Write docs", strPtr("for the API"), "")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, task.UserID)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)

	_, err = svc.CreateTask(ctx, owner, "", nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
}

func TestTaskService_Ownership(t *testing.T) {
	ctx := context.Background()
	svc, taskStore := newTaskService(t)

	task, err := svc.CreateTask(ctx, owner, "Private", strPtr("secret"), domain.TaskStatusTodo)
	require.NoError(t, err)

	t.Run("owner reads", func(t *testing.T) {
		got, err := svc.GetTask(ctx, owner, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("other user cannot read", func(t *testing.T) {
		_, err := svc.GetTask(ctx, intruder, task.ID)
		assert.ErrorIs(t, err, service.ErrTaskNotOwned)
	})

	t.Run("admin reads any task", func(t *testing.T) {
		_, err := svc.GetTask(ctx, admin, task.ID)
		assert.NoError(t, err)
	})

	t.Run("non-owner mutations leave the task unchanged", func(t *testing.T) {
		done := domain.TaskStatusDone
		for _, actor := range []*domain.User{intruder, admin} {
			_, err := svc.UpdateTask(ctx, actor, task.ID, domain.TaskUpdate{Status: &done})
			assert.ErrorIs(t, err, service.ErrTaskNotOwned)

			err = svc.DeleteTask(ctx, actor, task.ID)
			assert.ErrorIs(t, err, service.ErrTaskNotOwned)
		}

		stored, err := taskStore.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusTodo, stored.Status)
		assert.Equal(t, task.UpdatedAt, stored.UpdatedAt)
	})

	t.Run("owner updates and deletes", func(t *testing.T) {
		done := domain.TaskStatusDone
		updated, err := svc.UpdateTask(ctx, owner, task.ID, domain.TaskUpdate{Status: &done})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, updated.Status)
		assert.Equal(t, "Private", updated.Title)

		require.NoError(t, svc.DeleteTask(ctx, owner, task.ID))
		_, err = svc.GetTask(ctx, owner, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := svc.UpdateTask(ctx, owner, 999, domain.TaskUpdate{})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.ErrorIs(t, svc.DeleteTask(ctx, owner, 999), store.ErrTaskNotFound)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTaskService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateTask(ctx, owner, "mine", nil, domain.TaskStatusDone)
		require.NoError(t, err)
	}
	_, err := svc.CreateTask(ctx, owner, "mine too", nil, domain.TaskStatusTodo)
	require.NoError(t, err)
	_, err = svc.CreateTask(ctx, intruder, "theirs", nil, domain.TaskStatusDone)
	require.NoError(t, err)

	done := domain.TaskStatusDone
	// OwnerID in the query is ignored in favour of the actor.
	tasks, total, err := svc.ListTasks(ctx, owner, store.TaskQuery{OwnerID: intruder.ID, Status: &done, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, 3, total)
	for _, task := range tasks {
		assert.Equal(t, owner.ID, task.UserID)
	}

	all, err := svc.ListAllTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestTaskService_StoreFailures(t *testing.T) {
	ctx := context.Background()
	log, _ := logger.NewTestLogger()
	taskStore := new(mocks.TaskStore)
	svc, err := service.NewTaskService(taskStore, log)
	require.NoError(t, err)

	boom := errors.New("boom")
	taskStore.On("List", mock.Anything, mock.MatchedBy(func(q store.TaskQuery) bool {
		return q.OwnerID == owner.ID
	})).Return(nil, boom)
	taskStore.On("ListAll", mock.Anything).Return(nil, boom)

	_, _, err = svc.ListTasks(ctx, owner, store.TaskQuery{Limit: 10})
	assert.ErrorIs(t, err, boom)

	_, err = svc.ListAllTasks(ctx)
	var serviceErr *service.ServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, "list_all", serviceErr.Op)

	taskStore.AssertExpectations(t)

	_, err = service.NewTaskService(nil, log)
	assert.Error(t, err)
}
