package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task operations on behalf of an authenticated user.
type TaskService interface {
	// CreateTask stores a new task owned by actor.
	CreateTask(ctx context.Context, actor *domain.User, title string, description *string, status domain.TaskStatus) (*domain.Task, error)

	// GetTask returns a task the actor owns. Admins may read any task.
	GetTask(ctx context.Context, actor *domain.User, id int64) (*domain.Task, error)

	// ListTasks returns one page of the actor's tasks plus the unpaged total.
	// q.OwnerID is overwritten with the actor's ID.
	ListTasks(ctx context.Context, actor *domain.User, q store.TaskQuery) ([]*domain.Task, int, error)

	// UpdateTask applies u to a task the actor owns. Admin status grants no
	// write access to other users' tasks.
	UpdateTask(ctx context.Context, actor *domain.User, id int64, u domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask removes a task the actor owns.
	DeleteTask(ctx context.Context, actor *domain.User, id int64) error

	// ListAllTasks returns every task. Callers restrict this to admins.
	ListAllTasks(ctx context.Context) ([]*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, errors.New("taskStore cannot be nil")
	}
	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	actor *domain.User,
	title string,
	description *string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	task, err := domain.NewTask(actor.ID, title, description, status)
	if err != nil {
		return nil, NewServiceError("task", "create", err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task", "error", redact.Error(err), "user_id", actor.ID)
		return nil, NewServiceError("task", "create", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "user_id", actor.ID)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, actor *domain.User, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Admins read across owners; writes below stay owner-only.
	if !task.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
		s.logger.Debug("task read denied", "task_id", id, "user_id", actor.ID)
		return nil, ErrTaskNotOwned
	}
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	actor *domain.User,
	q store.TaskQuery,
) ([]*domain.Task, int, error) {
	q.OwnerID = actor.ID

	tasks, err := s.taskStore.List(ctx, q)
	if err != nil {
		return nil, 0, NewServiceError("task", "list", err)
	}
	total, err := s.taskStore.Count(ctx, actor.ID, q.Status)
	if err != nil {
		return nil, 0, NewServiceError("task", "list", err)
	}
	return tasks, total, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	actor *domain.User,
	id int64,
	u domain.TaskUpdate,
) (*domain.Task, error) {
	if err := s.checkOwner(ctx, actor, id, "update"); err != nil {
		return nil, err
	}

	task, err := s.taskStore.Update(ctx, id, u)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("task", "update", err)
	}

	s.logger.Debug("task updated", "task_id", id, "user_id", actor.ID)
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.checkOwner(ctx, actor, id, "delete"); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Debug("task deleted", "task_id", id, "user_id", actor.ID)
	return nil
}

// ListAllTasks implements TaskService.ListAllTasks
func (s *taskServiceImpl) ListAllTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListAll(ctx)
	if err != nil {
		return nil, NewServiceError("task", "list_all", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) checkOwner(ctx context.Context, actor *domain.User, id int64, op string) error {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !task.IsOwnedBy(actor.ID) {
		s.logger.Debug("task mutation denied",
			"operation", op,
			"task_id", id,
			"user_id", actor.ID)
		return ErrTaskNotOwned
	}
	return nil
}
