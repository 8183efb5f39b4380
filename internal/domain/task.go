package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Field length bounds, counted in characters.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)

// Common validation errors for Task
var (
	ErrEmptyTaskOwner      = errors.New("task owner cannot be empty")
	ErrInvalidTitle        = errors.New("title must be between 1 and 200 characters")
	ErrDescriptionTooLong  = errors.New("description must be at most 1000 characters")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskTimeline = errors.New("updated_at cannot precede created_at")
)

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a task for the given owner. An empty status defaults to todo.
// The store assigns ID and timestamps on insert.
func NewTask(userID int64, title string, description *string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusTodo
	}

	task := &Task{
		UserID:      userID,
		Title:       title,
		Description: cloneString(description),
		Status:      status,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return ErrEmptyTaskOwner
	}

	if err := validateTitle(t.Title); err != nil {
		return err
	}

	if err := validateDescription(t.Description); err != nil {
		return err
	}

	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}

	if !t.CreatedAt.IsZero() && t.UpdatedAt.Before(t.CreatedAt) {
		return ErrInvalidTaskTimeline
	}

	return nil
}

// IsOwnedBy reports whether userID is the task owner.
func (t *Task) IsOwnedBy(userID int64) bool {
	return t.UserID == userID
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Description = cloneString(t.Description)
	return &c
}

// Valid reports whether s is one of the enumerated task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// TaskUpdate names every updatable task field. A nil pointer or an unset
// Optional leaves the field unchanged; Description set to null clears it.
type TaskUpdate struct {
	Title       *string
	Description Optional[string]
	Status      *TaskStatus
}

// IsEmpty reports whether the update would change no field.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && !u.Description.Set && u.Status == nil
}

// Validate checks the fields that are present.
func (u TaskUpdate) Validate() error {
	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return err
		}
	}

	if u.Description.Set {
		if err := validateDescription(u.Description.Value); err != nil {
			return err
		}
	}

	if u.Status != nil && !u.Status.Valid() {
		return ErrInvalidTaskStatus
	}

	return nil
}

// Apply writes the present fields onto t and stamps UpdatedAt with now.
func (u TaskUpdate) Apply(t *Task, now time.Time) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description.Set {
		t.Description = cloneString(u.Description.Value)
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	t.UpdatedAt = now
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 1 || n > TitleMaxLength {
		return ErrInvalidTitle
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > DescriptionMaxLength {
		return ErrDescriptionTooLong
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
