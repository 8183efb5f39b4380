package api

import (
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72,password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	// AccessToken is the JWT token used for API authorization
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      string  `json:"status"      validate:"omitempty,oneof=todo in_progress done"`
}

// UpdateTaskRequest defines the payload for PUT and PATCH. Omitted fields
// are left unchanged; "description": null clears the description.
type UpdateTaskRequest struct {
	Title       *string                 `json:"title"`
	Description domain.Optional[string] `json:"description"`
	Status      *string                 `json:"status"`
}

// Validate checks the present fields with the domain rules.
func (r UpdateTaskRequest) Validate() error {
	return r.ToUpdate().Validate()
}

// ToUpdate converts the request into a domain update.
func (r UpdateTaskRequest) ToUpdate() domain.TaskUpdate {
	u := domain.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		u.Status = &status
	}
	return u
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TaskListResponse is one page of the caller's tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

// BackgroundJobResponse acknowledges an enqueued job.
type BackgroundJobResponse struct {
	Message  string `json:"message"`
	TaskName string `json:"task_name"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
