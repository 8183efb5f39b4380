package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/job"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"username exists", store.ErrUsernameExists, http.StatusBadRequest, "Username already exists"},
		{"email exists wrapped", fmt.Errorf("create: %w", store.ErrEmailExists), http.StatusBadRequest, "Email already exists"},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Invalid or expired token"},
		{"not owned", service.NewServiceError("task", "get", service.ErrTaskNotOwned), http.StatusForbidden, "You don't have access to this task"},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"domain title", service.NewServiceError("task", "create", domain.ErrInvalidTitle), http.StatusUnprocessableEntity, domain.ErrInvalidTitle.Error()},
		{"field error", domain.NewValidationError("limit", "must be an integer between 1 and 100", domain.ErrValidation), http.StatusUnprocessableEntity, "limit must be an integer between 1 and 100"},
		{"invalid entity", fmt.Errorf("%w: odd", store.ErrInvalidEntity), http.StatusUnprocessableEntity, "Invalid entity data"},
		{"queue full", job.ErrQueueFull, http.StatusServiceUnavailable, "Background job queue is unavailable"},
		{"queue closed", fmt.Errorf("submit: %w", job.ErrQueueClosed), http.StatusServiceUnavailable, "Background job queue is unavailable"},
		{"api error passthrough", shared.NotFound("Task 3 not found"), http.StatusNotFound, "Task 3 not found"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, shared.GenericErrorMessage},
		{"nil", nil, http.StatusInternalServerError, shared.GenericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestMapError_KeepsCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("lookup: %w", store.ErrTaskNotFound)
	got := MapError(cause)
	assert.ErrorIs(t, got, store.ErrTaskNotFound)
	assert.NotContains(t, got.Message, "lookup")
}
