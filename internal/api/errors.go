package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/job"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// Client-facing messages for mapped errors.
const (
	msgInvalidRequest      = "Invalid request format"
	msgUsernameExists      = "Username already exists"
	msgEmailExists         = "Email already exists"
	msgInvalidCredentials  = "Invalid username or password"
	msgInvalidToken        = "Invalid or expired token"
	msgTaskForbidden       = "You don't have access to this task"
	msgForbidden           = "You don't have access to this resource"
	msgUserNotFound        = "User not found"
	msgTaskNotFound        = "Task not found"
	msgQueueUnavailable    = "Background job queue is unavailable"
	msgInvalidEntity       = "Invalid entity data"
	msgAuthenticationError = "Authentication required"
)

// domainValidationErrors are domain sentinels whose text is safe to show.
var domainValidationErrors = []error{
	domain.ErrInvalidTitle,
	domain.ErrDescriptionTooLong,
	domain.ErrInvalidTaskStatus,
	domain.ErrInvalidUsername,
	domain.ErrEmptyEmail,
}

// MapError translates an error from any layer into the APIError rendered
// for it. Unknown errors become a 500 whose cause is only logged.
func MapError(err error) *shared.APIError {
	if err == nil {
		return shared.Internal(errors.New("nil error mapped"))
	}

	var apiErr *shared.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return shared.Validation(shared.ValidationMessage(verrs)).WithCause(err)
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return shared.Validation(fieldErr.Error()).WithCause(err)
	}

	for _, sentinel := range domainValidationErrors {
		if errors.Is(err, sentinel) {
			return shared.Validation(sentinel.Error()).WithCause(err)
		}
	}

	switch {
	case errors.Is(err, store.ErrUsernameExists):
		return shared.BadRequest(msgUsernameExists).WithCause(err)
	case errors.Is(err, store.ErrEmailExists):
		return shared.BadRequest(msgEmailExists).WithCause(err)

	case errors.Is(err, service.ErrInvalidCredentials):
		return shared.Unauthorized(msgInvalidCredentials).WithCause(err)
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return shared.Unauthorized(msgInvalidToken).WithCause(err)
	case errors.Is(err, domain.ErrUnauthorized):
		return shared.Unauthorized(msgAuthenticationError).WithCause(err)

	case errors.Is(err, service.ErrTaskNotOwned):
		return shared.Forbidden(msgTaskForbidden).WithCause(err)
	case errors.Is(err, service.ErrNotOwned):
		return shared.Forbidden(msgForbidden).WithCause(err)

	case errors.Is(err, store.ErrTaskNotFound):
		return shared.NotFound(msgTaskNotFound).WithCause(err)
	case errors.Is(err, store.ErrUserNotFound):
		return shared.NotFound(msgUserNotFound).WithCause(err)

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return shared.Validation(msgInvalidEntity).WithCause(err)

	case errors.Is(err, job.ErrQueueFull),
		errors.Is(err, job.ErrQueueClosed):
		return shared.ServiceUnavailable(msgQueueUnavailable).WithCause(err)

	default:
		return shared.Internal(err)
	}
}

// HandleAPIError writes the envelope for err.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, MapError(err))
}

// handleTaskError is HandleAPIError with the task id named in not-found
// responses.
func handleTaskError(w http.ResponseWriter, r *http.Request, id int64, err error) {
	if errors.Is(err, store.ErrTaskNotFound) {
		shared.RespondWithError(w, r, shared.NotFound(fmt.Sprintf("Task %d not found", id)).WithCause(err))
		return
	}
	HandleAPIError(w, r, err)
}

// handleDecodeError renders a body that could not be parsed as a 400.
func handleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, shared.BadRequest(msgInvalidRequest).WithCause(err))
}
