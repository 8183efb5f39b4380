package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// Paging bounds for task listings.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// sortableFields are the task fields a listing may be ordered by.
var sortableFields = map[string]bool{
	"id":         true,
	"title":      true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

// currentUser returns the authenticated user, writing a 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return nil, false
	}
	return user, true
}

// getPathID extracts a positive integer id from the URL path.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidID)
	}
	return id, nil
}

// parseTaskQuery reads skip, limit, status and sort_by from the query string.
func parseTaskQuery(r *http.Request) (store.TaskQuery, error) {
	values := r.URL.Query()
	q := store.TaskQuery{
		Skip:   0,
		Limit:  DefaultPageLimit,
		SortBy: store.DefaultSortField,
	}

	if raw := values.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return q, domain.NewValidationError("skip", "must be a non-negative integer", domain.ErrValidation)
		}
		q.Skip = skip
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxPageLimit {
			return q, domain.NewValidationError("limit", "must be an integer between 1 and 100", domain.ErrValidation)
		}
		q.Limit = limit
	}

	if raw := values.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			return q, domain.NewValidationError("status", "must be one of: todo in_progress done", domain.ErrInvalidTaskStatus)
		}
		q.Status = &status
	}

	if raw := values.Get("sort_by"); raw != "" {
		if !sortableFields[strings.TrimPrefix(raw, "-")] {
			return q, domain.NewValidationError("sort_by", "must be one of: id title status created_at updated_at, optionally prefixed with -", domain.ErrValidation)
		}
		q.SortBy = raw
	}

	return q, nil
}
