package api

import (
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskHandler handles task CRUD for the authenticated user.
type TaskHandler struct {
	tasks service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), user, req.Title, req.Description, domain.TaskStatus(req.Status))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	q, err := parseTaskQuery(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	tasks, total, err := h.tasks.ListTasks(r.Context(), user, q)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Tasks: tasksToResponse(tasks),
		Total: total,
		Skip:  q.Skip,
		Limit: q.Limit,
	})
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.GetTask(r.Context(), user, id)
	if err != nil {
		handleTaskError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT and PATCH /tasks/{id}. Both are partial updates.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		handleDecodeError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), user, id, req.ToUpdate())
	if err != nil {
		handleTaskError(w, r, id, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), user, id); err != nil {
		handleTaskError(w, r, id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAllTasks handles GET /tasks/admin/all. The route is admin-only.
func (h *TaskHandler) ListAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListAllTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}
