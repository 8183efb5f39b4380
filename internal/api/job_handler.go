package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/job"
)

// JobHandler enqueues background work on request.
type JobHandler struct {
	submitter job.Submitter
	work      time.Duration
	logger    *slog.Logger
}

// NewJobHandler creates a JobHandler whose simulated jobs run for work.
func NewJobHandler(submitter job.Submitter, work time.Duration, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		submitter: submitter,
		work:      work,
		logger:    logger.With("component", "job_handler"),
	}
}

// TriggerBackgroundTask handles POST /async/background-task?task_name=.
func (h *JobHandler) TriggerBackgroundTask(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("task_name")
	if name == "" {
		HandleAPIError(w, r, domain.NewValidationError("task_name", "is required", domain.ErrValidation))
		return
	}

	j := job.NewSimulatedWorkJob(name, h.work, h.logger)
	if err := h.submitter.Submit(r.Context(), j); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, BackgroundJobResponse{
		Message:  "Background task triggered",
		TaskName: name,
	})
}
