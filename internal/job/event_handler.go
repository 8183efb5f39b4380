package job

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/events"
)

// EventHandler turns domain events into background jobs.
type EventHandler struct {
	submitter Submitter
	// jobLogger is handed to the jobs this handler creates.
	jobLogger *slog.Logger
	logger    *slog.Logger
}

// Ensure EventHandler implements events.EventHandler
var _ events.EventHandler = (*EventHandler)(nil)

// NewEventHandler creates an event handler that submits jobs to submitter.
func NewEventHandler(submitter Submitter, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		submitter: submitter,
		jobLogger: logger.With("component", "jobs"),
		logger:    logger.With("component", "job_event_handler"),
	}
}

// HandleEvent submits the job matching event.Type and ignores other events.
func (h *EventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.UserRegistered:
		return h.handleUserRegistered(ctx, event)
	default:
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}
}

func (h *EventHandler) handleUserRegistered(ctx context.Context, event *events.Event) error {
	var payload events.UserRegisteredPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	j := NewWelcomeEmailJob(payload.UserID, payload.Email, payload.Username, h.jobLogger)
	if err := h.submitter.Submit(ctx, j); err != nil {
		h.logger.Error("failed to submit job",
			"error", err,
			"job_id", j.ID(),
			"user_id", payload.UserID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit job: %w", err)
	}

	h.logger.Debug("welcome email job submitted",
		"job_id", j.ID(),
		"user_id", payload.UserID,
		"event_id", event.ID)
	return nil
}
