package job

import (
	"context"

	"github.com/google/uuid"
)

// Job type identifiers
const (
	// TypeWelcomeEmail greets a newly registered user.
	TypeWelcomeEmail = "welcome_email"
	// TypeSimulatedWork stands in for a long-running computation.
	TypeSimulatedWork = "simulated_work"
)

// Job represents a unit of background work to be processed.
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier
	Type() string

	// Execute runs the job logic. Implementations must return promptly
	// once ctx is cancelled.
	Execute(ctx context.Context) error
}

// QueueReader provides read-only access to queued jobs.
type QueueReader interface {
	// Channel returns a channel that is closed once the queue is closed
	// and drained.
	Channel() <-chan Job
}

// QueueWriter allows callers to enqueue jobs for processing.
type QueueWriter interface {
	// Enqueue adds a job without blocking.
	// Returns ErrQueueFull or ErrQueueClosed when the job cannot be accepted.
	Enqueue(job Job) error

	// Close prevents further submission. Jobs already queued are still delivered.
	Close()
}

// Submitter accepts jobs for asynchronous execution.
type Submitter interface {
	Submit(ctx context.Context, job Job) error
}
