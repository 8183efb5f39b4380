package job

import (
	"context"
	"fmt"
	"log/slog"
)

// RunnerConfig holds configuration for the job runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process jobs
	WorkerCount int
	// QueueSize determines the buffer size for the in-memory job queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// Runner owns a queue and the worker pool consuming it.
type Runner struct {
	queue  *Queue
	pool   *WorkerPool
	logger *slog.Logger
}

// Ensure Runner implements Submitter interface
var _ Submitter = (*Runner)(nil)

// NewRunner creates a Runner. Call Start before submitting work that should
// be processed.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	logger = logger.With("component", "job_runner")
	queue := NewQueue(config.QueueSize, logger)
	return &Runner{
		queue:  queue,
		pool:   NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger),
		logger: logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *Runner) SetErrorHandler(handler func(job Job, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Start begins processing queued jobs.
func (r *Runner) Start() {
	r.pool.Start()
}

// Submit adds a job to the queue without blocking.
func (r *Runner) Submit(ctx context.Context, job Job) error {
	if err := r.queue.Enqueue(job); err != nil {
		return fmt.Errorf("failed to submit %s job: %w", job.Type(), err)
	}
	return nil
}

// Shutdown stops accepting jobs and waits for queued ones to finish,
// cancelling whatever is still running when ctx ends.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.logger.Info("shutting down job runner")
	r.queue.Close()
	return r.pool.Stop(ctx)
}
