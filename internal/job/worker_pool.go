package job

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// WorkerPool manages a pool of worker goroutines that process jobs
// from a queue. It handles graceful shutdown and worker lifecycle.
type WorkerPool struct {
	// queue provides read access to the jobs to be processed
	queue QueueReader

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is passed to every job and cancelled when shutdown runs out of time
	ctx    context.Context
	cancel context.CancelFunc

	logger *slog.Logger

	// errorHandler is called when a job execution fails.
	// If nil, errors are only logged
	errorHandler func(job Job, err error)

	startOnce sync.Once
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int
}

// NewWorkerPool creates a new worker pool with the specified configuration
func NewWorkerPool(queue QueueReader, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		queue:       queue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for job execution failures.
// It must be called before Start.
func (p *WorkerPool) SetErrorHandler(handler func(job Job, err error)) {
	p.errorHandler = handler
}

// Start launches the workers. Calling it more than once has no effect.
func (p *WorkerPool) Start() {
	p.startOnce.Do(func() {
		p.logger.Info("starting worker pool", "worker_count", p.workerCount)
		for i := 0; i < p.workerCount; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
	})
}

// Stop waits for the workers to drain the queue, which must already be
// closed. If ctx ends first, running jobs are cancelled and Stop returns
// ctx.Err() once every worker has exited.
func (p *WorkerPool) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info("worker pool stopped")
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		p.logger.Warn("worker pool stopped before queue drained", "error", ctx.Err())
		return ctx.Err()
	}
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	p.logger.Debug("starting worker", "worker_id", id)

	jobs := p.queue.Channel()
	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("stopping worker", "worker_id", id)
			return
		case job, ok := <-jobs:
			if !ok {
				p.logger.Debug("job channel closed, stopping worker", "worker_id", id)
				return
			}
			p.process(job, id)
		}
	}
}

// process runs a single job, converting a panic into a job failure.
func (p *WorkerPool) process(job Job, workerID int) {
	log := p.logger.With(
		"job_id", job.ID(),
		"job_type", job.Type(),
		"worker_id", workerID,
	)

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("job panicked", "panic", r, "stack", string(debug.Stack()))
				err = fmt.Errorf("job panicked: %v", r)
			}
		}()
		log.Info("processing job")
		return job.Execute(p.ctx)
	}()

	if err != nil {
		log.Error("job execution failed", "error", err)
		if p.errorHandler != nil {
			p.errorHandler(job, err)
		}
		return
	}
	log.Info("job completed successfully")
}
