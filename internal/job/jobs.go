package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// WelcomeEmailJob greets a newly registered user. Delivery is simulated by
// a log line; there is no mail transport.
type WelcomeEmailJob struct {
	id       uuid.UUID
	userID   int64
	email    string
	username string
	logger   *slog.Logger
}

// NewWelcomeEmailJob creates a welcome email job for the given user.
func NewWelcomeEmailJob(userID int64, email, username string, logger *slog.Logger) *WelcomeEmailJob {
	return &WelcomeEmailJob{
		id:       uuid.New(),
		userID:   userID,
		email:    email,
		username: username,
		logger:   logger,
	}
}

// ID implements Job.
func (j *WelcomeEmailJob) ID() uuid.UUID { return j.id }

// Type implements Job.
func (j *WelcomeEmailJob) Type() string { return TypeWelcomeEmail }

// Execute implements Job.
func (j *WelcomeEmailJob) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.logger.Info("welcome email sent",
		"job_id", j.id,
		"user_id", j.userID,
		"username", j.username)
	return nil
}

// SimulatedWorkJob occupies a worker for a fixed duration.
type SimulatedWorkJob struct {
	id       uuid.UUID
	name     string
	duration time.Duration
	logger   *slog.Logger
}

// NewSimulatedWorkJob creates a job called name that takes duration to run.
func NewSimulatedWorkJob(name string, duration time.Duration, logger *slog.Logger) *SimulatedWorkJob {
	return &SimulatedWorkJob{
		id:       uuid.New(),
		name:     name,
		duration: duration,
		logger:   logger,
	}
}

// ID implements Job.
func (j *SimulatedWorkJob) ID() uuid.UUID { return j.id }

// Type implements Job.
func (j *SimulatedWorkJob) Type() string { return TypeSimulatedWork }

// Name returns the caller-supplied label of the job.
func (j *SimulatedWorkJob) Name() string { return j.name }

// Execute implements Job.
func (j *SimulatedWorkJob) Execute(ctx context.Context) error {
	j.logger.Info("background task started", "job_id", j.id, "task_name", j.name)

	timer := time.NewTimer(j.duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		j.logger.Info("background task finished", "job_id", j.id, "task_name", j.name)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
