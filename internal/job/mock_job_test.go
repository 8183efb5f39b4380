package job

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// mockJob implements the Job interface for testing
type mockJob struct {
	id       uuid.UUID
	jobType  string
	execFn   func(ctx context.Context) error
	executed atomic.Int32
}

func newMockJob(execFn func(ctx context.Context) error) *mockJob {
	return &mockJob{id: uuid.New(), jobType: "mock", execFn: execFn}
}

func (m *mockJob) ID() uuid.UUID { return m.id }

func (m *mockJob) Type() string { return m.jobType }

func (m *mockJob) Execute(ctx context.Context) error {
	m.executed.Add(1)
	if m.execFn != nil {
		return m.execFn(ctx)
	}
	return nil
}

// recordingSubmitter captures submitted jobs.
type recordingSubmitter struct {
	jobs []Job
	err  error
}

func (s *recordingSubmitter) Submit(ctx context.Context, job Job) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}
