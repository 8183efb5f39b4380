package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-api/internal/events"
)

// EventEmitter records emitted events for verification.
type EventEmitter struct {
	mu     sync.Mutex
	Events []*events.Event
	// Err, if set, is returned from every EmitEvent call after recording.
	Err error
}

var _ events.EventEmitter = (*EventEmitter)(nil)

// EmitEvent implements events.EventEmitter.
func (m *EventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return m.Err
}

// Emitted returns a snapshot of the recorded events.
func (m *EventEmitter) Emitted() []*events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.Event, len(m.Events))
	copy(out, m.Events)
	return out
}
