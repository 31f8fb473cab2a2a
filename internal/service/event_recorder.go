package service

import (
	"context"

	"github.com/phrazzld/hero-flashcards/internal/events"
	"github.com/phrazzld/hero-flashcards/internal/store"
)

// EventRecorder is an events.EventHandler that appends every event to the
// session event log.
type EventRecorder struct {
	store store.EventStore
}

var _ events.EventHandler = (*EventRecorder)(nil)

// NewEventRecorder creates an EventRecorder writing to s.
func NewEventRecorder(s store.EventStore) *EventRecorder {
	if s == nil {
		panic("event store cannot be nil") // ALLOW-PANIC
	}
	return &EventRecorder{store: s}
}

// HandleEvent implements events.EventHandler.
func (r *EventRecorder) HandleEvent(ctx context.Context, event *events.SessionEvent) error {
	return r.store.Append(ctx, event)
}
