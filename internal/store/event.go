package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/events"
)

// EventStore is the append-only log of session events.
type EventStore interface {
	// Append writes one event.
	// Returns ErrDuplicate if an event with the same ID exists.
	Append(ctx context.Context, event *events.SessionEvent) error

	// ListBySession returns a session's events oldest first.
	// Returns an empty slice if the session has none.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*events.SessionEvent, error)

	// WithTx returns a new EventStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) EventStore
}
