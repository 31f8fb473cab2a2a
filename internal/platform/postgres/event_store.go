package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/events"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/phrazzld/hero-flashcards/internal/store"
)

// PostgresEventStore implements store.EventStore.
type PostgresEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEventStore creates an event log over db. If logger is nil,
// slog.Default is used.
func NewPostgresEventStore(db store.DBTX, logger *slog.Logger) *PostgresEventStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEventStore{
		db:     db,
		logger: logger.With("component", "event_store"),
	}
}

var _ store.EventStore = (*PostgresEventStore)(nil)

// Append inserts event.
func (s *PostgresEventStore) Append(ctx context.Context, event *events.SessionEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload := []byte(event.Payload)
	if len(payload) == 0 {
		payload = []byte("null")
	}

	const query = `
		INSERT INTO session_events (id, session_id, type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID, event.SessionID, event.Type, payload, event.CreatedAt)
	if err != nil {
		log.ErrorContext(ctx, "failed to append session event",
			"error", err, "event_id", event.ID, "event_type", event.Type)
		return store.NewStoreError("session_event", "append", "insert failed", MapError(err))
	}

	log.DebugContext(ctx, "session event appended",
		"event_id", event.ID, "session_id", event.SessionID, "event_type", event.Type)
	return nil
}

// ListBySession returns every event recorded for sessionID, oldest first.
func (s *PostgresEventStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) ([]*events.SessionEvent, error) {
	const query = `
		SELECT id, session_id, type, payload, created_at
		FROM session_events
		WHERE session_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, store.NewStoreError("session_event", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	result := make([]*events.SessionEvent, 0)
	for rows.Next() {
		var (
			e       events.SessionEvent
			payload []byte
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Type, &payload, &e.CreatedAt); err != nil {
			return nil, store.NewStoreError("session_event", "list", "scan failed", err)
		}
		e.Payload = payload
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("session_event", "list", "iteration failed", err)
	}
	return result, nil
}

// WithTx returns a store bound to tx.
func (s *PostgresEventStore) WithTx(tx *sql.Tx) store.EventStore {
	return &PostgresEventStore{db: tx, logger: s.logger}
}
