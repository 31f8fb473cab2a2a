package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/phrazzld/hero-flashcards/internal/store"
)

// PostgresCharacterStore implements store.CharacterStore.
type PostgresCharacterStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresCharacterStore creates a character cache over db, which may be a
// connection pool or a transaction. If logger is nil, slog.Default is used.
func NewPostgresCharacterStore(db store.DBTX, logger *slog.Logger) *PostgresCharacterStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCharacterStore{
		db:     db,
		logger: logger.With("component", "character_store"),
		now:    time.Now,
	}
}

var _ store.CharacterStore = (*PostgresCharacterStore)(nil)

// ReplaceAll deletes the cached roster and inserts chars in order, all
// stamped with the same fetch time. Callers wanting atomicity pass a store
// bound to a transaction via WithTx.
func (s *PostgresCharacterStore) ReplaceAll(ctx context.Context, chars []domain.Character) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, c := range chars {
		if err := c.Validate(); err != nil {
			log.WarnContext(ctx, "character validation failed during replace",
				"error", err, "character_id", c.ID)
			return err
		}
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM characters`); err != nil {
		log.ErrorContext(ctx, "failed to clear character cache", "error", err)
		return store.NewStoreError("character", "replace", "clear failed", MapError(err))
	}

	const query = `
		INSERT INTO characters
			(id, position, name, description, image_url, real_name, powers, first_appearance, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	fetchedAt := s.now().UTC()
	for i, c := range chars {
		_, err := s.db.ExecContext(ctx, query,
			c.ID, i, c.Name, c.Description, c.ImageURL,
			c.RealName, c.Powers, c.FirstAppearance, fetchedAt)
		if err != nil {
			log.ErrorContext(ctx, "failed to insert character",
				"error", err, "character_id", c.ID, "position", i)
			return store.NewStoreError("character", "replace", "insert failed", MapError(err))
		}
	}

	log.InfoContext(ctx, "character cache replaced", "count", len(chars))
	return nil
}

// ListFresh returns the cached roster when it was fetched within maxAge.
func (s *PostgresCharacterStore) ListFresh(
	ctx context.Context,
	maxAge time.Duration,
) ([]domain.Character, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	const query = `
		SELECT id, name, description, image_url, real_name, powers, first_appearance
		FROM characters
		WHERE fetched_at > $1
		ORDER BY position
	`
	cutoff := s.now().UTC().Add(-maxAge)
	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "failed to query character cache", "error", err)
		return nil, store.NewStoreError("character", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var chars []domain.Character
	for rows.Next() {
		var c domain.Character
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL,
			&c.RealName, &c.Powers, &c.FirstAppearance); err != nil {
			return nil, store.NewStoreError("character", "list", "scan failed", err)
		}
		chars = append(chars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("character", "list", "iteration failed", err)
	}

	if len(chars) == 0 {
		log.DebugContext(ctx, "character cache miss", "max_age", maxAge)
		return nil, store.ErrCacheMiss
	}

	log.DebugContext(ctx, "character cache hit", "count", len(chars))
	return chars, nil
}

// WithTx returns a store bound to tx.
func (s *PostgresCharacterStore) WithTx(tx *sql.Tx) store.CharacterStore {
	return &PostgresCharacterStore{db: tx, logger: s.logger, now: s.now}
}
