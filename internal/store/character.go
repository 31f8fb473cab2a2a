package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/phrazzld/hero-flashcards/internal/domain"
)

// CharacterStore caches the enriched character roster between server runs so
// the Marvel API and the trivia generator are not hit on every new session.
type CharacterStore interface {
	// ReplaceAll swaps the cached roster for chars, preserving their order.
	// Returns validation errors if any character is invalid.
	ReplaceAll(ctx context.Context, chars []domain.Character) error

	// ListFresh returns the cached roster in its stored order if it was
	// written less than maxAge ago.
	// Returns ErrCacheMiss if the cache is empty or stale.
	ListFresh(ctx context.Context, maxAge time.Duration) ([]domain.Character, error)

	// WithTx returns a new CharacterStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CharacterStore
}
