package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/events"
	"github.com/phrazzld/hero-flashcards/internal/store"
)

type mockFetcher struct {
	FetchFn func(ctx context.Context) ([]catalog.Record, error)
	calls   int
}

func (m *mockFetcher) FetchCharacters(ctx context.Context) ([]catalog.Record, error) {
	m.calls++
	return m.FetchFn(ctx)
}

type mockCharacterStore struct {
	ListFreshFn  func(ctx context.Context, maxAge time.Duration) ([]domain.Character, error)
	ReplaceAllFn func(ctx context.Context, chars []domain.Character) error
	replaced     [][]domain.Character
	txBound      bool
}

func (m *mockCharacterStore) ReplaceAll(ctx context.Context, chars []domain.Character) error {
	m.replaced = append(m.replaced, chars)
	if m.ReplaceAllFn != nil {
		return m.ReplaceAllFn(ctx, chars)
	}
	return nil
}

func (m *mockCharacterStore) ListFresh(ctx context.Context, maxAge time.Duration) ([]domain.Character, error) {
	if m.ListFreshFn != nil {
		return m.ListFreshFn(ctx, maxAge)
	}
	return nil, store.ErrCacheMiss
}

func (m *mockCharacterStore) WithTx(*sql.Tx) store.CharacterStore {
	m.txBound = true
	return m
}

type mockEventStore struct {
	AppendFn func(ctx context.Context, event *events.SessionEvent) error
	appended []*events.SessionEvent
}

func (m *mockEventStore) Append(ctx context.Context, event *events.SessionEvent) error {
	m.appended = append(m.appended, event)
	if m.AppendFn != nil {
		return m.AppendFn(ctx, event)
	}
	return nil
}

func (m *mockEventStore) ListBySession(context.Context, uuid.UUID) ([]*events.SessionEvent, error) {
	return m.appended, nil
}

func (m *mockEventStore) WithTx(*sql.Tx) store.EventStore {
	return m
}

type stubCatalog struct {
	deck LoadedDeck
}

func (s stubCatalog) LoadDeck(context.Context) LoadedDeck {
	return s.deck
}

// recordingEmitter collects emitted events; safe for use from timers.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.SessionEvent
	err    error
}

func (r *recordingEmitter) EmitEvent(_ context.Context, event *events.SessionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingEmitter) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
