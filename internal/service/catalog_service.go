package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/generation"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/phrazzld/hero-flashcards/internal/redact"
	"github.com/phrazzld/hero-flashcards/internal/store"
	"github.com/phrazzld/hero-flashcards/internal/task"
)

// CharacterFetcher retrieves raw character records from the catalog provider.
type CharacterFetcher interface {
	FetchCharacters(ctx context.Context) ([]catalog.Record, error)
}

// LoadedDeck is the outcome of a catalog load.
type LoadedDeck struct {
	Characters []domain.Character
	Source     catalog.Source
}

// CatalogService resolves the characters for a new session.
type CatalogService interface {
	// LoadDeck never fails: any provider problem yields the built-in deck.
	LoadDeck(ctx context.Context) LoadedDeck
}

// CatalogOption configures optional catalog collaborators.
type CatalogOption func(*catalogServiceImpl)

// WithCharacterCache serves decks younger than ttl from cache and refreshes
// the cache inside a transaction on db after each successful provider load.
func WithCharacterCache(db *sql.DB, cache store.CharacterStore, ttl time.Duration) CatalogOption {
	return func(s *catalogServiceImpl) {
		s.db = db
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithTriviaGenerator fills trivia for characters the static tables do not
// know.
func WithTriviaGenerator(g generation.Generator) CatalogOption {
	return func(s *catalogServiceImpl) {
		s.generator = g
	}
}

// WithEnrichmentWorkers sets how many trivia requests run concurrently.
func WithEnrichmentWorkers(n int) CatalogOption {
	return func(s *catalogServiceImpl) {
		s.enrichWorkers = n
	}
}

type catalogServiceImpl struct {
	tables        *catalog.Tables
	fetcher       CharacterFetcher
	generator     generation.Generator
	enrichWorkers int
	db            *sql.DB
	cache         store.CharacterStore
	cacheTTL      time.Duration
	logger        *slog.Logger
}

var _ CatalogService = (*catalogServiceImpl)(nil)

// NewCatalogService creates a CatalogService. A nil fetcher always serves
// the fallback deck.
func NewCatalogService(
	tables *catalog.Tables,
	fetcher CharacterFetcher,
	logger *slog.Logger,
	opts ...CatalogOption,
) (CatalogService, error) {
	if tables == nil {
		return nil, fmt.Errorf("%w: tables", ErrMissingDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrMissingDependency)
	}

	s := &catalogServiceImpl{
		tables:        tables,
		fetcher:       fetcher,
		enrichWorkers: task.DefaultWorkerPoolConfig().WorkerCount,
		logger:        logger.With("component", "catalog_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// LoadDeck tries the cache, then the provider, then the fallback deck.
func (s *catalogServiceImpl) LoadDeck(ctx context.Context) LoadedDeck {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if chars, ok := s.fromCache(ctx, log); ok {
		return LoadedDeck{Characters: chars, Source: catalog.SourceCache}
	}

	if s.fetcher == nil {
		return s.fallback(log, "no catalog provider configured")
	}

	records, err := s.fetcher.FetchCharacters(ctx)
	if err != nil {
		log.WarnContext(ctx, "catalog fetch failed, using fallback deck",
			"error", redact.Error(err))
		return s.fallback(log, "fetch failed")
	}

	chars := s.tables.Build(s.tables.Filter(records))
	if len(chars) == 0 {
		log.WarnContext(ctx, "catalog returned no usable characters, using fallback deck",
			"records", len(records))
		return s.fallback(log, "no usable characters")
	}

	chars = s.enrich(ctx, log, chars)
	s.refreshCache(ctx, log, chars)

	log.InfoContext(ctx, "loaded deck from catalog provider", "characters", len(chars))
	return LoadedDeck{Characters: chars, Source: catalog.SourceAPI}
}

func (s *catalogServiceImpl) fromCache(ctx context.Context, log *slog.Logger) ([]domain.Character, bool) {
	if s.cache == nil {
		return nil, false
	}

	chars, err := s.cache.ListFresh(ctx, s.cacheTTL)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.WarnContext(ctx, "character cache unavailable", "error", redact.Error(err))
		}
		return nil, false
	}

	log.DebugContext(ctx, "loaded deck from cache", "characters", len(chars))
	return chars, true
}

// enrich asks the generator for trivia on characters that only carry the
// static defaults. Failures keep the defaults.
func (s *catalogServiceImpl) enrich(
	ctx context.Context,
	log *slog.Logger,
	chars []domain.Character,
) []domain.Character {
	if s.generator == nil {
		return chars
	}

	out := make([]domain.Character, len(chars))
	copy(out, chars)

	var tasks []task.Task
	for i, c := range chars {
		current := domain.Trivia{RealName: c.RealName, Powers: c.Powers, FirstAppearance: c.FirstAppearance}
		if s.tables.IsDefaultTrivia(c.Name, current) {
			tasks = append(tasks, task.NewTriviaEnrichmentTask(c, s.generator, &out[i]))
		}
	}

	task.RunAll(ctx, tasks, task.WorkerPoolConfig{WorkerCount: s.enrichWorkers}, log,
		func(t task.Task, err error) {
			log.WarnContext(ctx, "trivia generation failed, keeping defaults",
				"task_id", t.ID(),
				"error", redact.Error(err))
		})

	log.DebugContext(ctx, "trivia enrichment finished", "attempted", len(tasks))
	return out
}

func (s *catalogServiceImpl) refreshCache(ctx context.Context, log *slog.Logger, chars []domain.Character) {
	if s.cache == nil || s.db == nil {
		return
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.cache.WithTx(tx).ReplaceAll(ctx, chars)
	})
	if err != nil {
		log.WarnContext(ctx, "failed to refresh character cache", "error", redact.Error(err))
	}
}

func (s *catalogServiceImpl) fallback(log *slog.Logger, reason string) LoadedDeck {
	chars := s.tables.Fallback()
	log.Info("using fallback deck", "reason", reason, "characters", len(chars))
	return LoadedDeck{Characters: chars, Source: catalog.SourceFallback}
}
