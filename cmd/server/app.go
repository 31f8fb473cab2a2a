package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/config"
	"github.com/phrazzld/hero-flashcards/internal/events"
	"github.com/phrazzld/hero-flashcards/internal/platform/gemini"
	"github.com/phrazzld/hero-flashcards/internal/platform/marvel"
	"github.com/phrazzld/hero-flashcards/internal/platform/postgres"
	"github.com/phrazzld/hero-flashcards/internal/service"
	"github.com/phrazzld/hero-flashcards/internal/service/auth"
	"github.com/phrazzld/hero-flashcards/internal/store"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores are nil without a database.
	characterStore store.CharacterStore
	eventStore     store.EventStore

	tables         *catalog.Tables
	tokenService   auth.TokenService
	catalogService service.CatalogService
	sessionService service.SessionService
	eventEmitter   *events.InMemoryEventEmitter
}

// newApplication wires every service. db may be nil.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		tables:       catalog.Default(),
		eventEmitter: events.NewInMemoryEventEmitter(logger),
	}

	authCfg, err := sessionAuthConfig(cfg.Auth, logger)
	if err != nil {
		return nil, err
	}
	app.tokenService, err = auth.NewTokenService(authCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("session token service initialized",
		"token_lifetime_minutes", authCfg.TokenLifetimeMinutes)

	var catalogOpts []service.CatalogOption

	if db != nil {
		app.characterStore = postgres.NewPostgresCharacterStore(db, logger)
		app.eventStore = postgres.NewPostgresEventStore(db, logger)

		ttl := time.Duration(cfg.Catalog.CacheTTLMinutes) * time.Minute
		catalogOpts = append(catalogOpts, service.WithCharacterCache(db, app.characterStore, ttl))
		app.eventEmitter.RegisterHandler(service.NewEventRecorder(app.eventStore))
		logger.Info("catalog cache and session event log enabled", "cache_ttl", ttl)
	}

	if cfg.LLM.GeminiAPIKey != "" {
		generator, err := gemini.NewGeminiGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize trivia generator: %w", err)
		}
		catalogOpts = append(catalogOpts,
			service.WithTriviaGenerator(generator),
			service.WithEnrichmentWorkers(cfg.Task.WorkerCount))
		logger.Info("trivia generator initialized",
			"model", cfg.LLM.ModelName,
			"workers", cfg.Task.WorkerCount)
	}

	var fetcher service.CharacterFetcher
	if cfg.Marvel.PublicKey != "" {
		client, err := marvel.NewClient(cfg.Marvel, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize catalog client: %w", err)
		}
		fetcher = client
	} else {
		logger.Warn("no catalog public key configured; serving the built-in deck")
	}

	app.catalogService, err = service.NewCatalogService(app.tables, fetcher, logger, catalogOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	app.sessionService, err = service.NewSessionService(
		app.catalogService,
		logger,
		service.WithEventEmitter(app.eventEmitter),
		service.WithFeedbackDelay(time.Duration(cfg.Session.FeedbackDelaySeconds)*time.Second),
		service.WithSessionTTL(app.sessionTTL()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// sessionAuthConfig fills in a random signing secret when none is
// configured. Sessions live in memory, so tokens never need to outlive the
// process.
func sessionAuthConfig(cfg config.AuthConfig, logger *slog.Logger) (config.AuthConfig, error) {
	if cfg.SessionSecret != "" {
		return cfg, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return cfg, fmt.Errorf("failed to generate session secret: %w", err)
	}
	cfg.SessionSecret = hex.EncodeToString(buf)
	logger.Warn("no session secret configured; generated an ephemeral one")
	return cfg, nil
}

// sessionTTL matches the token lifetime: once a session has been idle that
// long its token may have expired and no request can reach it.
func (app *application) sessionTTL() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

// sweepInterval is how often idle sessions are checked for expiry.
func (app *application) sweepInterval() time.Duration {
	return min(app.sessionTTL(), maxSweepInterval)
}

const maxSweepInterval = time.Minute

// Run serves the API until ctx is cancelled. Idle sessions are swept in
// the background for as long as the server runs.
func (app *application) Run(ctx context.Context) error {
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		service.RunSweeper(sweepCtx, app.sessionService, app.sweepInterval())
	}()
	defer func() {
		stopSweeper()
		<-sweeperDone
	}()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
