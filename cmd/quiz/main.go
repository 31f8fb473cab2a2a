// Package main is the quiz terminal client.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/hero-flashcards/internal/catalog"
	"github.com/phrazzld/hero-flashcards/internal/cli"
	"github.com/phrazzld/hero-flashcards/internal/config"
	"github.com/phrazzld/hero-flashcards/internal/platform/gemini"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/phrazzld/hero-flashcards/internal/platform/marvel"
	"github.com/phrazzld/hero-flashcards/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(buildServices).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildServices wires the catalog and session services in process. Logs go
// to stderr at warn level so they do not interleave with the quiz.
func buildServices(ctx context.Context) (*cli.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, _ := logger.ParseLevel(cfg.Server.LogLevel)
	level = max(level, slog.LevelWarn)
	log := logger.New(os.Stderr, level)

	var opts []service.CatalogOption
	if cfg.LLM.GeminiAPIKey != "" {
		generator, err := gemini.NewGeminiGenerator(ctx, log, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize trivia generator: %w", err)
		}
		opts = append(opts,
			service.WithTriviaGenerator(generator),
			service.WithEnrichmentWorkers(cfg.Task.WorkerCount))
	}

	var fetcher service.CharacterFetcher
	if cfg.Marvel.PublicKey != "" {
		client, err := marvel.NewClient(cfg.Marvel, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize catalog client: %w", err)
		}
		fetcher = client
	}

	catalogSvc, err := service.NewCatalogService(catalog.Default(), fetcher, log, opts...)
	if err != nil {
		return nil, err
	}
	sessions, err := service.NewSessionService(catalogSvc, log)
	if err != nil {
		return nil, err
	}

	return &cli.Services{Catalog: catalogSvc, Sessions: sessions}, nil
}
