// Package main runs the hero flashcards HTTP API. Sessions are held in
// memory; a configured database adds the catalog cache and the session
// event log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/hero-flashcards/internal/config"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/phrazzld/hero-flashcards/internal/platform/postgres"
)

func main() {
	configFile := flag.String("config", "", "path to a config file (default ./config.yaml when present)")
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile, *migrateCmd); err != nil {
		log.Fatalf("hero-flashcards: %v", err)
	}
}

// run loads configuration, then either executes a migration command or
// serves the API until ctx is cancelled.
func run(ctx context.Context, configFile, migrateCmd string) error {
	cfg, err := loadAppConfig(configFile)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if migrateCmd != "" {
		return runMigration(ctx, cfg, migrateCmd, l)
	}

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func loadAppConfig(configFile string) (*config.Config, error) {
	opts := config.Options{ConfigFile: configFile, EnvFiles: []string{".env"}}
	cfg, err := config.LoadWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func runMigration(ctx context.Context, cfg *config.Config, command string, l *slog.Logger) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("migrations need database.url (or %s_DATABASE_URL)", config.EnvPrefix)
	}

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("failed to close database connection", "error", err)
		}
	}()

	if err := postgres.Migrate(ctx, db, command, l); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	fmt.Fprintf(os.Stdout, "migration %q completed\n", command)
	return nil
}
