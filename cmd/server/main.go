// Package main implements the entry point for the Hece Çiz server, which
// runs syllable handwriting practice sessions for early readers and checks
// each drawing with a vision classifier.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/hececiz/internal/config"
	"github.com/phrazzld/hececiz/internal/platform/logger"
	"github.com/phrazzld/hececiz/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run a database migration command and exit ("+strings.Join(postgres.MigrationCommands, "|")+")")
	flag.Parse()

	cfg, log, err := initializeApp()
	if err != nil {
		// Logging may not be set up yet.
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateCmd != "" {
		if err := runMigrations(ctx, cfg, *migrateCmd, log); err != nil {
			log.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		log.Error("failed to start application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.URL != "",
		"tts_enabled", cfg.Audio.TTSEnabled)
	return cfg, l, nil
}

// runMigrations executes a single goose command against the configured
// database.
func runMigrations(ctx context.Context, cfg *config.Config, command string, l *slog.Logger) error {
	if !postgres.IsMigrationCommand(command) {
		return fmt.Errorf("unknown migration command %q", command)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url is required to run migrations")
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("error closing database connection", "error", err)
		}
	}()

	return postgres.Migrate(ctx, db, command, l)
}
