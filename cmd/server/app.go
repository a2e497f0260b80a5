package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/hececiz/internal/audio"
	"github.com/phrazzld/hececiz/internal/config"
	"github.com/phrazzld/hececiz/internal/events"
	"github.com/phrazzld/hececiz/internal/platform/gemini"
	"github.com/phrazzld/hececiz/internal/platform/memory"
	"github.com/phrazzld/hececiz/internal/platform/postgres"
	"github.com/phrazzld/hececiz/internal/session"
	"github.com/phrazzld/hececiz/internal/store"
	"github.com/phrazzld/hececiz/internal/verification"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when profiles are kept in memory.
	db       *sql.DB
	profiles store.ProfileStore

	clips    *audio.Library
	player   *audio.LibraryPlayer
	emitter  *events.InMemoryEventEmitter
	journal  *events.Journal
	sessions *session.Manager
}

// newApplication opens the profile store, connects the classifier and
// assembles the rest of the application.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, profiles, err := openProfileStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	classifier, err := gemini.NewClassifier(ctx, logger.With("component", "classifier"), cfg.Classifier)
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("failed to initialize classifier: %w", err)
	}
	logger.Info("classifier initialized", "model", cfg.Classifier.ModelName)

	app, err := assembleApplication(cfg, logger, db, profiles, classifier)
	if err != nil {
		closeDB(db, logger)
		return nil, err
	}
	return app, nil
}

// openProfileStore selects the postgres store when a database URL is
// configured and the in-memory store otherwise.
func openProfileStore(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (*sql.DB, store.ProfileStore, error) {
	if cfg.URL == "" {
		logger.Warn("no database configured, profiles will not survive a restart")
		return nil, memory.NewProfileStore(logger), nil
	}

	db, err := postgres.Open(ctx, cfg.URL, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
			closeDB(db, logger)
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}
	return db, postgres.NewPostgresProfileStore(db, logger), nil
}

// assembleApplication wires the session stack on top of an opened profile
// store and classifier.
func assembleApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	profiles store.ProfileStore,
	classifier verification.Classifier,
) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		profiles: profiles,
	}

	gateway, err := verification.NewGateway(classifier, cfg.Classifier.Timeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification gateway: %w", err)
	}

	var synth audio.Synthesizer
	if cfg.Audio.TTSEnabled {
		synth = audio.NewGoogleTTS(cfg.Audio.TTSBaseURL, cfg.Audio.TTSLanguage, nil)
	}
	app.clips, err = audio.NewLibrary(cfg.Audio.SyllableDir, synth, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio library: %w", err)
	}
	app.player = audio.NewPlayer(app.clips, audio.DiscardSink{}, logger)
	logger.Info("audio initialized",
		"syllable_dir", cfg.Audio.SyllableDir,
		"tts_enabled", cfg.Audio.TTSEnabled)

	app.journal = events.NewJournal(events.DefaultJournalCapacity)
	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.emitter.RegisterHandler(app.journal)

	app.sessions, err = session.NewManager(session.Dependencies{
		Verifier:  gateway,
		Profiles:  profiles,
		Player:    app.player,
		Emitter:   app.emitter,
		Scheduler: session.RealScheduler{},
		Logger:    logger,
	}, cfg.Session, session.WithForgetter(app.journal))
	if err != nil {
		app.player.Close()
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	if err := app.sessions.StartSweeper(); err != nil {
		app.player.Close()
		return nil, fmt.Errorf("failed to start idle session sweeper: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) error {
	var errs []error

	if app.sessions != nil {
		if err := app.sessions.CloseAll(ctx); err != nil {
			errs = append(errs, fmt.Errorf("closing sessions: %w", err))
		}
	}
	if app.player != nil {
		app.player.Close()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}

	app.logger.Info("application shutdown completed")
	return errors.Join(errs...)
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("error closing database connection", "error", err)
	}
}
