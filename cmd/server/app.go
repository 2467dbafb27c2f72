package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hanzideck/hanzideck-api/internal/config"
	"github.com/hanzideck/hanzideck-api/internal/domain/srs"
	"github.com/hanzideck/hanzideck-api/internal/platform/memory"
	"github.com/hanzideck/hanzideck-api/internal/platform/postgres"
	"github.com/hanzideck/hanzideck-api/internal/service/study"
	"github.com/hanzideck/hanzideck-api/internal/store"
	"github.com/hanzideck/hanzideck-api/internal/vocab"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB // nil when running on the in-memory backend

	// Dictionary
	dictionary *vocab.Dictionary

	// Stores (using interfaces for proper abstraction)
	progressStore store.ProgressStore
	statsStore    store.StatsStore
	batchStore    store.BatchStore

	// Service interfaces
	srsService   srs.Service
	studyService study.StudyService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration and logger
// that must be established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Load the vocabulary dictionary
	dictionary, err := vocab.LoadCSVFile(cfg.Study.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary dictionary: %w", err)
	}
	app.dictionary = dictionary
	logger.Info("Vocabulary dictionary loaded",
		"words", dictionary.Len(),
		"levels", len(dictionary.Levels()),
		"categories", len(dictionary.Categories()))

	// Initialize stores: postgres when a database URL is configured,
	// in-memory otherwise.
	if cfg.Database.URL != "" {
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db

		if err := postgres.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		app.progressStore = postgres.NewPostgresProgressStore(db, logger)
		app.statsStore = postgres.NewPostgresStatsStore(db, logger)
		app.batchStore = postgres.NewPostgresBatchStore(db, logger)
	} else {
		logger.Info("No database URL configured, using in-memory stores")
		app.progressStore = memory.NewProgressStore()
		app.statsStore = memory.NewStatsStore()
		app.batchStore = memory.NewBatchStore()
	}

	// Initialize SRS service with the configured interval ladder, if any
	if len(cfg.Study.Intervals) > 0 {
		params, err := srs.NewParams(cfg.Study.Intervals)
		if err != nil {
			return nil, fmt.Errorf("invalid interval configuration: %w", err)
		}
		app.srsService = srs.NewServiceWithParams(params)
	} else {
		app.srsService = srs.NewDefaultService()
	}

	// Initialize study service
	app.studyService = study.NewStudyService(
		app.dictionary,
		app.progressStore,
		app.statsStore,
		app.batchStore,
		app.srsService,
		study.NewClock(),
		app.db,
		study.Config{
			DailyGoal:   cfg.Study.DailyGoal,
			ReviewLimit: cfg.Study.ReviewLimit,
		},
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
