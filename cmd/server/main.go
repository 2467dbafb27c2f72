// Package main implements the entry point for the HanziDeck API server,
// which schedules vocabulary flashcard study sessions using spaced
// repetition and tracks per-user progress, quotas, and streaks.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/hanzideck/hanzideck-api/internal/config"
	"github.com/hanzideck/hanzideck-api/internal/platform/logger"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and builds the
// application with all its dependencies wired.
func initializeApp(ctx context.Context) (*application, error) {
	// A local .env file is optional; real deployments set env vars directly.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"dictionary_path", cfg.Study.DictionaryPath,
		"storage", storageMode(cfg))

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}

	return app, nil
}

func storageMode(cfg *config.Config) string {
	if cfg.Database.URL == "" {
		return "memory"
	}
	return "postgres"
}
