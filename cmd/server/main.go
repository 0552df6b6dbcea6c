// Package main implements the entry point for the Quizlight API server,
// which hosts users' flashcard study sets and composes AI-assisted answers
// to study questions grounded in those sets.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/quizlight/quizlight-api/internal/config"
	"github.com/quizlight/quizlight-api/internal/platform/logger"
)

func main() {
	// A missing .env file is fine; environment variables may carry the
	// whole configuration.
	_ = godotenv.Load()

	if err := run(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires up the application, and starts the HTTP
// server. It returns when the server has shut down or startup failed.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Failed to close database after migration failure",
				"error", closeErr)
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Failed to close database after initialization failure",
				"error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	return nil
}
