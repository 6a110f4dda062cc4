// Package main implements the entry point for the taskdeck API server,
// a task-management REST API with per-user task scoping and admin user
// management.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if app.db == nil {
			app.logger.Error("migrations require a configured database URL")
			os.Exit(1)
		}
		if err := runMigrations(app.db, *migrateCmd); err != nil {
			app.logger.Error("Migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		app.cleanup()
		return
	}

	// Apply pending migrations before serving traffic.
	if app.db != nil {
		if err := runMigrations(app.db, "up"); err != nil {
			app.logger.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(context.Background(), router); err != nil {
		app.logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up application components.
// Returns the wired application and any initialization error.
func initializeApp() (*application, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// Log configuration details using structured logging
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Log additional configuration details at debug level if available
	if cfg.Database.URL != "" {
		slog.Debug("Database configuration", "url_present", true)
	}

	return newApplication(cfg, appLogger)
}
