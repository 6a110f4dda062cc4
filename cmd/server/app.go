package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/platform/memory"
	"github.com/taskdeck/taskdeck-api/internal/platform/postgres"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB // nil in memory-store mode

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore
	userStore store.UserStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier

	// Middleware
	authMiddleware *middleware.AuthMiddleware
}

// newApplication wires the application dependencies from configuration.
// When no database URL is configured the in-process memory store backs
// the API; this mode is for development only and persists nothing.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService

	verifier := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)
	app.passwordHasher = verifier
	app.passwordVerifier = verifier

	if cfg.Database.URL == "" {
		logger.Warn("no database URL configured, using in-memory store")
		mem := memory.New()
		app.taskStore = mem
		app.userStore = mem.Users()
	} else {
		db, err := setupAppDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		app.db = db
		taskStore := postgres.NewPostgresTaskStore(db, logger)
		app.taskStore = taskStore
		app.userStore = postgres.NewPostgresUserStore(db, taskStore, logger)
	}

	app.authMiddleware = middleware.NewAuthMiddleware(app.jwtService, app.userStore)

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
