package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/molweight-api/internal/config"
	"github.com/phrazzld/molweight-api/internal/formula"
	"github.com/phrazzld/molweight-api/internal/platform/postgres"
	"github.com/phrazzld/molweight-api/internal/service"
	"github.com/phrazzld/molweight-api/internal/service/auth"
	"github.com/phrazzld/molweight-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	elementStore  store.ElementStore
	compoundStore store.CompoundStore

	jwtService      auth.JWTService
	symbolTables    *service.SymbolTableProvider
	compoundService service.CompoundService
}

// newApplication creates a new application instance with all dependencies initialized.
// The element table is loaded before it returns, so the first request can be served.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.elementStore = postgres.NewPostgresElementStore(db, logger)
	app.compoundStore = postgres.NewPostgresCompoundStore(db, logger)

	app.symbolTables, err = service.NewSymbolTableProvider(
		app.elementStore,
		logger,
		formula.WithMaxLength(cfg.Analyzer.MaxFormulaLength),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create symbol table provider: %w", err)
	}
	if err := app.symbolTables.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to load element table: %w", err)
	}

	compoundRepo := service.NewCompoundRepositoryAdapter(app.compoundStore, db)
	app.compoundService, err = service.NewCompoundService(compoundRepo, app.symbolTables, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create compound service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the background refresher and the HTTP server. It returns when
// ctx is canceled and the server has shut down.
func (app *application) Run(ctx context.Context) error {
	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()

	if secs := app.config.Analyzer.SymbolRefreshSeconds; secs > 0 {
		app.logger.Info("Periodic element table refresh enabled", "interval_seconds", secs)
		go app.symbolTables.Run(refreshCtx, time.Duration(secs)*time.Second)
	}

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
