// Package main implements the entry point for the molweight API server,
// which analyzes chemical formulas and keeps a registry of users' compounds.
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

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver for database/sql
	"github.com/phrazzld/molweight-api/internal/config"
	"github.com/phrazzld/molweight-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run a migration command (up, down, status, version) and exit")
	issueToken := flag.String("issue-token", "", "Print an access token for the given user ID and exit")
	flag.Parse()

	if err := run(*migrateCmd, *issueToken); err != nil {
		log.Fatalf("molweight-api: %v", err)
	}
}

func run(migrateCmd, issueToken string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if issueToken != "" {
		token, err := issueAccessToken(context.Background(), cfg.Auth, issueToken)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	}

	db, err := setupAppDatabase(cfg, l)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				l.Error("Error closing database connection", "error", err)
			}
		}()
		return runMigrations(context.Background(), db, migrateCmd, l)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, l, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"max_formula_length", cfg.Analyzer.MaxFormulaLength)

	return cfg, nil
}
