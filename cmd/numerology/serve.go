package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phrazzld/numerology-api/internal/config"
	"github.com/phrazzld/numerology-api/internal/platform/logger"
	"github.com/phrazzld/numerology-api/internal/platform/postgres"
)

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

// runServer loads configuration and serves until ctx is cancelled.
func runServer(ctx context.Context, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("database_configured", cfg.Database.Enabled()),
		slog.Bool("llm_configured", cfg.LLM.Enabled()))

	var app *application
	if cfg.Database.Enabled() {
		db, err := setupAppDatabase(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		if migrate {
			if err := postgres.Migrate(ctx, db, "up", log); err != nil {
				_ = db.Close()
				return err
			}
		}
		app, err = newApplication(ctx, cfg, log, db, newGeminiInterpreter)
		if err != nil {
			_ = db.Close()
			return err
		}
	} else {
		app, err = newApplication(ctx, cfg, log, nil, newGeminiInterpreter)
		if err != nil {
			return err
		}
	}
	defer app.cleanup()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Server.Port, err)
	}

	return app.serveHTTP(ctx, listener, app.setupRouter())
}
