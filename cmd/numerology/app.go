package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/numerology-api/internal/config"
	"github.com/phrazzld/numerology-api/internal/generation"
	"github.com/phrazzld/numerology-api/internal/platform/gemini"
	"github.com/phrazzld/numerology-api/internal/platform/metrics"
	"github.com/phrazzld/numerology-api/internal/platform/postgres"
	"github.com/phrazzld/numerology-api/internal/service"
)

// application holds the shared dependencies of the server so they can be
// cleaned up together on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	metrics *metrics.Metrics

	numerologyService service.NumerologyService
}

// interpreterFactory builds the interpreter; tests swap it out.
type interpreterFactory func(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Interpreter, error)

func newGeminiInterpreter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Interpreter, error) {
	return gemini.NewGeminiInterpreter(ctx, logger, cfg)
}

// newApplication wires the service. db may be nil, in which case the
// report store is left out; the interpreter is only built when an API key
// is configured.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	newInterpreter interpreterFactory,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.metrics = metrics.MustNewMetrics(reg)

	opts := []service.Option{service.WithMetrics(app.metrics)}

	if db != nil {
		reports := postgres.NewPostgresReportStore(db, logger)
		opts = append(opts, service.WithReportStore(reports, db))
		logger.Info("report persistence enabled")
	} else {
		logger.Warn("no database configured, report persistence disabled")
	}

	if cfg.LLM.Enabled() && newInterpreter != nil {
		interpreter, err := newInterpreter(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize interpreter: %w", err)
		}
		opts = append(opts, service.WithInterpreter(interpreter, cfg.LLM.CacheSize))
		logger.Info("report interpretation enabled", slog.String("model", cfg.LLM.ModelName))
	} else {
		logger.Warn("no Gemini API key configured, interpretation disabled")
	}

	svc, err := service.NewNumerologyService(cfg.Calculation, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create numerology service: %w", err)
	}
	app.numerologyService = svc

	logger.Info("application initialized")
	return app, nil
}

// cleanup releases the application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
