// Package main implements the entry point for the Task API server, which
// manages per-user tasks behind bearer-token authentication.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx)
	stop()
	if err != nil {
		slog.Error("server exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run wires the application and serves until ctx is cancelled.
func run(ctx context.Context) error {
	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"rate_limit_enabled", cfg.RateLimit.Enabled,
		"rate_limit_per_minute", cfg.RateLimit.PerMinute)
	log.Debug("Auth configuration", "jwt_secret_present", cfg.Auth.JWTSecret != "")

	return cfg, log, nil
}
