package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"interview-ai/internal/app"
	"interview-ai/internal/config"
	"interview-ai/internal/logging"
)

const shutdownTimeout = 30 * time.Second

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API

Configuration comes from config.yaml (or CONFIG_FILE), .env and the
environment, in increasing precedence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger, err := logging.New(cfg.Environment, cfg.Server.LogDir)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		return run(cmd.Context(), cfg, logger)
	},
}

func run(parent context.Context, cfg *config.Config, logger *zap.Logger) error {
	srv, cleanup, err := app.InitializeServer(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", zap.Error(err))
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-srv.Errors():
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
