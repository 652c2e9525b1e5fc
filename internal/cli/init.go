// Package cli provides common CLI initialization utilities shared by
// cmd/hisab and cmd/hisab-worker.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"hisab/internal/backend"
	"hisab/internal/config"
	"hisab/internal/log"
)

// SetupLogger builds the logger described by cfg and installs it as the
// default. A nil cfg gives an info level text logger.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	format, level := log.FormatText, slog.LevelInfo
	if cfg != nil {
		format, level = cfg.LogFormat, log.ParseLevel(cfg.LogLevel)
	}
	logger := log.New(log.Config{
		Level:     level,
		Component: component,
		Handler:   log.NewHandler(os.Stdout, format, level),
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeConfiguration)
		os.Exit(1)
	}
	return cfg
}

// OpenBackend creates the configured store. notify asks for an AMQP
// publisher when the config enables one. Exits the process on failure.
func OpenBackend(ctx context.Context, logger *log.Logger, cfg *config.Config, notify bool) *backend.BackendResult {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	bcfg.Notify = notify && bcfg.Notify

	result, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldError, err,
			log.FieldBackend, bcfg.Type.String())
		os.Exit(1)
	}
	return result
}

// SignalContext returns a context that is cancelled on SIGINT or SIGTERM.
// The received signal is logged.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
