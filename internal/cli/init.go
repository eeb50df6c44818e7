// Package cli provides common CLI initialization utilities shared by
// cmd/trainlog and cmd/trainlog-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"trainlog/internal/config"
	"trainlog/internal/core"
	"trainlog/internal/csvio"
	"trainlog/internal/log"
	"trainlog/internal/storage"
)

// SetupLogger initializes component-scoped structured logging with default
// settings. The returned logger is also installed as the slog default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
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
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStateStore opens the state database with the given path.
// Returns the store or exits the process on failure.
func InitStateStore(logger *log.Logger, dbPath string) *storage.StateStore {
	states, err := storage.NewStateStore(dbPath)
	if err != nil {
		logger.Error("Failed to initialize state store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return states
}

// LoadRoster reads the employee roster from the configured path. A missing
// file yields an empty roster; a malformed one exits the process.
func LoadRoster(logger *log.Logger, path string) core.Roster {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Roster file not found, starting with empty roster", "path", path, "error", err)
		return core.Roster{}
	}
	defer f.Close()

	employees, err := csvio.ReadRoster(f)
	if err != nil {
		logger.Error("Failed to parse roster file", "error", err, "path", path)
		os.Exit(1)
	}

	logger.Info("Roster loaded", "path", path, "employees", len(employees))
	return core.NewRoster(employees)
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup()
		}

		cancel()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-time.After(2 * time.Second):
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
