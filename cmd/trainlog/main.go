package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"trainlog/internal/amqp"
	"trainlog/internal/cli"
	apphttp "trainlog/internal/http"
	"trainlog/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	states := cli.InitStateStore(logger, cfg.StateDBPath)
	defer states.Close()

	roster := cli.LoadRoster(logger, cfg.RosterPath)
	if len(cfg.Operators) == 0 {
		logger.Warn("No operators configured, every login will be rejected")
	}

	// Record-change eventing is optional; the app works without a broker.
	var publisher store.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without eventing", "error", err)
		} else {
			publisher = client
			defer client.Close()
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	st := store.New(states, publisher)
	srv := apphttp.NewServer(":"+cfg.Port, st, cfg.Operators, roster)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting trainlog server",
		"port", cfg.Port,
		"operators", len(cfg.Operators),
		"roster", roster.Len())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
