package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"trainlog/internal/amqp"
	"trainlog/internal/cli"
	"trainlog/internal/export"
	"trainlog/internal/log"
	"trainlog/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	states := cli.InitStateStore(logger, cfg.StateDBPath)
	defer states.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mirror, err := export.NewMirror(ctx, cfg.MirrorBackend, cfg.MirrorFilePath)
	if err != nil {
		logger.Error("Failed to initialize export mirror", "error", err, "backend", cfg.MirrorBackend)
		os.Exit(1)
	}
	if mirror == nil {
		logger.Info("Mirroring disabled, nothing to do", "backend", cfg.MirrorBackend)
		return
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	w := worker.NewExportWorker(states, mirror)
	wlog := logger.WithComponent(log.ComponentWorker)

	// Full resync at startup so the mirror catches changes made while the
	// worker was down.
	if err := w.Resync(ctx); err != nil {
		wlog.Error("Initial resync failed", "error", err)
	} else {
		wlog.Info("Initial resync complete")
	}

	wlog.Info("Starting export worker",
		"backend", cfg.MirrorBackend,
		"queue", cfg.AMQPQueue,
		"resync_interval", cfg.ResyncInterval.String())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.ConsumeRecordChanges(gctx, func(msg *amqp.RecordChangeMessage) error {
			return w.HandleChangeMessage(gctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.ResyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := w.Resync(gctx); err != nil {
					wlog.Error("Periodic resync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		wlog.Error("Worker error", "error", err)
		os.Exit(1)
	}
	wlog.Info("Worker stopped gracefully")
}
