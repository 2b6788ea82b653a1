// Command review-worker hosts the durable review workflow on a Temporal
// task queue.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/log"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-review/internal/configuration"
	"github.com/ahrav/go-review/internal/worker"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := configuration.DefaultConfig()
	cfg.Observability.LogLevel = "info"
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.Observability.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	sink, closeSink, err := worker.InitializeEventSink(ctx, cfg.Events, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    log.NewStructuredLogger(logger),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to temporal at %s: %w", cfg.Temporal.HostPort, err)
	}
	defer c.Close()

	w := sdkworker.New(c, cfg.Temporal.TaskQueue, sdkworker.Options{})
	worker.RegisterAll(w, worker.InitializeScoreSource(cfg.Collection), sink)

	logger.Info("review worker starting", "task_queue", cfg.Temporal.TaskQueue)
	return w.Run(sdkworker.InterruptCh())
}
