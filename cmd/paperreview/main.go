// Command paperreview collects three concurrent reviews for one paper and
// prints the verdict. It takes no arguments.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ahrav/go-review/internal/configuration"
	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/internal/report"
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
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.Observability.NewLogger(os.Stderr)

	sink, closeSink, err := worker.InitializeEventSink(ctx, cfg.Events, logger)
	if err != nil {
		return err
	}
	defer closeSink()

	paper, err := domain.NewPaper(574, "Perseus: Removing Energy Bloat ...")
	if err != nil {
		return err
	}

	collector := worker.NewCollector(cfg, sink, logger)
	result, err := collector.Collect(ctx, paper, cfg.Collection.NumReviewers)
	if err != nil {
		return fmt.Errorf("collect reviews: %w", err)
	}
	logger.Debug("reviews collected",
		"requested", result.Requested,
		"collected", result.Collected,
		"failures", len(result.Failures))

	decision, err := domain.Decide(paper, cfg.Policy)
	if err != nil {
		return fmt.Errorf("decide: %w", err)
	}

	printer := report.NewPrinter(os.Stdout,
		report.WithColor(cfg.Output.Color),
		report.WithReviews(cfg.Output.ShowReviews))
	return printer.Print(decision)
}
