// Package worker provides initialization and setup utilities shared by the
// review binaries: score sources, event sinks and Temporal registration.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-review/internal/configuration"
	"github.com/ahrav/go-review/internal/review"
	"github.com/ahrav/go-review/pkg/events"
)

// InitializeScoreSource builds the score source described by cfg: random
// draws, seeded when a seed is set, throttled when a draw rate is set.
func InitializeScoreSource(cfg configuration.CollectionConfig) review.ScoreSource {
	var src review.ScoreSource
	if cfg.Seed != 0 {
		src = review.NewSeededRandomSource(cfg.Seed)
	} else {
		src = review.NewRandomSource()
	}
	if cfg.DrawsPerSecond > 0 {
		src = review.NewThrottledSource(src, cfg.DrawsPerSecond, cfg.DrawBurst)
	}
	return src
}

// InitializeEventSink returns a Redis stream sink when events are enabled
// and the server answers, and a no-op sink otherwise. The returned close
// function releases the Redis connection.
func InitializeEventSink(
	ctx context.Context,
	cfg configuration.EventsConfig,
	logger *slog.Logger,
) (events.EventSink, func() error, error) {
	noop := func() error { return nil }
	if !cfg.Enabled {
		return events.NewNoOpEventSink(), noop, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("event sink ready", "redis_addr", cfg.RedisAddr, "stream", cfg.Stream)
	return events.NewRedisStreamSink(client, cfg.Stream, cfg.MaxLen), client.Close, nil
}

// NewCollector assembles a review collector from configuration.
func NewCollector(cfg *configuration.Config, sink events.EventSink, logger *slog.Logger) *review.Collector {
	emitter := events.NewEmitter(sink,
		events.WithRetry(cfg.Events.EmitAttempts, cfg.Events.EmitRetryDelay),
		events.WithLogger(logger.With("component", "events")))

	return review.NewCollector(
		InitializeScoreSource(cfg.Collection),
		review.WithStrategy(cfg.Collection.Strategy),
		review.WithConcurrency(cfg.Collection.MaxConcurrency),
		review.WithLogger(logger.With("component", "review")),
		review.WithEmitter(emitter),
	)
}
