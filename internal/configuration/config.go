// Package configuration holds the settings for review collection, the
// decision policy, event delivery, logging and the Temporal worker.
package configuration

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/internal/review"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the root configuration.
type Config struct {
	// Collection configures the in-process review workers.
	Collection CollectionConfig `json:"collection"`

	// Policy is the decision policy applied to collected scores.
	Policy domain.DecisionPolicy `json:"policy"`

	// Output controls how verdicts are printed.
	Output OutputConfig `json:"output"`

	// Events configures where domain events are delivered.
	Events EventsConfig `json:"events"`

	// Observability configures structured logging.
	Observability ObservabilityConfig `json:"observability"`

	// Temporal configures the durable review worker.
	Temporal TemporalConfig `json:"temporal"`
}

// CollectionConfig controls concurrent score collection.
type CollectionConfig struct {
	NumReviewers   int             `json:"num_reviewers" validate:"min=0,max=64"`
	Strategy       review.Strategy `json:"strategy" validate:"oneof=locked channel"`
	MaxConcurrency int             `json:"max_concurrency" validate:"min=0"`
	DrawsPerSecond float64         `json:"draws_per_second" validate:"min=0"` // 0 disables throttling
	DrawBurst      int             `json:"draw_burst" validate:"min=0"`
	Seed           uint64          `json:"seed"` // 0 draws from the global generator
}

// OutputConfig controls verdict rendering.
type OutputConfig struct {
	Color       bool `json:"color"`
	ShowReviews bool `json:"show_reviews"`
}

// EventsConfig selects the event sink.
type EventsConfig struct {
	Enabled        bool          `json:"enabled"`
	RedisAddr      string        `json:"redis_addr" validate:"required_if=Enabled true"`
	RedisPassword  string        `json:"-"` // Sensitive
	RedisDB        int           `json:"redis_db" validate:"min=0"`
	Stream         string        `json:"stream" validate:"required_if=Enabled true"`
	MaxLen         int64         `json:"max_len" validate:"min=0"`
	EmitAttempts   int           `json:"emit_attempts" validate:"min=1"`
	EmitRetryDelay time.Duration `json:"emit_retry_delay" validate:"min=0"`
}

// ObservabilityConfig controls structured logging.
type ObservabilityConfig struct {
	LogLevel  string `json:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `json:"log_format" validate:"oneof=text json"`
}

// TemporalConfig controls the review worker.
type TemporalConfig struct {
	HostPort  string `json:"host_port" validate:"required"`
	Namespace string `json:"namespace" validate:"required"`
	TaskQueue string `json:"task_queue" validate:"required"`
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// NewLogger builds the slog logger described by the observability section.
func (o ObservabilityConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(o.LogLevel)}
	if strings.EqualFold(o.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
