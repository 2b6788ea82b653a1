package configuration

import (
	"time"

	"go.temporal.io/sdk/client"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/internal/review"
)

// Collection defaults.
const (
	DefaultNumReviewers = 3
	DefaultDrawBurst    = 1
)

// Event delivery defaults.
const (
	DefaultRedisAddr      = "localhost:6379"
	DefaultStream         = "review-events"
	DefaultStreamMaxLen   = 10_000
	DefaultEmitAttempts   = 2
	DefaultEmitRetryDelay = 200 * time.Millisecond
)

// DefaultTaskQueue is the Temporal task queue served by the review worker.
const DefaultTaskQueue = "paper-review"

// DefaultConfig returns the configuration used by the demo driver: three
// concurrent reviewers, mean policy with a 3.0 cutoff, colored output and
// events disabled.
func DefaultConfig() *Config {
	return &Config{
		Collection: CollectionConfig{
			NumReviewers: DefaultNumReviewers,
			Strategy:     review.StrategyLocked,
			DrawBurst:    DefaultDrawBurst,
		},
		Policy: domain.DefaultDecisionPolicy(),
		Output: OutputConfig{
			Color: true,
		},
		Events: EventsConfig{
			RedisAddr:      DefaultRedisAddr,
			Stream:         DefaultStream,
			MaxLen:         DefaultStreamMaxLen,
			EmitAttempts:   DefaultEmitAttempts,
			EmitRetryDelay: DefaultEmitRetryDelay,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "warn",
			LogFormat: "text",
		},
		Temporal: TemporalConfig{
			HostPort:  client.DefaultHostPort,
			Namespace: client.DefaultNamespace,
			TaskQueue: DefaultTaskQueue,
		},
	}
}
