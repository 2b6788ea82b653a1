package events

import (
	"context"
	"log/slog"
	"time"
)

const (
	defaultEmitAttempts = 2
	defaultEmitDelay    = 200 * time.Millisecond
)

// Emitter delivers envelopes to a sink with a short retry. Delivery is
// best-effort: failures are logged and swallowed so that event emission
// never fails the operation that produced the event.
type Emitter struct {
	sink        EventSink
	logger      *slog.Logger
	maxAttempts int
	retryDelay  time.Duration
}

// EmitterOption customizes an Emitter.
type EmitterOption func(*Emitter)

// WithRetry overrides the attempt count and delay between attempts.
func WithRetry(attempts int, delay time.Duration) EmitterOption {
	return func(e *Emitter) {
		if attempts > 0 {
			e.maxAttempts = attempts
		}
		e.retryDelay = delay
	}
}

// WithLogger sets the logger used to report delivery outcomes.
func WithLogger(logger *slog.Logger) EmitterOption {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEmitter creates an Emitter for sink. A nil sink disables emission.
func NewEmitter(sink EventSink, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		sink:        sink,
		logger:      slog.Default().With("component", "events"),
		maxAttempts: defaultEmitAttempts,
		retryDelay:  defaultEmitDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit appends the envelope, retrying transient failures, and reports
// whether delivery succeeded.
func (e *Emitter) Emit(ctx context.Context, envelope Envelope) bool {
	if e == nil || e.sink == nil {
		return false
	}

	var lastErr error
	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(e.retryDelay):
			case <-ctx.Done():
				e.logger.WarnContext(ctx, "event emission cancelled",
					"event_type", envelope.Type,
					"idempotency_key", envelope.IdempotencyKey)
				return false
			}
		}

		if err := e.sink.Append(ctx, envelope); err != nil {
			lastErr = err
			continue
		}

		e.logger.DebugContext(ctx, "event emitted",
			"event_type", envelope.Type,
			"idempotency_key", envelope.IdempotencyKey)
		return true
	}

	e.logger.ErrorContext(ctx, "event emission failed",
		"event_type", envelope.Type,
		"attempts", e.maxAttempts,
		"error", lastErr)
	return false
}
