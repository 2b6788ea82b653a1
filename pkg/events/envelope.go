// Package events provides the generic event infrastructure for domain event emission.
// It defines the Envelope type for wrapping domain events with consistent metadata
// and the EventSink interface for event storage/transmission.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope wraps domain events with consistent metadata for reliable event processing.
// It holds any domain payload while keeping the fields needed for routing,
// deduplication and correlation stable across event types.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing and processing.
	// Examples: "ReviewSubmitted", "DecisionReached"
	Type string `json:"type"`

	// Source identifies the component that emitted this event.
	// Examples: "review.collector", "activity.decide_paper"
	Source string `json:"source"`

	// Version enables schema evolution. Starts at "1.0.0".
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey ensures exactly-once processing during retries.
	IdempotencyKey string `json:"idempotency_key"`

	// Subject identifies the paper the event is about.
	Subject string `json:"subject"`

	// WorkflowID identifies the Temporal workflow that triggered this event.
	// Empty for in-process collection.
	WorkflowID string `json:"workflow_id,omitempty"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id,omitempty"`

	// Payload contains the domain-specific event data as JSON.
	Payload json.RawMessage `json:"payload"`
}

// EventSink defines the interface for emitting events to downstream consumers.
// Implementations must treat a repeated idempotency key as a no-op and
// return quickly to avoid blocking the caller.
type EventSink interface {
	// Append adds an event to the sink with best-effort delivery.
	// Callers must not fail their primary operation because of an error here.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink is a null implementation of EventSink for testing or when events are disabled.
type NoOpEventSink struct{}

// Append implements EventSink.Append with no-op behavior.
func (n *NoOpEventSink) Append(_ context.Context, _ Envelope) error {
	return nil
}

// NewNoOpEventSink creates a new no-op event sink.
func NewNoOpEventSink() EventSink {
	return &NoOpEventSink{}
}
