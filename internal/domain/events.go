package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ahrav/go-review/pkg/events"
)

// EventType represents the type of event emitted by the system.
type EventType string

const (
	// EventTypeReviewSubmitted is emitted once per collected review.
	EventTypeReviewSubmitted EventType = "ReviewSubmitted"

	// EventTypeDecisionReached is emitted once per decided paper.
	EventTypeDecisionReached EventType = "DecisionReached"
)

// EventEnvelope wraps domain events with the metadata projections need.
type EventEnvelope struct {
	// IdempotencyKey ensures events are processed exactly once during retries.
	IdempotencyKey string `json:"idempotency_key" validate:"required"`

	EventType EventType `json:"event_type" validate:"required"`

	// Version enables event schema evolution. Starts at 1.
	Version int `json:"version" validate:"required,min=1"`

	// OccurredAt should come from workflow.Now(ctx) inside workflows.
	OccurredAt time.Time `json:"occurred_at" validate:"required"`

	PaperID uint32 `json:"paper_id" validate:"required"`

	// WorkflowID and RunID are empty for in-process collection.
	WorkflowID string `json:"workflow_id,omitempty"`
	RunID      string `json:"run_id,omitempty"`

	Payload json.RawMessage `json:"payload" validate:"required"`

	// Producer identifies the component that emitted this event.
	Producer string `json:"producer" validate:"required"`
}

// Validate checks if the event envelope meets all requirements.
func (e *EventEnvelope) Validate() error { return validate.Struct(e) }

// Envelope converts the domain event into the transport envelope.
// The idempotency key doubles as the event ID so retries map to one event.
func (e *EventEnvelope) Envelope() events.Envelope {
	return events.Envelope{
		ID:             e.IdempotencyKey,
		Type:           string(e.EventType),
		Source:         e.Producer,
		Version:        fmt.Sprintf("%d.0.0", e.Version),
		Timestamp:      e.OccurredAt,
		IdempotencyKey: e.IdempotencyKey,
		Subject:        strconv.FormatUint(uint64(e.PaperID), 10),
		WorkflowID:     e.WorkflowID,
		RunID:          e.RunID,
		Payload:        e.Payload,
	}
}

// ReviewSubmittedPayload contains the data for ReviewSubmitted events.
type ReviewSubmittedPayload struct {
	ReviewID   string `json:"review_id" validate:"required,uuid"`
	ReviewerID string `json:"reviewer_id" validate:"required"`
	Score      uint8  `json:"score" validate:"min=1,max=5"`
}

// DecisionReachedPayload contains the data for DecisionReached events.
type DecisionReachedPayload struct {
	Outcome     Outcome        `json:"outcome" validate:"required,oneof=accepted rejected insufficient_reviews"`
	Method      DecisionMethod `json:"method" validate:"required"`
	ReviewCount int            `json:"review_count" validate:"min=0"`
	Mean        float64        `json:"mean" validate:"min=0,max=5"`
	Threshold   float64        `json:"threshold" validate:"min=0"`
}

// EventContext carries the execution identifiers stamped on every event.
type EventContext struct {
	WorkflowID string
	RunID      string
	Producer   string
	OccurredAt time.Time
}

// GenerateIdempotencyKey creates a deterministic key for event deduplication:
// H(client_idem_key || suffix). Retries and replays yield the same key.
func GenerateIdempotencyKey(clientIdempotencyKey, eventSuffix string) string {
	hasher := sha256.New()
	hasher.Write([]byte(clientIdempotencyKey + eventSuffix))
	return hex.EncodeToString(hasher.Sum(nil))
}

// NewReviewSubmittedEvent creates a ReviewSubmitted envelope for the review
// at position index.
func NewReviewSubmittedEvent(
	ec EventContext,
	paperID uint32,
	review Review,
	clientIdempotencyKey string,
	index int,
) (EventEnvelope, error) {
	payload := ReviewSubmittedPayload{
		ReviewID:   review.ID,
		ReviewerID: review.ReviewerID,
		Score:      review.Score,
	}
	if err := validate.Struct(&payload); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid review submitted payload: %w", err)
	}

	key := GenerateIdempotencyKey(clientIdempotencyKey, fmt.Sprintf(":review:%d", index))
	return newEnvelope(ec, EventTypeReviewSubmitted, paperID, payload, key)
}

// NewDecisionReachedEvent creates a DecisionReached envelope.
func NewDecisionReachedEvent(
	ec EventContext,
	decision Decision,
	clientIdempotencyKey string,
) (EventEnvelope, error) {
	payload := DecisionReachedPayload{
		Outcome:     decision.Outcome,
		Method:      decision.Method,
		ReviewCount: decision.ReviewCount,
		Mean:        decision.Mean,
		Threshold:   decision.Threshold,
	}
	if err := validate.Struct(&payload); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid decision reached payload: %w", err)
	}

	key := GenerateIdempotencyKey(clientIdempotencyKey, ":decision")
	return newEnvelope(ec, EventTypeDecisionReached, decision.PaperID, payload, key)
}

func newEnvelope(ec EventContext, t EventType, paperID uint32, payload any, key string) (EventEnvelope, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	occurred := ec.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	envelope := EventEnvelope{
		IdempotencyKey: key,
		EventType:      t,
		Version:        1,
		OccurredAt:     occurred,
		PaperID:        paperID,
		WorkflowID:     ec.WorkflowID,
		RunID:          ec.RunID,
		Payload:        payloadJSON,
		Producer:       ec.Producer,
	}
	if err := envelope.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid event envelope: %w", err)
	}
	return envelope, nil
}
