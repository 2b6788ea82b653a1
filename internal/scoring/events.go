// Package scoring implements the Temporal activity that produces one review
// score per reviewer, together with its ReviewSubmitted event.
package scoring

import (
	"context"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/pkg/activity"
)

const producerScoreReview = "activity.score_review"

// EventEmitter handles event emission for the scoring domain.
// Emission is best-effort; failures are logged without affecting scoring.
type EventEmitter struct{ base activity.BaseActivities }

// NewEventEmitter creates a new EventEmitter with base activity infrastructure.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitReviewSubmitted emits the ReviewSubmitted event for one review.
func (e *EventEmitter) EmitReviewSubmitted(
	ctx context.Context,
	input domain.ScoreReviewInput,
	review domain.Review,
	wfCtx activity.WorkflowContext,
) {
	ec := domain.EventContext{
		WorkflowID: wfCtx.WorkflowID,
		RunID:      wfCtx.RunID,
		Producer:   producerScoreReview,
		OccurredAt: review.SubmittedAt,
	}
	env, err := domain.NewReviewSubmittedEvent(ec, input.PaperID, review, input.ClientIdempotencyKey, input.Index)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create ReviewSubmitted event",
			"review_id", review.ID,
			"error", err)
		return
	}
	e.base.EmitEventSafe(ctx, env.Envelope())
}
