// Package aggregation implements the Temporal activity that turns collected
// reviews into a decision, together with its DecisionReached event.
package aggregation

import (
	"context"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/pkg/activity"
)

const producerDecidePaper = "activity.decide_paper"

// EventEmitter handles event emission for the aggregation domain.
type EventEmitter struct {
	base activity.BaseActivities
}

// NewEventEmitter creates a new EventEmitter with the provided base activities.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitDecisionReached emits a DecisionReached event. Failures are logged only.
func (e *EventEmitter) EmitDecisionReached(
	ctx context.Context,
	decision domain.Decision,
	wfCtx activity.WorkflowContext,
	clientIdemKey string,
) {
	ec := domain.EventContext{
		WorkflowID: wfCtx.WorkflowID,
		RunID:      wfCtx.RunID,
		Producer:   producerDecidePaper,
	}
	env, err := domain.NewDecisionReachedEvent(ec, decision, clientIdemKey)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create DecisionReached event",
			"paper_id", decision.PaperID,
			"error", err)
		return
	}
	e.base.EmitEventSafe(ctx, env.Envelope())
}
