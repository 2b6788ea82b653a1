package aggregation

import (
	"context"

	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/pkg/activity"
)

// Activities hosts the DecidePaper activity.
type Activities struct {
	activity.BaseActivities
	events *EventEmitter
}

// NewActivities creates aggregation activities with the provided dependencies.
func NewActivities(base activity.BaseActivities) *Activities {
	return &Activities{
		BaseActivities: base,
		events:         NewEventEmitter(base),
	}
}

// DecidePaper rebuilds the paper from the collected reviews and applies the
// decision policy. It performs no I/O besides event emission, so every
// failure is non-retryable.
func (a *Activities) DecidePaper(ctx context.Context, input domain.DecidePaperInput) (*domain.Decision, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("DecidePaper", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting DecidePaper activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"paper_id", input.PaperID,
		"reviews", len(input.Reviews))

	paper, err := domain.NewPaper(input.PaperID, input.Title)
	if err != nil {
		return nil, nonRetryable("DecidePaper", err, "invalid paper")
	}
	for _, r := range input.Reviews {
		if err := paper.AddReview(r); err != nil {
			return nil, nonRetryable("DecidePaper", err, "invalid review")
		}
	}

	decision, err := domain.Decide(paper, input.Policy)
	if err != nil {
		return nil, nonRetryable("DecidePaper", err, "decision failed")
	}

	a.events.EmitDecisionReached(ctx, decision, wfCtx, input.ClientIdempotencyKey)

	activity.SafeLog(ctx, "DecidePaper completed",
		"paper_id", decision.PaperID,
		"outcome", decision.Outcome,
		"mean", decision.Mean)
	return &decision, nil
}

func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
