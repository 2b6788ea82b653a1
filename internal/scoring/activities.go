package scoring

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/internal/review"
	"github.com/ahrav/go-review/pkg/activity"
)

// Activities hosts the ScoreReview activity.
type Activities struct {
	activity.BaseActivities
	source review.ScoreSource
	events *EventEmitter
	now    func() time.Time
}

// NewActivities creates scoring activities drawing scores from source.
func NewActivities(base activity.BaseActivities, source review.ScoreSource) *Activities {
	return &Activities{
		BaseActivities: base,
		source:         source,
		events:         NewEventEmitter(base),
		now:            time.Now,
	}
}

// ScoreReview draws one score for one reviewer and returns it as a review.
//
// The review ID is derived from the idempotency key and index, so a retried
// attempt reports the same review slot. The score is not pinned: each attempt
// draws again, and only the attempt that completes is recorded in workflow
// history. Invalid input and an exhausted source are non-retryable; any other
// draw failure is left to the retry policy.
func (a *Activities) ScoreReview(ctx context.Context, input domain.ScoreReviewInput) (*domain.Review, error) {
	if err := input.Validate(); err != nil {
		return nil, nonRetryable("ScoreReview", err, "invalid input")
	}

	wfCtx := a.GetWorkflowContext(ctx)
	activity.SafeLog(ctx, "Starting ScoreReview activity",
		"workflow_id", wfCtx.WorkflowID,
		"activity_id", wfCtx.ActivityID,
		"paper_id", input.PaperID,
		"reviewer_id", input.ReviewerID)

	score, err := a.source.Draw(ctx)
	if err != nil {
		if errors.Is(err, review.ErrSourceExhausted) {
			return nil, nonRetryable("ScoreReview", err, "no score available")
		}
		return nil, fmt.Errorf("draw score for %s: %w", input.ReviewerID, err)
	}

	r, err := domain.MakeReview(reviewID(input), input.ReviewerID, score, a.now())
	if err != nil {
		return nil, nonRetryable("ScoreReview", err, "score out of range")
	}

	a.events.EmitReviewSubmitted(ctx, input, r, wfCtx)

	activity.SafeLog(ctx, "ScoreReview completed",
		"paper_id", input.PaperID,
		"reviewer_id", input.ReviewerID,
		"score", r.Score)
	return &r, nil
}

func reviewID(input domain.ScoreReviewInput) string {
	name := input.ClientIdempotencyKey + ":review:" + strconv.Itoa(input.Index)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func nonRetryable(tag string, cause error, msg string) error {
	return temporal.NewNonRetryableApplicationError(msg, tag, cause)
}
