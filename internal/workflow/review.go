package workflow

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/go-review/internal/aggregation"
	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/internal/scoring"
)

// DefaultActivityTimeout applies when the request leaves the timeout unset.
const DefaultActivityTimeout = 30 * time.Second

// ReviewWorkflow collects NumReviewers scores concurrently and decides the
// paper. A reviewer whose activity fails is logged and skipped; it never
// fails the workflow or its siblings. The decision runs only after every
// score activity has completed.
func ReviewWorkflow(ctx workflow.Context, req domain.ReviewRequest) (*domain.Decision, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "review.v", workflow.DefaultVersion, currentVersion)

	if err := req.Validate(); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(
			"invalid review request",
			"Validation",
			err,
		)
	}

	timeout := DefaultActivityTimeout
	if req.ActivityTimeoutSeconds > 0 {
		timeout = time.Duration(req.ActivityTimeoutSeconds) * time.Second
	}
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: timeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	})

	logger := workflow.GetLogger(ctx)

	var sa *scoring.Activities
	futures := make([]workflow.Future, req.NumReviewers)
	for i := range req.NumReviewers {
		futures[i] = workflow.ExecuteActivity(ctx, sa.ScoreReview, domain.ScoreReviewInput{
			PaperID:              req.PaperID,
			ReviewerID:           fmt.Sprintf("reviewer-%d", i+1),
			Index:                i,
			ClientIdempotencyKey: req.ClientIdempotencyKey,
		})
	}

	reviews := make([]domain.Review, 0, req.NumReviewers)
	for i, f := range futures {
		var r domain.Review
		if err := f.Get(ctx, &r); err != nil {
			logger.Warn("cannot add review", "paper_id", req.PaperID, "worker", i, "error", err)
			continue
		}
		reviews = append(reviews, r)
	}

	var aa *aggregation.Activities
	var decision domain.Decision
	err := workflow.ExecuteActivity(ctx, aa.DecidePaper, domain.DecidePaperInput{
		PaperID:              req.PaperID,
		Title:                req.Title,
		Reviews:              reviews,
		Policy:               req.Policy,
		ClientIdempotencyKey: req.ClientIdempotencyKey,
	}).Get(ctx, &decision)
	if err != nil {
		return nil, err
	}

	return &decision, nil
}
