package worker

import (
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-review/internal/aggregation"
	"github.com/ahrav/go-review/internal/review"
	"github.com/ahrav/go-review/internal/scoring"
	"github.com/ahrav/go-review/internal/workflow"
	"github.com/ahrav/go-review/pkg/activity"
	"github.com/ahrav/go-review/pkg/events"
)

// Registrar is the subset of a Temporal worker used for registration.
// Both sdkworker.Worker and the SDK test environments satisfy it.
type Registrar interface {
	RegisterWorkflow(w interface{})
	RegisterActivity(a interface{})
}

var _ Registrar = sdkworker.Worker(nil)

// RegisterAll registers the review workflow and its activities. It must be
// called once during worker initialization, before the worker starts.
func RegisterAll(w Registrar, source review.ScoreSource, sink events.EventSink) {
	base := activity.NewBaseActivities(sink)

	scoringActivities := scoring.NewActivities(base, source)
	aggregationActivities := aggregation.NewActivities(base)

	w.RegisterWorkflow(workflow.ReviewWorkflow)

	w.RegisterActivity(scoringActivities.ScoreReview)
	w.RegisterActivity(aggregationActivities.DecidePaper)
}
