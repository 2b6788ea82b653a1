//nolint:testpackage // Tests need access to unexported constants
package aggregation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/pkg/activity"
	"github.com/ahrav/go-review/pkg/events"
)

func createDecideInput(t *testing.T, policy domain.DecisionPolicy, scores ...uint8) domain.DecidePaperInput {
	t.Helper()
	reviews := make([]domain.Review, 0, len(scores))
	for _, s := range scores {
		r, err := domain.NewReview("reviewer", s)
		require.NoError(t, err)
		reviews = append(reviews, r)
	}
	return domain.DecidePaperInput{
		PaperID:              574,
		Title:                "Perseus: Removing Energy Bloat ...",
		Reviews:              reviews,
		Policy:               policy,
		ClientIdempotencyKey: "client-key",
	}
}

func TestDecidePaper(t *testing.T) {
	mean := domain.DefaultDecisionPolicy()
	sum := domain.DecisionPolicy{Method: domain.DecisionMethodSum, Cutoff: domain.DefaultCutoff}

	tests := []struct {
		name   string
		policy domain.DecisionPolicy
		scores []uint8
		want   domain.Outcome
	}{
		{name: "mean rejected at cutoff", policy: mean, scores: []uint8{2, 4}, want: domain.OutcomeRejected},
		{name: "mean accepted", policy: mean, scores: []uint8{4, 4}, want: domain.OutcomeAccepted},
		{name: "sum rejected at threshold", policy: sum, scores: []uint8{2, 4}, want: domain.OutcomeRejected},
		{name: "sum accepted", policy: sum, scores: []uint8{4, 4, 4}, want: domain.OutcomeAccepted},
		{name: "no reviews", policy: mean, scores: nil, want: domain.OutcomeInsufficientReviews},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := events.NewMemorySink()
			a := NewActivities(activity.NewBaseActivities(sink))

			d, err := a.DecidePaper(context.Background(), createDecideInput(t, tt.policy, tt.scores...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Outcome)
			assert.Equal(t, len(tt.scores), d.ReviewCount)

			emitted := sink.ByType(string(domain.EventTypeDecisionReached))
			require.Len(t, emitted, 1)
			assert.Equal(t, producerDecidePaper, emitted[0].Source)
			assert.Equal(t, domain.GenerateIdempotencyKey("client-key", ":decision"), emitted[0].IdempotencyKey)
		})
	}
}

func TestDecidePaper_InvalidInput(t *testing.T) {
	a := NewActivities(activity.BaseActivities{})

	tests := []struct {
		name  string
		input domain.DecidePaperInput
	}{
		{name: "empty input", input: domain.DecidePaperInput{}},
		{
			name: "bad policy",
			input: func() domain.DecidePaperInput {
				in := createDecideInput(t, domain.DefaultDecisionPolicy(), 3)
				in.Policy.Method = "median"
				return in
			}(),
		},
		{
			name: "out of range review",
			input: func() domain.DecidePaperInput {
				in := createDecideInput(t, domain.DefaultDecisionPolicy(), 3)
				in.Reviews[0].Score = 7
				return in
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := a.DecidePaper(context.Background(), tt.input)
			assert.Nil(t, d)

			var appErr *temporal.ApplicationError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "DecidePaper", appErr.Type())
			assert.True(t, appErr.NonRetryable())
		})
	}
}
