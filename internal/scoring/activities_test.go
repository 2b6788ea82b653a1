//nolint:testpackage // Tests need access to unexported helpers like reviewID
package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/internal/review"
	"github.com/ahrav/go-review/pkg/activity"
	"github.com/ahrav/go-review/pkg/events"
)

func validInput() domain.ScoreReviewInput {
	return domain.ScoreReviewInput{
		PaperID:              574,
		ReviewerID:           "reviewer-1",
		Index:                0,
		ClientIdempotencyKey: "client-key",
	}
}

func TestScoreReview(t *testing.T) {
	t.Run("returns review and emits event", func(t *testing.T) {
		sink := events.NewMemorySink()
		a := NewActivities(activity.NewBaseActivities(sink), review.NewFixedSource(4))

		r, err := a.ScoreReview(context.Background(), validInput())
		require.NoError(t, err)
		require.NotNil(t, r)

		assert.Equal(t, uint8(4), r.Score)
		assert.Equal(t, "reviewer-1", r.ReviewerID)
		assert.Equal(t, reviewID(validInput()), r.ID)

		emitted := sink.ByType(string(domain.EventTypeReviewSubmitted))
		require.Len(t, emitted, 1)
		assert.Equal(t, producerScoreReview, emitted[0].Source)
	})

	t.Run("review id is stable across retries, score is redrawn", func(t *testing.T) {
		a := NewActivities(activity.BaseActivities{}, review.NewFixedSource(2, 5))

		first, err := a.ScoreReview(context.Background(), validInput())
		require.NoError(t, err)
		second, err := a.ScoreReview(context.Background(), validInput())
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, uint8(2), first.Score)
		assert.Equal(t, uint8(5), second.Score, "each attempt draws a fresh score")

		other := validInput()
		other.Index = 1
		assert.NotEqual(t, reviewID(validInput()), reviewID(other))
	})

	t.Run("invalid input is non-retryable", func(t *testing.T) {
		a := NewActivities(activity.BaseActivities{}, review.NewFixedSource(3))
		_, err := a.ScoreReview(context.Background(), domain.ScoreReviewInput{})

		var appErr *temporal.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "ScoreReview", appErr.Type())
		assert.True(t, appErr.NonRetryable())
	})

	t.Run("exhausted source is non-retryable", func(t *testing.T) {
		a := NewActivities(activity.BaseActivities{}, review.NewFixedSource())
		_, err := a.ScoreReview(context.Background(), validInput())

		var appErr *temporal.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.NonRetryable())
		assert.ErrorIs(t, err, review.ErrSourceExhausted)
	})

	t.Run("transient source failure is retryable", func(t *testing.T) {
		boom := errors.New("reviewer unavailable")
		src := review.SourceFunc(func(context.Context) (uint8, error) { return 0, boom })
		a := NewActivities(activity.BaseActivities{}, src)

		_, err := a.ScoreReview(context.Background(), validInput())
		require.ErrorIs(t, err, boom)
		var appErr *temporal.ApplicationError
		assert.False(t, errors.As(err, &appErr))
	})

	t.Run("out of range score is non-retryable", func(t *testing.T) {
		src := review.SourceFunc(func(context.Context) (uint8, error) { return 9, nil })
		a := NewActivities(activity.BaseActivities{}, src)

		_, err := a.ScoreReview(context.Background(), validInput())
		var appErr *temporal.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.True(t, appErr.NonRetryable())
	})
}
