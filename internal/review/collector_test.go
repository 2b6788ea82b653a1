package review

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/pkg/events"
)

var strategies = []Strategy{StrategyLocked, StrategyChannel}

// TestCollect_CollectsExactlyN verifies no lost updates under either strategy.
// Run with: go test -race -run TestCollect_CollectsExactlyN
func TestCollect_CollectsExactlyN(t *testing.T) {
	for _, strategy := range strategies {
		for _, n := range []int{0, 1, 3, 50} {
			t.Run(string(strategy), func(t *testing.T) {
				paper := newTestPaper(t)
				c := NewCollector(NewSeededRandomSource(1), WithStrategy(strategy))

				res, err := c.Collect(context.Background(), paper, n)
				require.NoError(t, err)

				assert.Equal(t, n, res.Requested)
				assert.Equal(t, n, res.Collected)
				assert.Empty(t, res.Failures)
				assert.Equal(t, n, paper.Len())
				for _, s := range paper.Scores() {
					assert.True(t, domain.ValidScore(s))
				}
			})
		}
	}
}

func TestCollect_OrderDoesNotAffectDecision(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			paper := newTestPaper(t)
			c := NewCollector(NewFixedSource(4, 4, 4), WithStrategy(strategy))

			_, err := c.Collect(context.Background(), paper, 3)
			require.NoError(t, err)

			d, err := domain.Decide(paper, domain.DecisionPolicy{Method: domain.DecisionMethodSum, Cutoff: 3})
			require.NoError(t, err)
			assert.Equal(t, domain.OutcomeAccepted, d.Outcome)
			assert.ElementsMatch(t, []uint8{4, 4, 4}, d.Scores)
		})
	}
}

func TestCollect_ConcurrencyLimit(t *testing.T) {
	var running, peak atomic.Int32
	src := SourceFunc(func(context.Context) (uint8, error) {
		cur := running.Add(1)
		defer running.Add(-1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		return 3, nil
	})

	paper := newTestPaper(t)
	c := NewCollector(src, WithConcurrency(2), WithStrategy(StrategyLocked))
	res, err := c.Collect(context.Background(), paper, 20)
	require.NoError(t, err)

	assert.Equal(t, 20, res.Collected)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestCollect_FailingWorkersAreSkipped(t *testing.T) {
	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			paper := newTestPaper(t)
			c := NewCollector(NewFixedSource(5, 5), WithStrategy(strategy))

			res, err := c.Collect(context.Background(), paper, 4)
			require.NoError(t, err)

			assert.Equal(t, 4, res.Requested)
			assert.Equal(t, 2, res.Collected)
			require.Len(t, res.Failures, 2)
			for _, f := range res.Failures {
				assert.ErrorIs(t, f, ErrSourceExhausted)
			}
			assert.Equal(t, 2, paper.Len())
		})
	}
}

func TestCollect_PanickingSourceDoesNotCrash(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func(context.Context) (uint8, error) {
		if calls.Add(1) == 2 {
			panic("reviewer crashed")
		}
		return 4, nil
	})

	for _, strategy := range strategies {
		t.Run(string(strategy), func(t *testing.T) {
			calls.Store(0)
			paper := newTestPaper(t)
			c := NewCollector(src, WithStrategy(strategy))

			res, err := c.Collect(context.Background(), paper, 3)
			require.NoError(t, err)

			assert.Equal(t, 2, res.Collected)
			require.Len(t, res.Failures, 1)
			var pe *PanicError
			require.ErrorAs(t, res.Failures[0], &pe)
			assert.Equal(t, "reviewer crashed", pe.Value)
			assert.NotEmpty(t, pe.Stack)
		})
	}
}

func TestCollect_PoisonedBoardSkipsLaterWorkers(t *testing.T) {
	var poisoned atomic.Bool
	hook := func(int, domain.Review) {
		if poisoned.CompareAndSwap(false, true) {
			panic("observer failure")
		}
	}

	paper := newTestPaper(t)
	c := NewCollector(NewSeededRandomSource(3), WithStrategy(StrategyLocked), WithHook(hook))

	res, err := c.Collect(context.Background(), paper, 5)
	require.NoError(t, err)

	assert.Zero(t, res.Collected, "first append poisons, every later append is refused")
	require.Len(t, res.Failures, 5)

	var panics, refused int
	for _, f := range res.Failures {
		var pe *PanicError
		switch {
		case errors.As(f, &pe):
			panics++
		case errors.Is(f, ErrBoardPoisoned):
			refused++
		}
	}
	assert.Equal(t, 1, panics)
	assert.Equal(t, 4, refused)
}

func TestCollect_ChannelHookPanicCostsOneReview(t *testing.T) {
	var fired atomic.Bool
	hook := func(int, domain.Review) {
		if fired.CompareAndSwap(false, true) {
			panic("observer failure")
		}
	}

	paper := newTestPaper(t)
	c := NewCollector(NewSeededRandomSource(3), WithStrategy(StrategyChannel), WithHook(hook))

	res, err := c.Collect(context.Background(), paper, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Collected)
	assert.Len(t, res.Failures, 1)
}

func TestCollect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paper := newTestPaper(t)
	res, err := NewCollector(NewRandomSource()).Collect(ctx, paper, 3)
	require.NoError(t, err)
	assert.Zero(t, res.Collected)
	assert.Len(t, res.Failures, 3)
	for _, f := range res.Failures {
		assert.ErrorIs(t, f, context.Canceled)
	}
}

func TestCollect_InvalidArguments(t *testing.T) {
	c := NewCollector(NewRandomSource())
	ctx := context.Background()

	_, err := c.Collect(ctx, nil, 1)
	require.ErrorIs(t, err, domain.ErrInvalidPaper)

	_, err = c.Collect(ctx, newTestPaper(t), -1)
	require.ErrorIs(t, err, ErrInvalidWorkerCount)

	sealed := newTestPaper(t)
	sealed.Seal()
	_, err = c.Collect(ctx, sealed, 1)
	require.ErrorIs(t, err, ErrBoardSealed)

	_, err = NewCollector(NewRandomSource(), WithStrategy("unsafe")).Collect(ctx, newTestPaper(t), 1)
	require.Error(t, err)
}

func TestCollect_EmitsReviewSubmitted(t *testing.T) {
	sink := events.NewMemorySink()
	paper := newTestPaper(t)
	c := NewCollector(NewFixedSource(1, 2, 3), WithEmitter(events.NewEmitter(sink)))

	_, err := c.Collect(context.Background(), paper, 3)
	require.NoError(t, err)

	emitted := sink.ByType(string(domain.EventTypeReviewSubmitted))
	require.Len(t, emitted, 3)
	for _, e := range emitted {
		assert.Equal(t, "574", e.Subject)
		assert.Equal(t, producerCollector, e.Source)
	}
}

func TestAddReview_Sequential(t *testing.T) {
	paper := newTestPaper(t)
	c := NewCollector(NewFixedSource(2, 4))
	ctx := context.Background()

	_, err := c.AddReview(ctx, paper, "a")
	require.NoError(t, err)
	_, err = c.AddReview(ctx, paper, "b")
	require.NoError(t, err)
	_, err = c.AddReview(ctx, paper, "c")
	require.ErrorIs(t, err, ErrSourceExhausted)

	d, err := domain.Decide(paper, domain.DefaultDecisionPolicy())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, d.Outcome)
	assert.Equal(t, []uint8{2, 4}, d.Scores)
}
