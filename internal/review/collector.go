// Package review collects review scores for a paper, either one call at a
// time or from a fixed pool of concurrent workers. Collection is scoped:
// Collect returns only after every worker it started has finished, so the
// decision step always sees the complete collection.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-review/internal/domain"
	"github.com/ahrav/go-review/pkg/events"
)

// Strategy selects how concurrent workers hand their scores to the paper.
type Strategy string

const (
	// StrategyLocked has every worker append to a shared Board under its mutex.
	StrategyLocked Strategy = "locked"

	// StrategyChannel has workers send scores on a channel drained by a
	// single collector goroutine, which is the only writer of the paper.
	StrategyChannel Strategy = "channel"
)

const producerCollector = "review.collector"

// CollectResult summarizes one Collect call.
type CollectResult struct {
	// Requested is the number of workers started.
	Requested int
	// Collected is the number of reviews committed by this call.
	Collected int
	// Failures lists workers that skipped their contribution, by worker index.
	Failures []WorkerFailure
}

// Collector runs review workers against a ScoreSource.
type Collector struct {
	source   ScoreSource
	strategy Strategy
	limit    int
	hook     AppendHook
	logger   *slog.Logger
	emitter  *events.Emitter
}

// Option customizes a Collector.
type Option func(*Collector)

// WithStrategy selects the hand-off strategy. Defaults to StrategyChannel.
func WithStrategy(s Strategy) Option {
	return func(c *Collector) { c.strategy = s }
}

// WithConcurrency caps the number of workers running at once.
// Zero or negative means one goroutine per worker.
func WithConcurrency(limit int) Option {
	return func(c *Collector) { c.limit = limit }
}

// WithHook installs an AppendHook run for every committed review.
func WithHook(hook AppendHook) Option {
	return func(c *Collector) { c.hook = hook }
}

// WithLogger sets the logger used for worker failure reports.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEmitter enables ReviewSubmitted events for committed reviews.
func WithEmitter(e *events.Emitter) Option {
	return func(c *Collector) { c.emitter = e }
}

// NewCollector creates a collector drawing from source.
func NewCollector(source ScoreSource, opts ...Option) *Collector {
	c := &Collector{
		source:   source,
		strategy: StrategyChannel,
		logger:   slog.Default().With("component", "review"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddReview is the sequential path: it draws one score and appends it to
// paper on the calling goroutine.
func (c *Collector) AddReview(ctx context.Context, paper *domain.Paper, reviewerID string) (domain.Review, error) {
	score, err := c.source.Draw(ctx)
	if err != nil {
		return domain.Review{}, fmt.Errorf("draw score: %w", err)
	}
	r, err := domain.NewReview(reviewerID, score)
	if err != nil {
		return domain.Review{}, err
	}
	if err := paper.AddReview(r); err != nil {
		return domain.Review{}, err
	}
	return r, nil
}

// Collect starts n workers, each contributing at most one review to paper,
// and waits for all of them. A worker that cannot contribute is logged and
// recorded in the result; it never aborts its siblings or the caller.
// Without failures the paper gains exactly n reviews, whatever the order in
// which workers finish.
func (c *Collector) Collect(ctx context.Context, paper *domain.Paper, n int) (CollectResult, error) {
	if paper == nil {
		return CollectResult{}, fmt.Errorf("%w: nil paper", domain.ErrInvalidPaper)
	}
	if n < 0 {
		return CollectResult{}, ErrInvalidWorkerCount
	}
	if paper.Sealed() {
		return CollectResult{}, ErrBoardSealed
	}

	start := paper.Len()
	rec := &failureRecorder{}

	switch c.strategy {
	case StrategyLocked:
		c.collectLocked(ctx, paper, n, rec)
	case StrategyChannel, "":
		c.collectChannel(ctx, paper, n, rec)
	default:
		return CollectResult{}, fmt.Errorf("unknown collection strategy %q", c.strategy)
	}

	result := CollectResult{
		Requested: n,
		Collected: paper.Len() - start,
		Failures:  rec.sorted(),
	}
	for _, f := range result.Failures {
		c.logger.WarnContext(ctx, "cannot add review",
			"paper_id", paper.ID(),
			"worker", f.Worker,
			"error", f.Err)
	}

	c.emitSubmitted(ctx, paper, start)
	return result, nil
}

func (c *Collector) collectLocked(ctx context.Context, paper *domain.Paper, n int, rec *failureRecorder) {
	board := NewBoard(paper, WithAppendHook(c.hook))

	var g errgroup.Group
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	for i := range n {
		g.Go(func() error {
			err := c.work(ctx, i, func(r domain.Review) error {
				_, err := board.Append(r)
				return err
			})
			if err != nil {
				rec.add(i, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

type submission struct {
	worker int
	review domain.Review
}

func (c *Collector) collectChannel(ctx context.Context, paper *domain.Paper, n int, rec *failureRecorder) {
	results := make(chan submission)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for s := range results {
			if err := c.commit(paper, s.review); err != nil {
				rec.add(s.worker, err)
			}
		}
	}()

	var g errgroup.Group
	if c.limit > 0 {
		g.SetLimit(c.limit)
	}
	for i := range n {
		g.Go(func() error {
			err := c.work(ctx, i, func(r domain.Review) error {
				results <- submission{worker: i, review: r}
				return nil
			})
			if err != nil {
				rec.add(i, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	<-done
}

// commit is the single-writer path of the channel strategy. A panicking
// hook costs only the review that triggered it.
func (c *Collector) commit(paper *domain.Paper, r domain.Review) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	if c.hook != nil {
		c.hook(paper.Len(), r)
	}
	return paper.AddReview(r)
}

// work draws a score and hands the review to deliver. Panics are turned
// into *PanicError so one misbehaving worker cannot crash the process.
func (c *Collector) work(ctx context.Context, worker int, deliver func(domain.Review) error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()

	score, err := c.source.Draw(ctx)
	if err != nil {
		return fmt.Errorf("draw score: %w", err)
	}
	r, err := domain.NewReview(fmt.Sprintf("reviewer-%d", worker+1), score)
	if err != nil {
		return err
	}
	return deliver(r)
}

func (c *Collector) emitSubmitted(ctx context.Context, paper *domain.Paper, start int) {
	if c.emitter == nil {
		return
	}
	clientKey := uuid.NewString()
	ec := domain.EventContext{Producer: producerCollector}
	for i, r := range paper.Reviews()[start:] {
		env, err := domain.NewReviewSubmittedEvent(ec, paper.ID(), r, clientKey, start+i)
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to build ReviewSubmitted event",
				"review_id", r.ID,
				"error", err)
			continue
		}
		c.emitter.Emit(ctx, env.Envelope())
	}
}

type failureRecorder struct {
	mu       sync.Mutex
	failures []WorkerFailure
}

func (f *failureRecorder) add(worker int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, WorkerFailure{Worker: worker, Err: err})
}

func (f *failureRecorder) sorted() []WorkerFailure {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.failures)
	slices.SortFunc(out, func(a, b WorkerFailure) int { return a.Worker - b.Worker })
	return out
}
