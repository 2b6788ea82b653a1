package review

import (
	"context"
	"math/rand/v2"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ahrav/go-review/internal/domain"
)

// ScoreSource produces one review score per call. Implementations must be
// safe for concurrent use.
type ScoreSource interface {
	Draw(ctx context.Context) (uint8, error)
}

// SourceFunc adapts a function to ScoreSource.
type SourceFunc func(ctx context.Context) (uint8, error)

// Draw implements ScoreSource.
func (f SourceFunc) Draw(ctx context.Context) (uint8, error) { return f(ctx) }

// RandomSource draws scores uniformly from [MinScore, MaxScore].
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a source backed by the runtime's global generator.
func NewRandomSource() *RandomSource { return &RandomSource{} }

// NewSeededRandomSource creates a reproducible source.
func NewSeededRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Draw implements ScoreSource.
func (s *RandomSource) Draw(ctx context.Context) (uint8, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	span := int(domain.MaxScore - domain.MinScore + 1)
	if s.rng == nil {
		return domain.MinScore + uint8(rand.IntN(span)), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.MinScore + uint8(s.rng.IntN(span)), nil
}

// FixedSource hands out a fixed sequence of scores, one per draw, in order
// of arrival. It returns ErrSourceExhausted once the sequence is used up.
type FixedSource struct {
	mu     sync.Mutex
	scores []uint8
	next   int
}

// NewFixedSource creates a source replaying scores.
func NewFixedSource(scores ...uint8) *FixedSource {
	return &FixedSource{scores: scores}
}

// Draw implements ScoreSource.
func (s *FixedSource) Draw(ctx context.Context) (uint8, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.scores) {
		return 0, ErrSourceExhausted
	}
	score := s.scores[s.next]
	s.next++
	return score, nil
}

// ThrottledSource paces draws from an underlying source with a token bucket.
type ThrottledSource struct {
	src     ScoreSource
	limiter *rate.Limiter
}

// NewThrottledSource allows perSecond draws per second with the given burst.
func NewThrottledSource(src ScoreSource, perSecond float64, burst int) *ThrottledSource {
	if burst < 1 {
		burst = 1
	}
	return &ThrottledSource{src: src, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Draw waits for a token and then draws from the wrapped source.
func (t *ThrottledSource) Draw(ctx context.Context) (uint8, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	return t.src.Draw(ctx)
}
