package review

import (
	"sync"

	"github.com/ahrav/go-review/internal/domain"
)

// AppendHook observes a review under the board lock just before it is
// committed at position index. A panicking hook poisons the board.
type AppendHook func(index int, r domain.Review)

// Board is the lock-guarded review collection shared by concurrent workers.
// Every access to the underlying paper goes through the board's mutex.
type Board struct {
	mu       sync.Mutex
	paper    *domain.Paper
	poisoned bool
	hook     AppendHook
}

// BoardOption customizes a Board.
type BoardOption func(*Board)

// WithAppendHook installs a hook run under the lock for every append.
func WithAppendHook(hook AppendHook) BoardOption {
	return func(b *Board) { b.hook = hook }
}

// NewBoard guards paper. The caller must not touch paper directly until
// every worker sharing the board has finished.
func NewBoard(paper *domain.Paper, opts ...BoardOption) *Board {
	b := &Board{paper: paper}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Append commits one review and returns its position.
//
// If the hook panics, the review is not committed, the board is marked
// poisoned, the lock is released and the panic continues to the caller.
// From then on Append returns ErrBoardPoisoned.
func (b *Board) Append(r domain.Review) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.poisoned {
		return 0, ErrBoardPoisoned
	}
	if b.paper.Sealed() {
		return 0, ErrBoardSealed
	}

	index := b.paper.Len()
	if b.hook != nil {
		b.runHook(index, r)
	}
	if err := b.paper.AddReview(r); err != nil {
		return 0, err
	}
	return index, nil
}

func (b *Board) runHook(index int, r domain.Review) {
	defer func() {
		if v := recover(); v != nil {
			b.poisoned = true
			panic(v)
		}
	}()
	b.hook(index, r)
}

// Len returns the number of committed reviews.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paper.Len()
}

// Snapshot returns a copy of the committed reviews.
func (b *Board) Snapshot() []domain.Review {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paper.Reviews()
}

// Poisoned reports whether a hook panicked while holding the lock.
func (b *Board) Poisoned() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.poisoned
}

// Seal closes the board and the paper behind it for further appends.
func (b *Board) Seal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paper.Seal()
}
