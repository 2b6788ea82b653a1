package review

import (
	"errors"
	"fmt"
)

var (
	// ErrBoardSealed is returned when a review arrives after collection closed.
	ErrBoardSealed = errors.New("review board is sealed")

	// ErrBoardPoisoned is returned by every append after a panic escaped
	// while the board lock was held.
	ErrBoardPoisoned = errors.New("review board is poisoned")

	// ErrInvalidWorkerCount indicates a negative worker count.
	ErrInvalidWorkerCount = errors.New("worker count must not be negative")

	// ErrSourceExhausted is returned by a FixedSource with no scores left.
	ErrSourceExhausted = errors.New("score source exhausted")
)

// PanicError captures a panic raised inside a review worker.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("review worker panicked: %v", p.Value)
}

// WorkerFailure records a worker that skipped its contribution.
type WorkerFailure struct {
	Worker int
	Err    error
}

func (f WorkerFailure) Error() string {
	return fmt.Sprintf("worker %d: %v", f.Worker, f.Err)
}

func (f WorkerFailure) Unwrap() error { return f.Err }
