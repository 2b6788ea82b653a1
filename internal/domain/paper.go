// Package domain defines the paper review model: papers, the reviews they
// collect, and the decision policy that turns collected scores into an
// accept or reject verdict.
//
// Lifecycle:
//   - NewPaper creates an empty submission.
//   - AddReview appends one review; the collection only ever grows.
//   - Seal closes collection; the reviews become read-only.
//   - Decide consumes the sealed paper and produces a Decision.
//
// Paper is not safe for concurrent use. Concurrent collection goes through
// review.Board, which serializes every append behind one lock, or through a
// single collector goroutine fed by a channel.
package domain

import (
	"fmt"
	"slices"
)

// Paper is a submission under review.
type Paper struct {
	id      uint32
	title   string
	reviews []Review
	sealed  bool
}

// NewPaper creates an empty paper. The ID and title cannot change afterwards.
func NewPaper(id uint32, title string) (*Paper, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: id must be non-zero", ErrInvalidPaper)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidPaper)
	}
	return &Paper{id: id, title: title}, nil
}

// ID returns the submission number.
func (p *Paper) ID() uint32 { return p.id }

// Title returns the submission title.
func (p *Paper) Title() string { return p.title }

// AddReview appends exactly one review. It fails once the paper is sealed
// or when the review does not validate.
func (p *Paper) AddReview(r Review) error {
	if p.sealed {
		return ErrPaperSealed
	}
	if err := r.Validate(); err != nil {
		return err
	}
	p.reviews = append(p.reviews, r)
	return nil
}

// Len returns the number of collected reviews.
func (p *Paper) Len() int { return len(p.reviews) }

// Reviews returns a copy of the collected reviews in append order.
func (p *Paper) Reviews() []Review { return slices.Clone(p.reviews) }

// Scores returns the collected scores in append order.
func (p *Paper) Scores() []uint8 {
	scores := make([]uint8, len(p.reviews))
	for i, r := range p.reviews {
		scores[i] = r.Score
	}
	return scores
}

// Seal closes the collection phase. Sealing twice is a no-op.
func (p *Paper) Seal() { p.sealed = true }

// Sealed reports whether the collection phase is over.
func (p *Paper) Sealed() bool { return p.sealed }
