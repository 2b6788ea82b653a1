package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Score bounds for a single review. Reviewers grade on a closed 1-5 scale.
const (
	MinScore uint8 = 1
	MaxScore uint8 = 5

	// AcceptBaseline is the per-review share of the sum-based threshold.
	// A paper passes the sum policy when its total exceeds count × AcceptBaseline.
	AcceptBaseline = 3
)

// Review is one reviewer's judgment of a paper. It has no identity beyond
// its score for decision purposes; ID and ReviewerID exist for event
// correlation only.
type Review struct {
	// ID uniquely identifies this review for event deduplication.
	ID string `json:"id" validate:"required,uuid"`

	// ReviewerID names the worker or activity that produced the score.
	ReviewerID string `json:"reviewer_id" validate:"required"`

	// Score is the bounded 1-5 judgment.
	Score uint8 `json:"score" validate:"min=1,max=5"`

	// SubmittedAt records when the score was drawn.
	SubmittedAt time.Time `json:"submitted_at" validate:"required"`
}

// NewReview creates a review with a random ID and the current time.
// Uses time.Now() which makes it non-deterministic for Temporal workflows;
// use MakeReview there.
func NewReview(reviewerID string, score uint8) (Review, error) {
	return MakeReview(uuid.NewString(), reviewerID, score, time.Now())
}

// MakeReview creates a review from explicit inputs so that workflow replays
// produce identical values.
func MakeReview(id, reviewerID string, score uint8, submittedAt time.Time) (Review, error) {
	r := Review{
		ID:          id,
		ReviewerID:  reviewerID,
		Score:       score,
		SubmittedAt: submittedAt,
	}
	if err := r.Validate(); err != nil {
		return Review{}, err
	}
	return r, nil
}

// Validate checks the review against its struct constraints.
// Range violations wrap ErrInvalidScore so callers can match on it.
func (r *Review) Validate() error {
	if r.Score < MinScore || r.Score > MaxScore {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidScore, r.Score, MinScore, MaxScore)
	}
	return validate.Struct(r)
}

// ValidScore reports whether s is inside the review scale.
func ValidScore(s uint8) bool { return s >= MinScore && s <= MaxScore }
