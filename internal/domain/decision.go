package domain

import "fmt"

// DecisionMethod selects how collected scores are compared to the threshold.
type DecisionMethod string

const (
	// DecisionMethodMean accepts when the arithmetic mean exceeds the cutoff.
	DecisionMethodMean DecisionMethod = "mean"

	// DecisionMethodSum accepts when the score total exceeds count × AcceptBaseline.
	DecisionMethodSum DecisionMethod = "sum"
)

// String returns the string representation of the decision method.
func (m DecisionMethod) String() string { return string(m) }

// DefaultCutoff is the mean a paper must strictly exceed to be accepted.
const DefaultCutoff = 3.0

// DecisionPolicy defines how a paper's scores become a verdict.
// The mean and sum methods agree only when Cutoff equals AcceptBaseline.
type DecisionPolicy struct {
	// Method specifies the comparison to use.
	Method DecisionMethod `json:"method" validate:"required,oneof=mean sum"`

	// Cutoff is the exclusive lower bound on the mean.
	// Ignored by the sum method, which may leave it zero.
	Cutoff float64 `json:"cutoff" validate:"required_if=Method mean,omitempty,min=1,max=5"`
}

// DefaultDecisionPolicy returns the mean policy with a 3.0 cutoff.
func DefaultDecisionPolicy() DecisionPolicy {
	return DecisionPolicy{Method: DecisionMethodMean, Cutoff: DefaultCutoff}
}

// Validate checks the policy against its struct constraints.
func (p *DecisionPolicy) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	return nil
}

// Outcome is the classification produced by the decision step.
type Outcome string

const (
	// OutcomeAccepted means the scores cleared the threshold.
	OutcomeAccepted Outcome = "accepted"

	// OutcomeRejected means the scores did not clear the threshold.
	OutcomeRejected Outcome = "rejected"

	// OutcomeInsufficientReviews means no scores were collected, so no
	// average exists to compare.
	OutcomeInsufficientReviews Outcome = "insufficient_reviews"
)

// Decision is the result of evaluating one paper.
type Decision struct {
	PaperID     uint32         `json:"paper_id"`
	Title       string         `json:"title"`
	Outcome     Outcome        `json:"outcome"`
	Method      DecisionMethod `json:"method"`
	ReviewCount int            `json:"review_count"`
	Sum         int            `json:"sum"`
	Mean        float64        `json:"mean"`
	Threshold   float64        `json:"threshold"`
	Scores      []uint8        `json:"scores"`
}

// Accepted reports whether the paper was accepted.
func (d Decision) Accepted() bool { return d.Outcome == OutcomeAccepted }

// Decide seals the paper and classifies its scores under the policy.
// The result depends only on the multiset of scores, never their order.
// A paper without reviews yields OutcomeInsufficientReviews.
func Decide(paper *Paper, policy DecisionPolicy) (Decision, error) {
	if paper == nil {
		return Decision{}, fmt.Errorf("%w: nil paper", ErrInvalidPaper)
	}
	if err := policy.Validate(); err != nil {
		return Decision{}, err
	}

	paper.Seal()
	scores := paper.Scores()

	d := Decision{
		PaperID:     paper.ID(),
		Title:       paper.Title(),
		Method:      policy.Method,
		ReviewCount: len(scores),
		Scores:      scores,
	}

	if len(scores) == 0 {
		d.Outcome = OutcomeInsufficientReviews
		return d, nil
	}

	for _, s := range scores {
		d.Sum += int(s)
	}
	d.Mean = float64(d.Sum) / float64(len(scores))

	var accepted bool
	switch policy.Method {
	case DecisionMethodMean:
		d.Threshold = policy.Cutoff
		accepted = d.Mean > policy.Cutoff
	case DecisionMethodSum:
		d.Threshold = float64(len(scores) * AcceptBaseline)
		accepted = d.Sum > len(scores)*AcceptBaseline
	}

	if accepted {
		d.Outcome = OutcomeAccepted
	} else {
		d.Outcome = OutcomeRejected
	}
	return d, nil
}
