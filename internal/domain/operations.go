package domain

// ReviewRequest starts the durable review pipeline for one paper.
type ReviewRequest struct {
	PaperID uint32 `json:"paper_id" validate:"required"`
	Title   string `json:"title" validate:"required,max=512"`

	// NumReviewers is the number of score activities fanned out.
	// Zero is allowed and ends in OutcomeInsufficientReviews.
	NumReviewers int `json:"num_reviewers" validate:"min=0,max=64"`

	Policy DecisionPolicy `json:"policy"`

	// ActivityTimeoutSeconds bounds each activity; zero selects the default.
	ActivityTimeoutSeconds int `json:"activity_timeout_seconds" validate:"min=0"`

	// ClientIdempotencyKey seeds deterministic review and event identifiers.
	ClientIdempotencyKey string `json:"client_idempotency_key" validate:"required"`
}

// Validate checks the request and its policy.
func (r *ReviewRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return r.Policy.Validate()
}

// ScoreReviewInput asks one reviewer for one score.
type ScoreReviewInput struct {
	PaperID              uint32 `json:"paper_id" validate:"required"`
	ReviewerID           string `json:"reviewer_id" validate:"required"`
	Index                int    `json:"index" validate:"min=0"`
	ClientIdempotencyKey string `json:"client_idempotency_key" validate:"required"`
}

// Validate checks the input against its struct constraints.
func (s *ScoreReviewInput) Validate() error { return validate.Struct(s) }

// DecidePaperInput carries the collected reviews to the decision step.
type DecidePaperInput struct {
	PaperID              uint32         `json:"paper_id" validate:"required"`
	Title                string         `json:"title" validate:"required"`
	Reviews              []Review       `json:"reviews" validate:"dive"`
	Policy               DecisionPolicy `json:"policy"`
	ClientIdempotencyKey string         `json:"client_idempotency_key" validate:"required"`
}

// Validate checks the input and its policy.
func (d *DecidePaperInput) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}
	return d.Policy.Validate()
}
