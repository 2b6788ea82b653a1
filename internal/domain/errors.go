package domain

import "errors"

// ErrInvalidScore indicates that a review score is outside the accepted range.
var ErrInvalidScore = errors.New("invalid review score")

// ErrInvalidPaper indicates that a paper is missing its identifier or title.
var ErrInvalidPaper = errors.New("invalid paper")

// ErrPaperSealed is returned when a review is added after collection closed.
var ErrPaperSealed = errors.New("paper is sealed for decision")

// ErrInvalidPolicy indicates that the decision policy is malformed.
var ErrInvalidPolicy = errors.New("invalid decision policy")
