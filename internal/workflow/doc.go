// Package workflow implements the durable review pipeline as a Temporal
// workflow.
//
// The workflow fans out one ScoreReview activity per reviewer, joins every
// one of them, and hands the surviving reviews to DecidePaper. Workflow code
// stays deterministic: score draws, clocks and event emission live in
// activities.
package workflow
