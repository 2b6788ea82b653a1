// Package activity provides common infrastructure for all Temporal activity implementations.
// It includes base types, context extraction, safe logging, and event emission utilities
// that are shared across all domain-specific activity packages.
package activity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"github.com/ahrav/go-review/pkg/events"
)

// WorkflowContext contains metadata extracted from the Temporal activity context.
// Outside an activity it carries generated test identifiers.
type WorkflowContext struct {
	WorkflowID string
	RunID      string
	ActivityID string
	Attempt    int32
}

// BaseActivities provides common infrastructure for all activity types.
// It handles event emission, context extraction, and safe logging in a way
// that works both in Temporal activity contexts and test environments.
type BaseActivities struct {
	emitter *events.Emitter
}

// NewBaseActivities creates a new BaseActivities instance with the provided event sink.
// The event sink can be nil for testing scenarios where event emission is not needed.
func NewBaseActivities(sink events.EventSink) BaseActivities {
	if sink == nil {
		return BaseActivities{}
	}
	return BaseActivities{emitter: events.NewEmitter(sink)}
}

// GetWorkflowContext safely extracts workflow context from the activity context.
// In test contexts (where activity.GetInfo would panic), it generates test IDs.
func (b *BaseActivities) GetWorkflowContext(ctx context.Context) WorkflowContext {
	var wfCtx WorkflowContext

	func() {
		defer func() {
			if r := recover(); r != nil {
				wfCtx.WorkflowID = "test-workflow"
				wfCtx.RunID = "test-run-" + uuid.New().String()[:8]
				wfCtx.ActivityID = "test-activity"
				wfCtx.Attempt = 1
			}
		}()

		info := activity.GetInfo(ctx)
		wfCtx.WorkflowID = info.WorkflowExecution.ID
		wfCtx.RunID = info.WorkflowExecution.RunID
		wfCtx.ActivityID = info.ActivityID
		wfCtx.Attempt = info.Attempt
	}()

	return wfCtx
}

// EmitEventSafe provides best-effort event emission with a short retry.
// Failures are logged and never propagated to the activity.
func (b *BaseActivities) EmitEventSafe(ctx context.Context, envelope events.Envelope) {
	if b.emitter == nil {
		return
	}
	b.emitter.Emit(ctx, envelope)
}

// RecordHeartbeat safely records a heartbeat in the Temporal activity context.
// This method is safe to call in non-activity contexts where it will be ignored.
func (b *BaseActivities) RecordHeartbeat(ctx context.Context, details ...any) {
	defer func() { _ = recover() }()
	activity.RecordHeartbeat(ctx, details...)
}

// SafeLog logs through the activity logger when ctx belongs to an activity
// and through slog otherwise.
func SafeLog(ctx context.Context, msg string, keyvals ...any) {
	if logger, ok := activityLogger(ctx); ok {
		logger.Info(msg, keyvals...)
		return
	}
	slog.InfoContext(ctx, msg, keyvals...)
}

// SafeLogError is SafeLog at error level.
func SafeLogError(ctx context.Context, msg string, keyvals ...any) {
	if logger, ok := activityLogger(ctx); ok {
		logger.Error(msg, keyvals...)
		return
	}
	slog.ErrorContext(ctx, msg, keyvals...)
}

type infoErrorLogger interface {
	Info(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

func activityLogger(ctx context.Context) (logger infoErrorLogger, ok bool) {
	defer func() {
		if recover() != nil {
			logger, ok = nil, false
		}
	}()
	return activity.GetLogger(ctx), true
}
