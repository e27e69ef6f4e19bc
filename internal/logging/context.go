package logging

import (
	"context"
	"log/slog"

	"dvdenrich/internal/services"
)

const (
	// FieldComponent names the emitting component.
	FieldComponent = "component"
	// FieldRunID identifies one invocation of the batch job.
	FieldRunID = "run_id"
	// FieldRecordKey carries the dkey of the catalog row being processed.
	FieldRecordKey = "dkey"
	// FieldStep names the current per-record step (lookup, update).
	FieldStep = "step"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step for the operator.
	FieldErrorHint = "error_hint"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if key, ok := services.RecordKeyFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldRecordKey, key))
	}
	if step, ok := services.StepFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStep, step))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
