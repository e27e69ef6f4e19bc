package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	recordKeyKey contextKey = "record_key"
	stepKey      contextKey = "step"
)

// WithRunID annotates context with the identifier of the current run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRecordKey annotates context with the dkey of the record being processed.
func WithRecordKey(ctx context.Context, key int64) context.Context {
	return context.WithValue(ctx, recordKeyKey, key)
}

// RecordKeyFromContext extracts the record key if present.
func RecordKeyFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(recordKeyKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithStep annotates context with the lookup step name (search, wikitext, extract).
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the lookup step name if present.
func StepFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(stepKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
