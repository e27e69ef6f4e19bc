package services_test

import (
	"context"
	"testing"

	"dvdenrich/internal/services"
)

func TestContextHelpersRoundTrip(t *testing.T) {
	ctx := context.Background()
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id on empty context")
	}
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithRecordKey(ctx, 42)
	ctx = services.WithStep(ctx, "search")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id %q (ok=%v)", id, ok)
	}
	if key, ok := services.RecordKeyFromContext(ctx); !ok || key != 42 {
		t.Fatalf("unexpected record key %d (ok=%v)", key, ok)
	}
	if step, ok := services.StepFromContext(ctx); !ok || step != "search" {
		t.Fatalf("unexpected step %q (ok=%v)", step, ok)
	}
}

func TestEmptyValuesLeaveContextUntouched(t *testing.T) {
	ctx := context.Background()
	if services.WithRunID(ctx, "") != ctx {
		t.Fatal("expected empty run id to return original context")
	}
	if services.WithStep(ctx, "") != ctx {
		t.Fatal("expected empty step to return original context")
	}
}
