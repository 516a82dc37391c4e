package services_test

import (
	"context"
	"testing"

	"sermonpipe/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStep(ctx, "Trim")
	ctx = services.WithKind(ctx, "audio")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if step, ok := services.StepFromContext(ctx); !ok || step != "Trim" {
		t.Fatalf("unexpected step: %v %v", step, ok)
	}
	if kind, ok := services.KindFromContext(ctx); !ok || kind != "audio" {
		t.Fatalf("unexpected kind: %v %v", kind, ok)
	}
}

func TestStepBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStep(ctx, "")
	if _, ok := services.StepFromContext(ctx); ok {
		t.Fatal("expected no step value")
	}
}
