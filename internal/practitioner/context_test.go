package practitioner

import (
	"context"
	"testing"
)

func TestWithIDAndFromContext(t *testing.T) {
	ctx := WithID(context.Background(), "prac-123")

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatalf("expected practitioner id to be present")
	}
	if got != "prac-123" {
		t.Fatalf("expected prac-123, got %s", got)
	}
}

func TestFromContext_EmptyOrMissing(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Fatalf("expected missing practitioner id to return false")
	}

	ctx = context.WithValue(ctx, idKey, 42)
	if _, ok := FromContext(ctx); ok {
		t.Fatalf("expected non-string practitioner id to return false")
	}

	ctx = WithID(context.Background(), "")
	if _, ok := FromContext(ctx); ok {
		t.Fatalf("expected empty practitioner id to return false")
	}
}
