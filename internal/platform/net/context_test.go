package net

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestID(ctx); got != "" {
		t.Fatalf("empty context => %q", got)
	}

	ctx = WithRequest(ctx, "req-123")
	if got := RequestID(ctx); got != "req-123" {
		t.Fatalf("round trip => %q", got)
	}

	// empty id leaves the context untouched
	ctx2 := WithRequest(context.Background(), "")
	if got := RequestID(ctx2); got != "" {
		t.Fatalf("empty id => %q", got)
	}
}
