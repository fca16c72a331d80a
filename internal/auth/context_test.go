package auth

import (
	"context"
	"testing"
)

func TestWithAuthRoundTrip(t *testing.T) {
	ac := AuthContext{Owner: "alice@example.com", Name: "Alice"}
	ctx := WithAuth(context.Background(), ac)

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected auth context")
	}
	if got != ac {
		t.Errorf("got %+v, want %+v", got, ac)
	}
	if Owner(ctx) != "alice@example.com" {
		t.Errorf("Owner = %q", Owner(ctx))
	}
}

func TestEmptyContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := FromContext(ctx); ok {
		t.Error("expected no auth context")
	}
	if Owner(ctx) != "" {
		t.Errorf("Owner = %q, want empty", Owner(ctx))
	}
}
