package net_test

import (
	"context"
	"testing"

	pnet "paysplit/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.SessionID(ctx); got != "" {
			t.Fatalf("SessionID got %q want empty", got)
		}
	})

	t.Run("sets session id", func(t *testing.T) {
		ctx := pnet.WithSession(pnet.WithRequest(base, "r-1"), "sess-9")
		if got := pnet.SessionID(ctx); got != "sess-9" {
			t.Fatalf("SessionID got %q want %q", got, "sess-9")
		}
		if got := pnet.RequestID(ctx); got != "r-1" {
			t.Fatalf("RequestID got %q want %q", got, "r-1")
		}
	})

	t.Run("empty ids return same ctx", func(t *testing.T) {
		ctx := pnet.WithSession(pnet.WithRequest(base, ""), "")
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when ids are empty")
		}
		if pnet.RequestID(ctx) != "" || pnet.SessionID(ctx) != "" {
			t.Fatalf("expected empty getters")
		}
	})
}
