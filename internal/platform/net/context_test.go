package net_test

import (
	"context"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	pnet "observafloresta/internal/platform/net"
)

func TestWithRequestID(t *testing.T) {
	base := context.Background()

	t.Run("sets id", func(t *testing.T) {
		ctx := pnet.WithRequestID(base, "req-123")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := chimw.GetReqID(ctx); got != "req-123" {
			t.Fatalf("chi GetReqID got %q", got)
		}
	})

	t.Run("empty id keeps ctx", func(t *testing.T) {
		ctx := pnet.WithRequestID(base, "")
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged for an empty id")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})
}
