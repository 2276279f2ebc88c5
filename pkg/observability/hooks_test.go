package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	var h Hooks = Noop{}
	h.OnRequest(ctx, "domain", "api.builtwith.com", "/v14/api.json")
	h.OnResponse(ctx, "domain", 200, time.Second)
	h.OnError(ctx, "domain", errors.New("connection refused"))
	h.OnFallback(ctx, "lists", errors.New("invalid character"))
}

type countingHooks struct {
	Noop
	requests int
}

func (c *countingHooks) OnRequest(context.Context, string, string, string) { c.requests++ }

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(Noop); !ok {
		t.Error("OrNoop(nil) should return Noop")
	}

	custom := &countingHooks{}
	got := OrNoop(custom)
	if got != Hooks(custom) {
		t.Error("OrNoop should return a non-nil hooks value unchanged")
	}

	got.OnRequest(context.Background(), "free", "api.builtwith.com", "/free1/api.json")
	got.OnFallback(context.Background(), "free", nil)
	if custom.requests != 1 {
		t.Errorf("requests = %d, want 1", custom.requests)
	}
}
