package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterCeiling(t *testing.T) {
	const ceiling = 10
	l := NewMemoryLimiter(ceiling, time.Minute)
	ctx := context.Background()

	for i := 1; i <= ceiling; i++ {
		ok, err := l.Allow(ctx, "upload:user-1")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !ok {
			t.Fatalf("call %d of %d unexpectedly rejected", i, ceiling)
		}
	}

	ok, err := l.Allow(ctx, "upload:user-1")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Errorf("call %d should be rejected", ceiling+1)
	}
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	now := time.Unix(1700000000, 0)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		l.Allow(ctx, "pr:user-1")
	}
	if got := l.Count("pr:user-1"); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}

	// past the window the counter starts over at 1
	now = now.Add(61 * time.Second)
	ok, _ := l.Allow(ctx, "pr:user-1")
	if !ok {
		t.Error("first call of new window rejected")
	}
	if got := l.Count("pr:user-1"); got != 1 {
		t.Errorf("count after reset = %d, want 1", got)
	}
}

func TestMemoryLimiterIndependentKeys(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	l.Allow(ctx, "upload:user-1")
	ok, _ := l.Allow(ctx, "upload:user-2")
	if !ok {
		t.Error("distinct identity sharing a counter")
	}
}
