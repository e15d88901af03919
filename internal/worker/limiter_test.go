package worker

import (
	"context"
	"testing"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Independent key gets its own bucket
	if err := limiter.Wait(ctx, "groq"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PerKeyBuckets(t *testing.T) {
	// 1 rps, burst 1: one token per key
	limiter := NewLimiter(1, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Token consumed for this key
	if limiter.Allow("openai") {
		t.Error("expected allow to fail (exhausted tokens)")
	}

	// Another provider is unaffected
	if !limiter.Allow("groq") {
		t.Error("expected allow for other provider")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(10, 10) // fast default

	// Strict limit for one provider
	limiter.SetRate("cerebras", 0.1, 1)

	if !limiter.Allow("cerebras") {
		t.Error("first request should pass")
	}
	if limiter.Allow("cerebras") {
		t.Error("second request should fail")
	}

	// Other providers still fast
	if !limiter.Allow("openai") {
		t.Error("other provider should pass")
	}
}

func TestLimiter_WaitCancellation(t *testing.T) {
	limiter := NewLimiter(0.01, 1) // effectively one token then a long wait
	ctx, cancel := context.WithCancel(context.Background())

	if err := limiter.Wait(ctx, "openai"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	cancel()
	if err := limiter.Wait(ctx, "openai"); err == nil {
		t.Error("expected error after context cancellation")
	}
}
