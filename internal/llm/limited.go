package llm

import (
	"context"
	"fmt"

	"github.com/claimwise/claimwise/internal/worker"
)

// LimitedCaller wraps a Caller with per-provider rate limiting so batch
// runs stay inside hosted API quotas.
type LimitedCaller struct {
	inner   Caller
	limiter *worker.Limiter
}

// NewLimitedCaller wraps caller with the given limiter
func NewLimitedCaller(caller Caller, limiter *worker.Limiter) *LimitedCaller {
	return &LimitedCaller{inner: caller, limiter: limiter}
}

// Name returns the wrapped provider name
func (c *LimitedCaller) Name() string {
	return c.inner.Name()
}

// Call waits for rate limit clearance before delegating
func (c *LimitedCaller) Call(ctx context.Context, req Request) (string, error) {
	if err := c.limiter.Wait(ctx, c.inner.Name()); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return c.inner.Call(ctx, req)
}
