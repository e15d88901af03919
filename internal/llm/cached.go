package llm

import (
	"context"
	"time"

	"github.com/claimwise/claimwise/internal/cache"
)

// CachedCaller wraps a Caller with a response cache. Identical prompts to
// the same provider/model are served from cache; only successful responses
// are stored. With zero-temperature decoding a cached response is as good
// as a fresh one.
type CachedCaller struct {
	inner Caller
	cache cache.Cache
	model string
	ttl   time.Duration
}

// NewCachedCaller wraps caller with the given cache
func NewCachedCaller(caller Caller, c cache.Cache, model string, ttl time.Duration) *CachedCaller {
	return &CachedCaller{
		inner: caller,
		cache: c,
		model: model,
		ttl:   ttl,
	}
}

// Name returns the wrapped provider name
func (c *CachedCaller) Name() string {
	return c.inner.Name()
}

// Call serves from cache when possible, otherwise delegates and stores
func (c *CachedCaller) Call(ctx context.Context, req Request) (string, error) {
	key := cache.Key(c.inner.Name(), c.model, req.System+"\x00"+req.Prompt)

	if val, found := c.cache.Get(key); found {
		return string(val), nil
	}

	text, err := c.inner.Call(ctx, req)
	if err != nil {
		return "", err
	}

	_ = c.cache.Set(key, []byte(text), c.ttl)
	return text, nil
}
