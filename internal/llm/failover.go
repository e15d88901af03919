package llm

import (
	"context"
	"fmt"

	"github.com/apex/log"
)

// Failover tries a primary provider and falls back to a secondary on any
// call error. This is a deployment-level reliability choice: correctness
// never depends on it, since downstream degrade paths handle total
// unavailability.
type Failover struct {
	primary   Caller
	secondary Caller
}

// NewFailover creates a failover caller. secondary may be nil.
func NewFailover(primary, secondary Caller) *Failover {
	return &Failover{primary: primary, secondary: secondary}
}

// Name returns the primary provider name
func (f *Failover) Name() string {
	return f.primary.Name()
}

// Call tries the primary provider, then the secondary
func (f *Failover) Call(ctx context.Context, req Request) (string, error) {
	text, err := f.primary.Call(ctx, req)
	if err == nil {
		return text, nil
	}

	if f.secondary == nil {
		return "", err
	}

	log.WithError(err).WithField("provider", f.primary.Name()).
		Warnf("primary provider failed, trying %s", f.secondary.Name())

	text, secErr := f.secondary.Call(ctx, req)
	if secErr != nil {
		return "", fmt.Errorf("primary: %v; secondary: %w", err, secErr)
	}
	return text, nil
}
