package providers

import (
	"context"
	"time"
)

// RetryPolicy controls how rate-limit and server errors are retried. The
// zero value makes a single attempt.
type RetryPolicy struct {
	MaxRetries int
	// BaseDelay doubles after each attempt. Zero means one second.
	BaseDelay time.Duration
}

func (p RetryPolicy) do(ctx context.Context, fn func() error) error {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
		if attempt < p.MaxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(base << uint(attempt)):
			}
		}
	}
	return lastErr
}
