package planner

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy bounds the generation call. It is passed into the pipeline
// rather than hard-coded so retry behavior is testable with a fake client.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, first attempt included.
	MaxAttempts int
	// InitialBackoff is the wait before the first retry; it doubles on each
	// subsequent one.
	InitialBackoff time.Duration
	// Timeout applies per attempt.
	Timeout time.Duration
}

// DefaultRetryPolicy allows two retries with backoff under a 30s per-attempt
// timeout.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		Timeout:        30 * time.Second,
	}
}

// Retryable reports whether another attempt could help: transport failures
// and responses with no usable structure are retried, everything else is not.
func (p RetryPolicy) Retryable(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrUnparsableResponse) ||
		errors.Is(err, ErrGenerationFailed)
}

// Backoff returns the wait before the given retry (1-based).
func (p RetryPolicy) Backoff(retry int) time.Duration {
	d := p.InitialBackoff
	for i := 1; i < retry; i++ {
		d *= 2
	}
	return d
}

// sleep waits for d unless ctx is canceled first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
