package asc

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Retrier handles retry logic with exponential backoff.
// It is safe for concurrent use by multiple goroutines.
type Retrier struct {
	maxRetries       int
	retryWaitMin     time.Duration
	retryWaitMax     time.Duration
	retryOnRateLimit bool

	// sleep is swapped out in tests for a fake clock.
	sleep func(ctx context.Context, d time.Duration) error
}

func newRetrier(opts *Options) *Retrier {
	return &Retrier{
		maxRetries:       opts.maxRetries,
		retryWaitMin:     opts.retryWaitMin,
		retryWaitMax:     opts.retryWaitMax,
		retryOnRateLimit: opts.retryOnRateLimit,
		sleep:            sleepCtx,
	}
}

// Do executes fn with retry logic. Only idempotent requests are retried;
// a non-idempotent request surfaces its first failure unchanged so a
// mutating call is never replayed. A server-provided retry-after hint
// takes precedence over the computed backoff for that attempt.
func (r *Retrier) Do(ctx context.Context, idempotent bool, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			wait := r.backoff(attempt)
			var rateLimitErr *RateLimitError
			if errors.As(lastErr, &rateLimitErr) && rateLimitErr.RetryAfter > 0 {
				wait = rateLimitErr.RetryAfter
			}
			if err := r.sleep(ctx, wait); err != nil {
				return &TransportError{Err: err}
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !idempotent || !r.shouldRetry(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

func (r *Retrier) shouldRetry(err error) bool {
	// Retry rate limits if enabled
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return r.retryOnRateLimit
	}

	// Retry server errors (5xx)
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return true
	}

	// Retry transport failures unless the caller gave up
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}

	// Auth, request and decode errors are never transient
	return false
}

func (r *Retrier) backoff(attempt int) time.Duration {
	// Cap attempt to prevent overflow
	if attempt > 10 {
		attempt = 10
	}

	// Exponential backoff with jitter
	mult := math.Pow(2, float64(attempt))
	wait := time.Duration(mult) * r.retryWaitMin

	// Add jitter (0-100% of retryWaitMin) - using math/rand/v2 (goroutine-safe)
	jitter := time.Duration(rand.Int63n(int64(r.retryWaitMin)))
	wait += jitter

	if wait > r.retryWaitMax {
		wait = r.retryWaitMax
	}

	return wait
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
