package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/warikan/internal/service"
)

var (
	// ErrRateLimit marks a remote refusal that asks the caller to slow down.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is returned once every attempt has failed.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError overrides the default retry decision for Err.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent marks err as not worth retrying. Nil stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, Retryable: false}
}

// backoff yields the wait before each retry: it grows by factor up to ceiling,
// and a rate limit jumps straight to the ceiling.
type backoff struct {
	next    time.Duration
	ceiling time.Duration
	factor  float64
}

func newBackoff(opts service.RetryOptions) *backoff {
	b := &backoff{next: opts.InitialDelay, ceiling: opts.MaxDelay, factor: opts.Multiplier}
	if b.next <= 0 {
		b.next = 100 * time.Millisecond
	}
	if b.ceiling <= 0 {
		b.ceiling = 30 * time.Second
	}
	if b.factor < 1 {
		b.factor = 2
	}
	return b
}

func (b *backoff) wait(err error) time.Duration {
	if errors.Is(err, ErrRateLimit) {
		b.next = b.ceiling
	}
	d := min(b.next, b.ceiling)
	b.next = min(time.Duration(float64(d)*b.factor), b.ceiling)
	return d
}

// WithRetry runs operation until it succeeds, fails permanently, or has used
// opts.MaxAttempts attempts (3 when unset). The final error wraps both
// ErrMaxRetries and the last failure.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	pause := newBackoff(opts)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = operation(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		d := pause.wait(err)
		slog.Warn("remote call failed, retrying",
			"attempt", attempt,
			"of", attempts,
			"wait", d,
			"error", err)

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempts, err)
}
