package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. [Backoff] retries only these.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is marked transient.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff runs an operation up to Attempts times, doubling the pause after
// each transient failure starting at Initial.
type Backoff struct {
	Initial  time.Duration
	Attempts int
}

// Do calls fn until it succeeds, fails permanently or runs out of attempts.
// The returned error never carries the [RetryableError] marker.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Initial

	for i := 1; ; i++ {
		err := fn()
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts {
			return re.Err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

// RetryWithBackoff is Backoff{Initial: initial, Attempts: 3}.Do.
func RetryWithBackoff(ctx context.Context, initial time.Duration, fn func() error) error {
	return Backoff{Initial: initial, Attempts: 3}.Do(ctx, fn)
}
