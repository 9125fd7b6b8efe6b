package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Defaults used by Do.
const (
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	DefaultMaxDelay = 30 * time.Second
)

type config struct {
	attempts int
	delay    time.Duration
	maxDelay time.Duration
	onRetry  func(attempt int, delay time.Duration, err error)
}

// Option configures Do.
type Option func(*config)

// WithAttempts sets the total number of calls, including the first one.
// Values below one are treated as one.
func WithAttempts(n int) Option {
	return func(c *config) { c.attempts = n }
}

// WithDelay sets the delay before the second attempt.
func WithDelay(d time.Duration) Option {
	return func(c *config) { c.delay = d }
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) { c.maxDelay = d }
}

// OnRetry registers a callback invoked before each wait.
func OnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(c *config) { c.onRetry = fn }
}

// Do calls op until it succeeds. The error of the last attempt is returned
// unchanged, so callers can still inspect it with errors.As. A permanent
// error is unwrapped before it is returned.
func Do(ctx context.Context, op func() error, opts ...Option) error {
	cfg := config{
		attempts: DefaultAttempts,
		delay:    DefaultDelay,
		maxDelay: DefaultMaxDelay,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.attempts < 1 {
		cfg.attempts = 1
	}

	delay := cfg.delay
	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		var perm *PermanentError
		if errors.As(err, &perm) {
			return perm.Err
		}
		if attempt == cfg.attempts {
			return err
		}

		if cfg.onRetry != nil {
			cfg.onRetry(attempt, delay, err)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
		if cfg.maxDelay > 0 && delay > cfg.maxDelay {
			delay = cfg.maxDelay
		}
	}
}

// PermanentError marks an error that retrying cannot fix.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as not retryable. It returns nil for a nil error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var perm *PermanentError
	return errors.As(err, &perm)
}
