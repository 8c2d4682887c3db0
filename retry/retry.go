// Package retry runs fallible operations again until they succeed, a retry
// budget runs out or the context ends. Policies come from cenkalti/backoff:
// constant delay by default, exponential on request.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/confectlab/confect/logs"
)

type config struct {
	attempts    uint64
	delay       time.Duration
	exponential bool
	retryIf     func(error) bool
	log         logs.Logger
}

// Option configures a retry run.
type Option func(*config)

// Attempts sets how many times the operation is retried after the first
// failure. The default is 3.
func Attempts(n uint64) Option {
	return func(c *config) { c.attempts = n }
}

// Delay sets the constant wait between tries. The default is one second.
func Delay(d time.Duration) Option {
	return func(c *config) { c.delay = d; c.exponential = false }
}

// Exponential switches to exponential backoff starting at initial.
func Exponential(initial time.Duration) Option {
	return func(c *config) { c.delay = initial; c.exponential = true }
}

// RetryIf restricts retrying to errors the predicate accepts; any other error
// returns immediately.
func RetryIf(f func(error) bool) Option {
	return func(c *config) { c.retryIf = f }
}

// WithLogger logs a warning before each wait.
func WithLogger(log logs.Logger) Option {
	return func(c *config) { c.log = log }
}

func newConfig(opts []Option) *config {
	c := &config{
		attempts: 3,
		delay:    time.Second,
		retryIf:  func(error) bool { return true },
		log:      logs.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do runs op until it succeeds or the retry budget is spent.
func Do(ctx context.Context, op func() error, opts ...Option) error {
	_, err := DoValue(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	}, opts...)
	return err
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, op func() (T, error), opts ...Option) (T, error) {
	cfg := newConfig(opts)

	var policy backoff.BackOff
	if cfg.exponential {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = cfg.delay
		policy = eb
	} else {
		policy = backoff.NewConstantBackOff(cfg.delay)
	}
	policy = backoff.WithContext(backoff.WithMaxRetries(policy, cfg.attempts), ctx)

	attempt := 0
	wrapped := func() (T, error) {
		attempt++
		v, err := op()
		if err != nil && !cfg.retryIf(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}
	notify := func(err error, wait time.Duration) {
		cfg.log.Warnf("retry [%d/%d] in %s: %v", attempt, cfg.attempts+1, wait, err)
	}
	return backoff.RetryNotifyWithData(wrapped, policy, notify)
}
