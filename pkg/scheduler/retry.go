package scheduler

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultAttempts     = 3
	defaultInitialRetry = 200 * time.Millisecond
	defaultMaxRetry     = 5 * time.Second
)

// RetryPolicy describes how many times and how often a work is retried.
// Zero values are replaced by the defaults.
type RetryPolicy struct {
	Attempts uint
	Initial  time.Duration
	Max      time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: defaultAttempts,
		Initial:  defaultInitialRetry,
		Max:      defaultMaxRetry,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	d := DefaultRetryPolicy()
	if p.Attempts == 0 {
		p.Attempts = d.Attempts
	}
	if p.Initial <= 0 {
		p.Initial = d.Initial
	}
	if p.Max <= 0 {
		p.Max = d.Max
	}
	if p.Max < p.Initial {
		p.Max = p.Initial
	}
	return p
}

// Retry wraps work so that failed attempts are retried with exponential
// backoff. Errors wrapped with Permanent stop the retries immediately.
// The last error is returned once attempts are exhausted.
func Retry[T any](work Work[T], policy RetryPolicy, opts ...Option) Work[T] {
	policy = policy.withDefaults()
	log := newOptions(opts).logger.Named("retry")

	return func(ctx context.Context) (T, error) {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = policy.Initial
		b.MaxInterval = policy.Max

		attempt := 0
		return backoff.Retry(ctx,
			func() (T, error) {
				attempt++
				return work(ctx)
			},
			backoff.WithBackOff(b),
			backoff.WithMaxTries(policy.Attempts),
			backoff.WithNotify(func(err error, d time.Duration) {
				log.Warnw("attempt failed; backing off", "attempt", attempt, "sleep", d.String(), "error", err)
			}),
		)
	}
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
