package retry

import (
	"context"
	"time"
)

// Policy describes an exponential backoff schedule with two budgets:
// a maximum number of attempts and a maximum wall-clock time across all
// attempts. Whichever budget runs out first stops retrying.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// MaxElapsed caps the wall-clock time spent across all attempts and
	// backoff sleeps. A retry whose sleep would cross the cap is not made.
	MaxElapsed time.Duration

	// BaseDelay is the sleep before the second attempt. Each further
	// sleep doubles.
	BaseDelay time.Duration

	// now and sleep are overridable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy matches the client's retry budget: 5 attempts within 300s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		MaxElapsed:  300 * time.Second,
		BaseDelay:   time.Second,
	}
}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// budget runs out. retryable decides which errors are worth another
// attempt; a non-retryable error is returned immediately. When the budget
// is exhausted the last error from fn is returned.
func (p Policy) Do(ctx context.Context, retryable func(error) bool, fn func() error) error {
	now := p.now
	if now == nil {
		now = time.Now
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	start := now()
	delay := p.BaseDelay

	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt >= p.MaxAttempts {
			return err
		}
		if now().Sub(start)+delay > p.MaxElapsed {
			return err
		}
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}
		delay *= 2
	}
}

// sleepCtx blocks for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
