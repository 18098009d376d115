// Package retry implements a bounded exponential-backoff policy shared by
// network-calling collaborators.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Policy describes how an operation is retried. The zero value retries
// nothing; use a positive MaxAttempts.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Retryable reports whether an error is worth another attempt. A nil
	// predicate treats every error as retryable.
	Retryable func(error) bool
}

// Do runs op until it succeeds, the attempt budget is exhausted, a
// non-retryable error occurs, or ctx is cancelled. Backoff between attempts is
// BaseDelay * 2^attempt, capped at MaxDelay.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := p.delay(attempt - 1)
			slog.Info("retry: backing off", "attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return errors.Join(err, ctx.Err())
			case <-time.After(delay):
			}
		}
		err = op(ctx)
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return errors.Join(err, ctx.Err())
		}
	}
	return err
}

func (p Policy) delay(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Second
	}
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
