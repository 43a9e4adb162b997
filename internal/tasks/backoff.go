package tasks

import (
	"context"
	"time"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// BackoffPolicy controls how the genre resolver waits out rate limits.
type BackoffPolicy struct {
	DefaultRetryAfter time.Duration // Used when a 429 carries no Retry-After header
	MaxDelay          time.Duration // Upper bound on a single wait
	MaxRetries        int           // Consecutive 429s tolerated per batch
	Sleep             SleepFunc     // Defaults to [SleepContext]
}

// DefaultBackoffPolicy waits 60s when no Retry-After is given, at most 5m per wait, for up to 5 retries.
func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		DefaultRetryAfter: 60 * time.Second,
		MaxDelay:          5 * time.Minute,
		MaxRetries:        5,
		Sleep:             SleepContext,
	}
}

func (p BackoffPolicy) withDefaults() BackoffPolicy {
	d := DefaultBackoffPolicy()
	if p.DefaultRetryAfter <= 0 {
		p.DefaultRetryAfter = d.DefaultRetryAfter
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = d.MaxDelay
	}
	if p.MaxRetries <= 0 {
		p.MaxRetries = d.MaxRetries
	}
	if p.Sleep == nil {
		p.Sleep = d.Sleep
	}
	return p
}

// Delay returns the wait for a rate-limited response, clamped to MaxDelay.
func (p BackoffPolicy) Delay(retryAfter time.Duration, hasRetryAfter bool) time.Duration {
	delay := p.DefaultRetryAfter
	if hasRetryAfter {
		delay = retryAfter
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// SleepContext waits for d, returning early with the context's error if it is cancelled.
func SleepContext(ctx context.Context, d time.Duration) error {
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
