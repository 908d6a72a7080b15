package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter defines the interface for pacing catalog requests
type Limiter interface {
	// Wait blocks until the next request is allowed or the context is cancelled
	Wait(ctx context.Context) error
	// Reset resets the rate limiter state
	Reset()
}

// Interval enforces a fixed minimum gap between consecutive requests.
// The first request passes immediately; each subsequent request waits
// until the configured delay has elapsed since the previous one.
type Interval struct {
	delay time.Duration
	last  time.Time
	mu    sync.Mutex
}

// NewInterval creates an interval limiter with the given minimum gap.
// A non-positive delay yields a limiter that never blocks.
func NewInterval(delay time.Duration) *Interval {
	return &Interval{delay: delay}
}

// Wait blocks until the interval since the last request has elapsed
func (i *Interval) Wait(ctx context.Context) error {
	if i.delay <= 0 {
		return nil
	}

	i.mu.Lock()
	var sleep time.Duration
	if !i.last.IsZero() {
		sleep = i.delay - time.Since(i.last)
	}
	// Claim the slot before sleeping so concurrent callers space out
	if sleep > 0 {
		i.last = i.last.Add(i.delay)
	} else {
		i.last = time.Now()
	}
	i.mu.Unlock()

	if sleep <= 0 {
		return nil
	}

	timer := time.NewTimer(sleep)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset clears the last-request timestamp so the next call passes immediately
func (i *Interval) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.last = time.Time{}
}

// Nop is a limiter that never blocks, for zero-delay configurations
type Nop struct{}

// Wait returns immediately
func (Nop) Wait(ctx context.Context) error { return nil }

// Reset does nothing
func (Nop) Reset() {}
