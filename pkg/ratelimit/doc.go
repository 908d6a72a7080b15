// Package ratelimit provides request pacing for the catalog sync.
//
// The public catalog tolerates slow sequential polling, so the limiter is a
// simple fixed-interval gate rather than a token bucket: each request waits
// until a configured delay has elapsed since the previous one.
//
// Interface:
//
// All limiters implement the Limiter interface:
//   - Wait(ctx) error - Block until the next request is allowed
//   - Reset() - Reset the limiter state
//
// Usage:
//
//	// One request every 150ms
//	limiter := ratelimit.NewInterval(150 * time.Millisecond)
//
//	if err := limiter.Wait(ctx); err != nil {
//	    return err // context cancelled while waiting
//	}
//	// Proceed with request
//
// Waits are context-aware so a pending delay aborts promptly on shutdown.
package ratelimit
