// Package ratelimit enforces the crawler's politeness delay between requests.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter blocks callers until the next request may proceed.
//
// The crawler issues requests serially, so implementations only need to
// guarantee a minimum delay since the previous request, not per-host
// bookkeeping.
type RateLimiter interface {
	// Wait blocks until a request can proceed. If the context is cancelled
	// before the rate limit allows, an error is returned.
	Wait(ctx context.Context) error
}

// IntervalLimiter enforces a fixed minimum interval between consecutive
// requests using a token bucket with burst 1, so the first request proceeds
// immediately and each subsequent request waits out the remaining interval.
type IntervalLimiter struct {
	limiter *rate.Limiter
}

// NewIntervalLimiter creates a limiter with the given minimum inter-request
// delay. A non-positive delay disables waiting.
func NewIntervalLimiter(minDelay time.Duration) *IntervalLimiter {
	if minDelay <= 0 {
		return &IntervalLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &IntervalLimiter{limiter: rate.NewLimiter(rate.Every(minDelay), 1)}
}

// Wait blocks until the inter-request delay has elapsed since the previous
// request, or the context is cancelled.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.limiter.Wait(ctx)
}
