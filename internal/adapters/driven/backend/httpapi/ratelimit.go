package httpapi

import (
	"context"
	"math"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outgoing search requests with a token bucket.
// A rate of zero or less disables throttling.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter allowing perSecond requests per second
// with a burst of one.
func NewRateLimiter(perSecond float64) *RateLimiter {
	return &RateLimiter{bucket: rate.NewLimiter(toLimit(perSecond), 1)}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// SetRate changes the allowed request rate.
func (r *RateLimiter) SetRate(perSecond float64) {
	r.bucket.SetLimit(toLimit(perSecond))
}

// Rate returns the current rate in requests per second, or +Inf when disabled.
func (r *RateLimiter) Rate() float64 {
	limit := r.bucket.Limit()
	if limit == rate.Inf {
		return math.Inf(1)
	}
	return float64(limit)
}

func toLimit(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}
