package analyzer

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/grievancesense/grievancesense/internal/logging"
)

const defaultRPS = 50

// RateLimiter bounds how fast batch analyses are admitted.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewRateLimiter creates a rate limiter.
// rps: requests per second; burst: maximum burst size.
func NewRateLimiter(rps, burst int, logger logging.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = rps
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Wait blocks until the rate limit admits the operation or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn("rate limiter wait failed", logging.Err(err))
		return err
	}
	return nil
}

// Allow reports whether an operation may proceed without waiting.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
