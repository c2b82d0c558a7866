package geocode

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter gates every primary-provider request behind a shared
// requests-per-second budget. All callers in the process serialize on the
// same token; burst is fixed at one so the budget is never front-loaded.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing requestsPerSecond across all callers
func NewLimiter(requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Wait blocks until a request may proceed or the context is done
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed right now without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
