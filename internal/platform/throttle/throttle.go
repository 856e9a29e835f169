package throttle

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces consecutive calls by at least a fixed delay. It does not
// adapt to failures.
type Throttle struct {
	delay   time.Duration
	limiter *rate.Limiter
}

// New returns a throttle. A non-positive delay disables waiting.
func New(delay time.Duration) *Throttle {
	if delay <= 0 {
		return &Throttle{}
	}
	return &Throttle{
		delay:   delay,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Wait blocks until the next call is allowed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}

func (t *Throttle) Delay() time.Duration {
	if t == nil {
		return 0
	}
	return t.delay
}
