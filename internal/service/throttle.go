package service

import (
	"time"

	"golang.org/x/time/rate"
)

// throttle admits one call per window and drops the rest. A zero window
// admits everything.
type throttle struct {
	limiter *rate.Limiter
}

func newThrottle(window time.Duration) *throttle {
	if window <= 0 {
		return &throttle{}
	}
	return &throttle{limiter: rate.NewLimiter(rate.Every(window), 1)}
}

func (t *throttle) allow() bool {
	if t == nil || t.limiter == nil {
		return true
	}
	return t.limiter.Allow()
}
