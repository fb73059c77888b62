package ratelimit

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type RateLimiter interface {
	Wait(ctx context.Context) error
	SetDelay(min, max time.Duration)
}

// Feedback is implemented by limiters that adapt to request outcomes.
type Feedback interface {
	RecordSuccess()
	RecordError()
}

// SimpleRateLimiter spaces requests at least minDelay apart, adding a random
// jitter of up to maxDelay-minDelay. A zero minDelay disables limiting.
type SimpleRateLimiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	minDelay time.Duration
	maxDelay time.Duration
	jitter   bool
}

func NewSimpleRateLimiter(minDelay, maxDelay time.Duration) *SimpleRateLimiter {
	r := &SimpleRateLimiter{
		limiter: rate.NewLimiter(rate.Inf, 1),
		jitter:  true,
	}
	r.SetDelay(minDelay, maxDelay)
	return r
}

func (r *SimpleRateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}

	extra := r.calculateJitter()
	if extra <= 0 {
		return nil
	}

	timer := time.NewTimer(extra)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *SimpleRateLimiter) SetDelay(min, max time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if max < min {
		max = min
	}
	r.minDelay = min
	r.maxDelay = max
	r.limiter.SetLimit(limitFor(min))
}

func (r *SimpleRateLimiter) delays() (time.Duration, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.minDelay, r.maxDelay
}

func (r *SimpleRateLimiter) calculateJitter() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.jitter || r.maxDelay <= r.minDelay {
		return 0
	}
	return rand.N(r.maxDelay - r.minDelay)
}

func limitFor(interval time.Duration) rate.Limit {
	if interval <= 0 {
		return rate.Inf
	}
	return rate.Every(interval)
}

// AdaptiveRateLimiter widens its delays after repeated errors and narrows
// them again after a run of successes.
type AdaptiveRateLimiter struct {
	*SimpleRateLimiter
	mu            sync.Mutex
	errorCount    int
	successCount  int
	maxErrorCount int
	backoffFactor float64
	floor         time.Duration
}

func NewAdaptiveRateLimiter(minDelay, maxDelay time.Duration) *AdaptiveRateLimiter {
	return &AdaptiveRateLimiter{
		SimpleRateLimiter: NewSimpleRateLimiter(minDelay, maxDelay),
		maxErrorCount:     3,
		backoffFactor:     1.5,
		floor:             minDelay,
	}
}

func (a *AdaptiveRateLimiter) RecordSuccess() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.successCount++
	a.errorCount = 0

	if a.successCount > 5 {
		min, max := a.delays()
		newMin := time.Duration(float64(min) * 0.9)
		if newMin < a.floor {
			newMin = a.floor
		}
		a.SetDelay(newMin, max)
		a.successCount = 0
	}
}

func (a *AdaptiveRateLimiter) RecordError() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.errorCount++
	a.successCount = 0

	if a.errorCount >= a.maxErrorCount {
		min, max := a.delays()
		if min <= 0 {
			min = time.Second
		}
		newMin := time.Duration(float64(min) * a.backoffFactor)
		newMax := time.Duration(float64(max) * a.backoffFactor)

		if newMin > 60*time.Second {
			newMin = 60 * time.Second
		}
		if newMax > 120*time.Second {
			newMax = 120 * time.Second
		}

		a.SetDelay(newMin, newMax)
		a.errorCount = 0
	}
}
