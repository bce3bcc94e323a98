package core

import (
	"context"
	"errors"
	"sync"
	"time"
)

// RateLimiter gates scoring calls, typically to stay under a judge
// model's request quota.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// tokenBucket refills lazily from the elapsed wall clock, so an idle
// limiter costs nothing and needs no shutdown.
type tokenBucket struct {
	mu     sync.Mutex
	rps    float64
	burst  float64
	tokens float64
	last   time.Time
}

// NewRateLimiter returns a token bucket admitting rps calls per second
// with the given burst capacity. The bucket starts full.
func NewRateLimiter(rps float64, burst int) (RateLimiter, error) {
	if rps <= 0 {
		return nil, errors.New("rate limiter: rps must be > 0")
	}
	if burst <= 0 {
		burst = 1
	}
	return &tokenBucket{
		rps:    rps,
		burst:  float64(burst),
		tokens: float64(burst),
		last:   time.Now(),
	}, nil
}

func (t *tokenBucket) Wait(ctx context.Context) error {
	for {
		t.mu.Lock()
		now := time.Now()
		t.tokens += now.Sub(t.last).Seconds() * t.rps
		if t.tokens > t.burst {
			t.tokens = t.burst
		}
		t.last = now
		if t.tokens >= 1 {
			t.tokens--
			t.mu.Unlock()
			return nil
		}
		wait := time.Duration((1 - t.tokens) / t.rps * float64(time.Second))
		t.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
