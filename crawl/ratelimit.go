package crawl

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/typedex/typedex"
	"golang.org/x/time/rate"
)

// Default request pacing, after the reference dispatcher's 0.5-1.0s
// randomized base delay.
const (
	DefaultMinDelay = 500 * time.Millisecond
	DefaultMaxDelay = time.Second
)

var _ typedex.DomainLimiter = (*PacedLimiter)(nil)

// PacedLimiter paces requests per domain: a token bucket per domain caps
// sustained throughput, and each admitted request additionally sleeps a
// random base delay uniform in [MinDelay, MaxDelay]. Concurrent requests
// to different domains proceed independently.
type PacedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	minDelay time.Duration
	maxDelay time.Duration
}

// NewPacedLimiter creates a PacedLimiter with the given requests-per-second
// cap per domain and randomized base delay range. Each domain gets a burst
// of 1 (no bursting allowed). Non-positive delays select the defaults.
func NewPacedLimiter(rps float64, minDelay, maxDelay time.Duration) *PacedLimiter {
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &PacedLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Wait blocks until the domain's bucket admits a request, then sleeps the
// randomized base delay. Returns an error if the context is canceled first.
func (l *PacedLimiter) Wait(ctx context.Context, domain string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[domain] = limiter
	}
	l.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return err
	}

	delay := l.minDelay
	if span := l.maxDelay - l.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// Delay returns one randomized base delay from the configured range.
// Exposed for tests.
func (l *PacedLimiter) Delay() time.Duration {
	delay := l.minDelay
	if span := l.maxDelay - l.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	return delay
}
