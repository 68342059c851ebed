package worker

import (
	"context"
	"math"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter paces outbound calls with one token bucket per upstream.
// Upstreams are provider names ("exa", "openai") or URLs, which share the bucket of their host.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rps     rate.Limit
	burst   int
}

// NewLimiter creates a limiter whose buckets default to rps with the given burst
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		buckets: make(map[string]*rate.Limiter),
		rps:     rate.Limit(rps),
		burst:   burstFor(rps, burst),
	}
}

// Wait blocks until upstream has a free token or ctx ends
func (l *Limiter) Wait(ctx context.Context, upstream string) error {
	return l.bucket(upstreamKey(upstream)).Wait(ctx)
}

// SetRate overrides the ceiling of one upstream; burst follows the rate
func (l *Limiter) SetRate(upstream string, rps float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buckets[upstreamKey(upstream)] = rate.NewLimiter(rate.Limit(rps), burstFor(rps, 0))
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.rps, l.burst)
		l.buckets[key] = b
	}
	return b
}

// burstFor keeps an explicit burst, else allows one second's worth of calls (at least one)
func burstFor(rps float64, burst int) int {
	if burst > 0 {
		return burst
	}
	if n := int(math.Ceil(rps)); n > 1 {
		return n
	}
	return 1
}

// upstreamKey reduces URLs to their host; bare names pass through
func upstreamKey(upstream string) string {
	parsed, err := url.Parse(upstream)
	if err != nil || parsed.Host == "" {
		return upstream
	}
	return parsed.Host
}
