// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"sync"

	urlutil "github.com/law-makers/shopcrawl/internal/utils/url"
	"golang.org/x/time/rate"
)

// RateLimiter throttles outgoing requests per host. It keeps the crawler
// polite towards the demo site and does not react to server-side throttling.
type RateLimiter interface {
	// Wait blocks until a request for urlStr may proceed or ctx is done.
	Wait(ctx context.Context, urlStr string) error
}

// HostLimiter holds one token bucket per host
type HostLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	perHost  rate.Limit
	burst    int
}

// NewHostLimiter creates a limiter allowing requestsPerSecond per host with the given burst
func NewHostLimiter(requestsPerSecond float64, burst int) *HostLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2.0
	}
	if burst <= 0 {
		burst = 1
	}

	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait implements RateLimiter. Unparseable URLs are let through; the request itself will fail.
func (hl *HostLimiter) Wait(ctx context.Context, urlStr string) error {
	host := urlutil.Host(urlStr)
	if host == "" {
		return nil
	}
	return hl.forHost(host).Wait(ctx)
}

func (hl *HostLimiter) forHost(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	limiter, ok := hl.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(hl.perHost, hl.burst)
		hl.limiters[host] = limiter
	}
	return limiter
}
