package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPRateLimiter hands out one token bucket per client IP so a single noisy
// client cannot exhaust the shortcut endpoints for everyone else. Buckets
// for IPs not seen recently are evicted by the Start worker.
type IPRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	rps     rate.Limit
	burst   int
	logger  *slog.Logger
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(rps float64, burst int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		buckets: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
		logger:  logger,
	}
}

// GetLimiter returns the bucket for an IP, creating it on first sight.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter
}

// Start evicts buckets idle for longer than maxIdle once per interval until
// the context is cancelled.
func (l *IPRateLimiter) Start(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Info("Rate limiter worker starting", "interval", interval, "max_idle", maxIdle)
	for {
		select {
		case <-ticker.C:
			l.evictIdle(maxIdle)
		case <-ctx.Done():
			l.logger.Info("Rate limiter worker stopping")
			return
		}
	}
}

func (l *IPRateLimiter) evictIdle(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for ip, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, ip)
			evicted++
		}
	}
	if evicted > 0 {
		l.logger.Info("Evicted idle rate limiter buckets", "evicted", evicted, "remaining", len(l.buckets))
	}
}
