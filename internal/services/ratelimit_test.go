package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPRateLimiter_GetLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(10, 5, testLogger())
	ip := "192.168.1.1"

	l1 := limiter.GetLimiter(ip)
	assert.NotNil(t, l1)
	assert.Equal(t, rate.Limit(10), l1.Limit())
	assert.Equal(t, 5, l1.Burst())

	// Get again should return same limiter
	l2 := limiter.GetLimiter(ip)
	assert.Equal(t, l1, l2)

	// Different IP should return different limiter
	l3 := limiter.GetLimiter("1.1.1.1")
	assert.NotSame(t, l1, l3)
}

func TestIPRateLimiter_Burst(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1, testLogger())
	l := limiter.GetLimiter("10.0.0.1")

	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestIPRateLimiter_EvictIdle(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1, testLogger())
	limiter.GetLimiter("10.0.0.1")
	limiter.GetLimiter("10.0.0.2")

	limiter.mu.Lock()
	limiter.buckets["10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Hour)
	limiter.mu.Unlock()

	limiter.evictIdle(time.Hour)

	limiter.mu.Lock()
	_, stale := limiter.buckets["10.0.0.1"]
	_, fresh := limiter.buckets["10.0.0.2"]
	limiter.mu.Unlock()

	assert.False(t, stale)
	assert.True(t, fresh)

	// An evicted IP gets a fresh bucket on its next request.
	assert.NotNil(t, limiter.GetLimiter("10.0.0.1"))
}
