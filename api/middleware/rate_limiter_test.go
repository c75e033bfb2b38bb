package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestRateLimiterPerIP(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(1, 1)
	rl.now = clock.now

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))

	clock.t = clock.t.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(1, 1)
	rl.now = clock.now

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		rl.Allow(ip)
	}
	assert.Equal(t, 3, rl.Len())

	clock.t = clock.t.Add(idleTTL / 2)
	rl.Allow("10.0.0.1")

	clock.t = clock.t.Add(idleTTL/2 + time.Second)
	rl.Allow("10.0.0.4")

	assert.Equal(t, 2, rl.Len(), "clients idle past the TTL are dropped")
}
