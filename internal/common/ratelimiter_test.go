package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoRestrictionsAlwaysAllowed(t *testing.T) {
	rl := NewRateLimiter(nil)
	for i := 0; i < 10; i++ {
		assert.True(t, rl.Allowed(false))
	}
}

func TestNonVitalRejectedOverLimit(t *testing.T) {
	rl := NewRateLimiter([]Restriction{{Requests: 2, Duration: time.Minute}})

	assert.True(t, rl.Allowed(false))
	assert.True(t, rl.Allowed(false))
	assert.False(t, rl.Allowed(false))
}

func TestVitalWaitsOutTheRestriction(t *testing.T) {
	rl := NewRateLimiter([]Restriction{{Requests: 2, Duration: 100 * time.Millisecond}})

	assert.True(t, rl.Allowed(true))
	assert.True(t, rl.Allowed(true))

	start := time.Now()
	assert.True(t, rl.Allowed(true))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestHistoryExpires(t *testing.T) {
	rl := NewRateLimiter([]Restriction{{Requests: 1, Duration: 50 * time.Millisecond}})

	assert.True(t, rl.Allowed(false))
	assert.False(t, rl.Allowed(false))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allowed(false))
}
