package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(10*time.Minute, 3, clock.Now)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	// Rejection consumes no budget: still rejected, not double-counted.
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other keys have their own window.
	assert.True(t, rl.Allow("9.9.9.9"))

	// Window rolls over at exactly the window length.
	clock.Advance(10 * time.Minute)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiterPrune(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(time.Minute, 5, clock.Now)

	rl.Allow("1.2.3.4")
	rl.Allow("5.6.7.8")
	assert.Len(t, rl.byIP, 2)

	clock.Advance(30 * time.Second)
	rl.Allow("9.9.9.9")

	clock.Advance(31 * time.Second)
	rl.prune()
	// Only the counter still inside its window survives.
	assert.Len(t, rl.byIP, 1)
}
