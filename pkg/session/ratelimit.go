// FILE: pkg/session/ratelimit.go
package session

import (
	"sync"
	"time"
)

// ipWindow is a fixed-window creation counter for one client IP.
type ipWindow struct {
	windowStart time.Time
	count       int
}

// rateLimiter counts session creations per client IP over a fixed window.
// Check-and-increment happens under one lock so a burst of parallel creates
// from the same IP cannot slip past the threshold.
type rateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	byIP    map[string]*ipWindow
	nowFunc func() time.Time
}

func newRateLimiter(window time.Duration, max int, nowFunc func() time.Time) *rateLimiter {
	return &rateLimiter{
		window:  window,
		max:     max,
		byIP:    make(map[string]*ipWindow),
		nowFunc: nowFunc,
	}
}

// Allow reports whether clientIP may create another session, and counts the
// creation if so. A rejected attempt does not consume budget.
func (rl *rateLimiter) Allow(clientIP string) bool {
	now := rl.nowFunc()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.byIP[clientIP]
	if !ok || now.Sub(w.windowStart) >= rl.window {
		rl.byIP[clientIP] = &ipWindow{windowStart: now, count: 1}
		return true
	}

	if w.count >= rl.max {
		return false
	}
	w.count++
	return true
}

// prune drops counters whose window has already closed. Called from the
// store's sweep so stale IPs don't accumulate forever.
func (rl *rateLimiter) prune() {
	now := rl.nowFunc()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, w := range rl.byIP {
		if now.Sub(w.windowStart) >= rl.window {
			delete(rl.byIP, ip)
		}
	}
}
