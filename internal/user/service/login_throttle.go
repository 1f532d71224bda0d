// Package service provides supporting services for admin authentication.
package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginThrottle enforces per-email rate limiting on login attempts using a
// token bucket per email. It slows down online password guessing without
// affecting other accounts.
type LoginThrottle struct {
	limiters sync.Map // map[string]*throttleEntry
	rps      float64
	burst    int
	cancel   context.CancelFunc
}

// throttleEntry holds a rate limiter and last access time for cleanup.
type throttleEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// NewLoginThrottle creates a throttle allowing rps attempts per second with
// the given burst capacity per email. A background goroutine periodically
// drops limiters for emails that have not attempted a login recently; call
// Close to stop it.
func NewLoginThrottle(rps float64, burst int) *LoginThrottle {
	ctx, cancel := context.WithCancel(context.Background())

	throttle := &LoginThrottle{
		rps:    rps,
		burst:  burst,
		cancel: cancel,
	}

	go throttle.cleanupStale(ctx, 5*time.Minute)

	return throttle
}

// Allow reports whether a login attempt for the email may proceed.
func (t *LoginThrottle) Allow(email string) bool {
	return t.getLimiter(email).Allow()
}

// Close stops the background cleanup goroutine.
func (t *LoginThrottle) Close() {
	t.cancel()
}

// getLimiter retrieves or creates a rate limiter for an email.
func (t *LoginThrottle) getLimiter(email string) *rate.Limiter {
	if val, ok := t.limiters.Load(email); ok {
		entry := val.(*throttleEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(t.rps), t.burst)
	entry := &throttleEntry{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	if existing, loaded := t.limiters.LoadOrStore(email, entry); loaded {
		return existing.(*throttleEntry).limiter
	}
	return limiter
}

// cleanupStale removes rate limiters that haven't been accessed recently.
func (t *LoginThrottle) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-1 * time.Hour)
			t.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*throttleEntry)
				entry.mu.Lock()
				stale := entry.lastAccess.Before(threshold)
				entry.mu.Unlock()

				if stale {
					t.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
