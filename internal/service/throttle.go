package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// OTPThrottle limits how often a code can be sent to the same phone.
type OTPThrottle struct {
	mu       sync.Mutex
	phones   map[string]*phoneLimiter
	interval time.Duration
	now      func() time.Time
}

type phoneLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewOTPThrottle allows one code per phone every interval. A zero interval
// disables throttling.
func NewOTPThrottle(interval time.Duration) *OTPThrottle {
	return &OTPThrottle{
		phones:   make(map[string]*phoneLimiter),
		interval: interval,
		now:      time.Now,
	}
}

// Allow reports whether a code may be sent to phone now, and consumes the
// allowance when it may.
func (t *OTPThrottle) Allow(phone string) bool {
	if t == nil || t.interval <= 0 {
		return true
	}

	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.phones[phone]
	if !ok {
		p = &phoneLimiter{limiter: rate.NewLimiter(rate.Every(t.interval), 1)}
		t.phones[phone] = p
	}
	p.lastSeen = now

	return p.limiter.AllowN(now, 1)
}

// Release hands back the allowance taken by Allow when the code was not sent.
func (t *OTPThrottle) Release(phone string) {
	if t == nil || t.interval <= 0 {
		return
	}

	t.mu.Lock()
	delete(t.phones, phone)
	t.mu.Unlock()
}

// Cleanup drops limiters idle for longer than the interval, when they would
// allow a send again anyway.
func (t *OTPThrottle) Cleanup() int {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for phone, p := range t.phones {
		if now.Sub(p.lastSeen) > t.interval {
			delete(t.phones, phone)
			removed++
		}
	}
	return removed
}

// Run cleans up idle limiters every minute until ctx is done.
func (t *OTPThrottle) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Cleanup()
		}
	}
}
