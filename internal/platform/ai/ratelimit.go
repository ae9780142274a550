package ai

import (
	"sync"
	"time"
)

// Limiter is a rolling-window call limiter. It fails closed: a call is
// recorded only when admitted, and admission requires room in the window
// at the moment of the check. Handlers run on concurrent goroutines, so
// the whole purge/check/record sequence holds the mutex.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time
	stamps []time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow reports whether a call may proceed and records it when it may.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.purge(now)
	if len(l.stamps) >= l.limit {
		return false
	}
	l.stamps = append(l.stamps, now)
	return true
}

// Remaining reports how many calls are left in the current window.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purge(l.now())
	return l.limit - len(l.stamps)
}

// purge drops timestamps that have aged out of the window. Caller holds mu.
func (l *Limiter) purge(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.stamps[:0]
	for _, ts := range l.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	l.stamps = kept
}
