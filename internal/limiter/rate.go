package limiter

import (
	"sync"
	"time"
)

// Defaults for the rate limiter.
const (
	DefaultRateLimit  = 10
	DefaultRateWindow = time.Second
)

// Verdict is the outcome of a rate-limit check.
type Verdict int

const (
	// Allow admits the request.
	Allow Verdict = iota
	// LimitExceeded signals the source should be disconnected and
	// banned by the caller.
	LimitExceeded
)

type window struct {
	start time.Time
	count int
}

// RateLimiter counts requests per source address within fixed time
// windows. Expired windows are swept opportunistically on each check
// rather than by a background task, which bounds memory at O(sweep)
// cost per call. Safe for concurrent use.
type RateLimiter struct {
	mu     sync.Mutex
	limit  int
	period time.Duration
	seen   map[string]*window
	now    func() time.Time
}

// NewRateLimiter allows limit requests per period from one address.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if period <= 0 {
		period = DefaultRateWindow
	}
	return &RateLimiter{
		limit:  limit,
		period: period,
		seen:   make(map[string]*window),
		now:    time.Now,
	}
}

// Check records one request from addr and returns the verdict. The
// first request in a window always passes; subsequent ones pass until
// the window's budget is spent.
func (l *RateLimiter) Check(addr string) Verdict {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.seen[addr]
	if !ok {
		l.seen[addr] = &window{start: now}
		return Allow
	}

	w.count++
	if w.count >= l.limit {
		return LimitExceeded
	}
	return Allow
}

// sweep evicts every window whose duration has elapsed. Caller holds
// the lock.
func (l *RateLimiter) sweep(now time.Time) {
	for addr, w := range l.seen {
		if now.Sub(w.start) >= l.period {
			delete(l.seen, addr)
		}
	}
}

// TrackedWindows reports the number of live windows.
func (l *RateLimiter) TrackedWindows() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}
