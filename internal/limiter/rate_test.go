package limiter

import (
	"testing"
	"time"
)

func newTestRateLimiter(limit int, period time.Duration) (*RateLimiter, *time.Time) {
	l := NewRateLimiter(limit, period)
	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestRateLimiterWindowBudget(t *testing.T) {
	l, _ := newTestRateLimiter(10, time.Second)

	for i := 0; i < 10; i++ {
		if l.Check("1.2.3.4") != Allow {
			t.Fatalf("request %d rejected below the ceiling", i+1)
		}
	}

	if l.Check("1.2.3.4") != LimitExceeded {
		t.Fatal("11th request within one window must exceed the limit")
	}
}

func TestRateLimiterFreshWindowAfterExpiry(t *testing.T) {
	l, now := newTestRateLimiter(10, time.Second)

	for i := 0; i < 11; i++ {
		l.Check("1.2.3.4")
	}

	*now = now.Add(time.Second)
	if l.Check("1.2.3.4") != Allow {
		t.Fatal("request after window expiry must start a fresh window")
	}

	// The fresh window has a full budget again.
	for i := 0; i < 9; i++ {
		if l.Check("1.2.3.4") != Allow {
			t.Fatalf("request %d rejected in fresh window", i+2)
		}
	}
	if l.Check("1.2.3.4") != LimitExceeded {
		t.Fatal("fresh window must enforce the same ceiling")
	}
}

func TestRateLimiterSweepsExpiredWindows(t *testing.T) {
	l, now := newTestRateLimiter(10, time.Second)

	l.Check("a")
	l.Check("b")
	l.Check("c")
	if l.TrackedWindows() != 3 {
		t.Fatalf("expected 3 windows, got %d", l.TrackedWindows())
	}

	*now = now.Add(2 * time.Second)
	l.Check("d")
	if l.TrackedWindows() != 1 {
		t.Fatalf("expired windows not swept, got %d", l.TrackedWindows())
	}
}

func TestRateLimiterTracksAddressesIndependently(t *testing.T) {
	l, _ := newTestRateLimiter(2, time.Second)

	l.Check("a")
	l.Check("a")
	if l.Check("a") != LimitExceeded {
		t.Fatal("a should be over its budget")
	}
	if l.Check("b") != Allow {
		t.Fatal("b must have its own window")
	}
}
