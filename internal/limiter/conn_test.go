package limiter

import (
	"fmt"
	"testing"
)

func TestConnLimiterPerAddressCeiling(t *testing.T) {
	l := NewConnLimiter(10, 0, 0)

	for i := 0; i < 10; i++ {
		if !l.Admit("1.2.3.4") {
			t.Fatalf("connection %d refused below the ceiling", i+1)
		}
	}

	if l.Admit("1.2.3.4") {
		t.Fatal("11th concurrent connection must be refused")
	}
	if !l.IsBanned("1.2.3.4") {
		t.Fatal("exceeding the ceiling must ban the address")
	}

	// Bans survive released connections.
	for i := 0; i < 10; i++ {
		l.Release("1.2.3.4")
	}
	if !l.IsBanned("1.2.3.4") {
		t.Fatal("ban must be permanent for the process lifetime")
	}
	if l.Tracked() != 0 {
		t.Fatalf("expected no tracked addresses, got %d", l.Tracked())
	}
}

func TestConnLimiterTrackedAddressCeiling(t *testing.T) {
	l := NewConnLimiter(10, 3, 0)

	for i := 0; i < 3; i++ {
		if !l.Admit(fmt.Sprintf("10.0.0.%d", i)) {
			t.Fatalf("admit %d failed", i)
		}
	}

	if l.Admit("10.0.0.99") {
		t.Fatal("new address past the tracked ceiling must be refused")
	}
	if l.IsBanned("10.0.0.99") {
		t.Fatal("the tracked ceiling is a memory guard, not a ban")
	}

	// An already-tracked address is still admitted.
	if !l.Admit("10.0.0.1") {
		t.Fatal("tracked address refused")
	}

	// Eviction at zero frees a slot.
	l.Release("10.0.0.0")
	if !l.Admit("10.0.0.99") {
		t.Fatal("address refused after a slot was freed")
	}
}

func TestConnLimiterReleaseFloorsAtZero(t *testing.T) {
	l := NewConnLimiter(10, 0, 0)

	l.Release("5.6.7.8") // never admitted; must not panic or go negative
	if !l.Admit("5.6.7.8") {
		t.Fatal("admit after spurious release failed")
	}
	l.Release("5.6.7.8")
	l.Release("5.6.7.8")
	if l.Tracked() != 0 {
		t.Fatalf("expected eviction at zero, got %d tracked", l.Tracked())
	}
}

func TestConnLimiterBanSetCapacity(t *testing.T) {
	l := NewConnLimiter(10, 0, 2)

	if !l.Ban("a") || !l.Ban("b") {
		t.Fatal("bans below capacity rejected")
	}
	if l.Ban("c") {
		t.Fatal("ban past capacity must be dropped")
	}
	if l.IsBanned("c") {
		t.Fatal("dropped ban must not take effect")
	}
	// Re-banning a member is accepted regardless of capacity.
	if !l.Ban("a") {
		t.Fatal("re-ban of an existing member rejected")
	}
}
