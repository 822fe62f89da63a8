// Package limiter guards the server against abusive sources: it counts
// open connections per address, bans offenders, and throttles request
// rates. All state is in-memory; bans last for the process lifetime.
package limiter

import "sync"

// Defaults for the connection limiter.
const (
	DefaultMaxConnsPerAddr = 10
	DefaultMaxTrackedAddrs = 500
	DefaultMaxBannedAddrs  = 10000
)

// banSet is a fixed-capacity set of banned addresses. Once full,
// further bans are rejected so memory stays bounded.
type banSet struct {
	cap     int
	members map[string]struct{}
}

func newBanSet(capacity int) *banSet {
	return &banSet{
		cap:     capacity,
		members: make(map[string]struct{}),
	}
}

// add inserts the address, reporting false when the set is full.
func (s *banSet) add(addr string) bool {
	if _, ok := s.members[addr]; ok {
		return true
	}
	if len(s.members) >= s.cap {
		return false
	}
	s.members[addr] = struct{}{}
	return true
}

func (s *banSet) has(addr string) bool {
	_, ok := s.members[addr]
	return ok
}

// ConnLimiter tracks open-connection counts and bans per source
// address. Safe for concurrent use.
type ConnLimiter struct {
	mu         sync.Mutex
	perAddr    int
	maxTracked int
	conns      map[string]int
	banned     *banSet
}

// NewConnLimiter builds a limiter; non-positive arguments fall back to
// the package defaults.
func NewConnLimiter(perAddr, maxTracked, maxBans int) *ConnLimiter {
	if perAddr <= 0 {
		perAddr = DefaultMaxConnsPerAddr
	}
	if maxTracked <= 0 {
		maxTracked = DefaultMaxTrackedAddrs
	}
	if maxBans <= 0 {
		maxBans = DefaultMaxBannedAddrs
	}
	return &ConnLimiter{
		perAddr:    perAddr,
		maxTracked: maxTracked,
		conns:      make(map[string]int),
		banned:     newBanSet(maxBans),
	}
}

// Admit accounts for a new connection from addr. It refuses when the
// number of distinct tracked addresses hit the global ceiling (a coarse
// memory guard), and bans the address outright when it exceeds its
// per-address ceiling.
func (l *ConnLimiter) Admit(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, tracked := l.conns[addr]; !tracked && len(l.conns) >= l.maxTracked {
		return false
	}
	if l.conns[addr] >= l.perAddr {
		l.banned.add(addr)
		return false
	}
	l.conns[addr]++
	return true
}

// Release accounts for a closed connection, evicting the address once
// its count drops to zero. Floored at zero.
func (l *ConnLimiter) Release(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.conns[addr]
	if !ok {
		return
	}
	if n <= 1 {
		delete(l.conns, addr)
		return
	}
	l.conns[addr] = n - 1
}

// Ban adds the address to the ban set for the rest of the process
// lifetime. Reports false when the set is full and the ban is dropped;
// this fail-open policy bounds memory.
func (l *ConnLimiter) Ban(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.banned.add(addr)
}

// IsBanned reports whether the address has been banned.
func (l *ConnLimiter) IsBanned(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.banned.has(addr)
}

// Tracked reports the number of distinct addresses with open
// connections.
func (l *ConnLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.conns)
}
