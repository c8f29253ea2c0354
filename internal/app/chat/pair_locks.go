package chat

import (
	"fmt"
	"sync"
)

// pairLocks hands out one mutex per unordered id pair so that room seeding
// for the same two participants is serialized regardless of call direction.
// Locks are never reclaimed; the map grows with the number of distinct pairs
// that ever talked, which is bounded by the user population.
type pairLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPairLocks() *pairLocks {
	return &pairLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for the unordered pair (a, b) and returns its
// unlock function.
func (p *pairLocks) lock(a, b int64) func() {
	if b < a {
		a, b = b, a
	}
	key := fmt.Sprintf("%d:%d", a, b)

	p.mu.Lock()
	m, ok := p.locks[key]
	if !ok {
		m = &sync.Mutex{}
		p.locks[key] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}
