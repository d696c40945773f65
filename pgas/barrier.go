// SPDX-License-Identifier: MIT
//
// File: barrier.go
// Role: reusable generation barrier for a fixed number of parties.

package pgas

import "sync"

type barrier struct {
	mu      sync.Mutex
	parties int
	arrived int
	gen     chan struct{} // closed when the current generation completes
}

func newBarrier(parties int) *barrier {
	return &barrier{parties: parties, gen: make(chan struct{})}
}

// arrive registers one party and returns the channel that closes when the
// generation it joined is complete.
func (b *barrier) arrive() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := b.gen
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.gen = make(chan struct{})
		close(ch)
	}

	return ch
}
