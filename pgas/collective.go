// SPDX-License-Identifier: MIT
//
// File: collective.go
// Role: barrier-based collectives: AllReduceSum and Agree (error agreement).
//
// Each PE counts its own collective calls; since every PE performs the same
// sequence, call k on every PE uses slot k%3. After the barrier of call k,
// PE 0 clears slot (k+2)%3, which was last read during call k-1 and is next
// written during call k+2, after the barrier PE 0 has yet to reach.

package pgas

import (
	"context"
	"errors"
	"sync"
)

type reduceSlot struct {
	mu   sync.Mutex
	sum  int64
	errs []error
}

type collectives struct {
	slots [3]reduceSlot
}

func (c *collectives) clear(k uint64) {
	s := &c.slots[k%3]
	s.mu.Lock()
	s.sum, s.errs = 0, nil
	s.mu.Unlock()
}

// exchange contributes (v, err) to the current round and returns the totals
// once every PE has contributed.
func (pe *PE) exchange(ctx context.Context, v int64, err error) (int64, error, error) {
	k := pe.collSeq
	pe.collSeq++
	c := &pe.world.coll
	s := &c.slots[k%3]

	s.mu.Lock()
	s.sum += v
	if err != nil {
		s.errs = append(s.errs, err)
	}
	s.mu.Unlock()

	if berr := pe.Barrier(ctx); berr != nil {
		return 0, nil, berr
	}

	s.mu.Lock()
	sum, joined := s.sum, errors.Join(s.errs...)
	s.mu.Unlock()
	if pe.id == 0 {
		c.clear(k + 2)
	}

	return sum, joined, nil
}

// AllReduceSum is a collective returning the sum of v over all PEs.
func (pe *PE) AllReduceSum(ctx context.Context, v int64) (int64, error) {
	sum, _, err := pe.exchange(ctx, v, nil)
	return sum, err
}

// Agree is a collective that returns the join of every PE's err, so all PEs
// leave a failed phase together. A barrier failure is returned as is.
func (pe *PE) Agree(ctx context.Context, err error) error {
	_, joined, berr := pe.exchange(ctx, 0, err)
	if berr != nil {
		return berr
	}

	return joined
}
