// SPDX-License-Identifier: MIT
//
// File: array.go
// Role: Array of atomic words over a Layout; local Shard ops and remote ops via pgas.

package distarray

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/dsforest/pgas"
)

// Array is a distributed array of uint64 words. All methods are safe for
// concurrent use.
type Array struct {
	world  *pgas.World
	layout Layout
	shards []*Shard
}

// Shard is one PE's slice of an Array.
type Shard struct {
	pe     int
	layout Layout
	words  []atomic.Uint64
}

// New allocates a zeroed Array with one shard per PE of world.
func New(world *pgas.World, capacity uint64, dist Distribution) (*Array, error) {
	layout, err := NewLayout(capacity, world.NumPEs(), dist)
	if err != nil {
		return nil, err
	}

	a := &Array{world: world, layout: layout, shards: make([]*Shard, layout.NumPEs())}
	for pe := range a.shards {
		a.shards[pe] = &Shard{pe: pe, layout: layout, words: make([]atomic.Uint64, layout.LocalLen(pe))}
	}

	return a, nil
}

// Layout returns the index map.
func (a *Array) Layout() Layout { return a.layout }

// Local returns the shard owned by pe.
func (a *Array) Local(pe *pgas.PE) *Shard { return a.shards[pe.ID()] }

// Word returns the atomic word for global index i if pe owns it.
func (a *Array) Word(pe *pgas.PE, i uint64) (*atomic.Uint64, error) {
	if !a.layout.Contains(i) {
		return nil, fmt.Errorf("distarray: index %d of %d: %w", i, a.layout.capacity, ErrIndexOutOfRange)
	}
	if a.layout.OwnerOf(i) != pe.ID() {
		return nil, fmt.Errorf("distarray: index %d on PE %d: %w", i, pe.ID(), ErrNotLocal)
	}

	return &a.shards[pe.ID()].words[a.layout.LocalOffset(i)], nil
}

// Load reads element i, sending a request when it is remote.
func (a *Array) Load(ctx context.Context, pe *pgas.PE, i uint64) (uint64, error) {
	return a.access(ctx, pe, i, loadOp{})
}

// Store writes element i, sending a request when it is remote.
func (a *Array) Store(ctx context.Context, pe *pgas.PE, i uint64, v uint64) error {
	_, err := a.access(ctx, pe, i, storeOp{v: v})
	return err
}

// CompareAndSwap replaces element i with next if it equals expected. It
// returns the value observed before the attempt, so on failure the caller
// can retry against the current contents.
func (a *Array) CompareAndSwap(ctx context.Context, pe *pgas.PE, i, expected, next uint64) (uint64, bool, error) {
	cur, err := a.access(ctx, pe, i, casOp{expected: expected, next: next})
	if err != nil {
		return 0, false, err
	}

	return cur, cur == expected, nil
}

// op is applied to one word on its owning PE; it returns the previous value.
type op interface {
	apply(w *atomic.Uint64) uint64
}

type loadOp struct{}

func (loadOp) apply(w *atomic.Uint64) uint64 { return w.Load() }

type storeOp struct{ v uint64 }

func (o storeOp) apply(w *atomic.Uint64) uint64 { return w.Swap(o.v) }

type casOp struct{ expected, next uint64 }

func (o casOp) apply(w *atomic.Uint64) uint64 {
	for {
		cur := w.Load()
		if cur != o.expected {
			return cur
		}
		if w.CompareAndSwap(cur, o.next) {
			return cur
		}
	}
}

// remoteOp carries an op to the owning PE.
type remoteOp struct {
	arr *Array
	idx uint64
	op  op
}

func (m remoteOp) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[uint64]) {
	w, err := m.arr.Word(pe, m.idx)
	if err != nil {
		reply.Fail(err)
		return
	}
	reply.Resolve(m.op.apply(w))
}

func (a *Array) access(ctx context.Context, pe *pgas.PE, i uint64, o op) (uint64, error) {
	if !a.layout.Contains(i) {
		return 0, fmt.Errorf("distarray: index %d of %d: %w", i, a.layout.capacity, ErrIndexOutOfRange)
	}
	owner := a.layout.OwnerOf(i)
	if owner == pe.ID() {
		return o.apply(&a.shards[owner].words[a.layout.LocalOffset(i)]), nil
	}

	return pgas.Send[uint64](ctx, pe, owner, remoteOp{arr: a, idx: i, op: o}).Await(ctx)
}

// Len returns the number of elements in the shard.
func (s *Shard) Len() uint64 { return uint64(len(s.words)) }

// Load reads the element at local offset off.
func (s *Shard) Load(off uint64) uint64 { return s.words[off].Load() }

// Store writes the element at local offset off.
func (s *Shard) Store(off uint64, v uint64) { s.words[off].Store(v) }

// CompareAndSwap is the lock-free local CAS at offset off.
func (s *Shard) CompareAndSwap(off uint64, expected, next uint64) bool {
	return s.words[off].CompareAndSwap(expected, next)
}

// GlobalIndex maps a local offset back to its global index.
func (s *Shard) GlobalIndex(off uint64) uint64 { return s.layout.GlobalIndex(s.pe, off) }

// Range calls fn for every element in offset order until fn returns false.
func (s *Shard) Range(fn func(global, value uint64) bool) {
	for off := range s.words {
		if !fn(s.layout.GlobalIndex(s.pe, uint64(off)), s.words[off].Load()) {
			return
		}
	}
}

// Fill stores v into every element of the shard.
func (s *Shard) Fill(v uint64) {
	for off := range s.words {
		s.words[off].Store(v)
	}
}
