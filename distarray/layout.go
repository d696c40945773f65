// SPDX-License-Identifier: MIT
//
// File: layout.go
// Role: Distribution policy and index arithmetic (owner, offset, global index).

package distarray

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLayout indicates a layout that cannot be built.
	ErrInvalidLayout = errors.New("distarray: invalid layout")

	// ErrIndexOutOfRange indicates an index at or beyond capacity.
	ErrIndexOutOfRange = errors.New("distarray: index out of range")

	// ErrNotLocal indicates local access to an element owned by another PE.
	ErrNotLocal = errors.New("distarray: element not owned by this PE")
)

// Distribution selects how indices are spread across PEs.
type Distribution int

const (
	// Block assigns contiguous runs of indices to each PE.
	Block Distribution = iota
	// Cyclic deals indices round-robin.
	Cyclic
)

// String returns "block" or "cyclic".
func (d Distribution) String() string {
	switch d {
	case Block:
		return "block"
	case Cyclic:
		return "cyclic"
	default:
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
}

// ParseDistribution accepts "block" or "cyclic", case-insensitively.
func ParseDistribution(s string) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return Block, nil
	case "cyclic":
		return Cyclic, nil
	default:
		return 0, fmt.Errorf("distarray: distribution %q: %w", s, ErrInvalidLayout)
	}
}

// Layout is the immutable index map of an Array. The zero value is unusable.
type Layout struct {
	dist     Distribution
	capacity uint64
	numPEs   int
	base     uint64 // capacity / numPEs
	rem      uint64 // capacity % numPEs
}

// NewLayout validates and builds a Layout.
func NewLayout(capacity uint64, numPEs int, dist Distribution) (Layout, error) {
	if numPEs < 1 {
		return Layout{}, fmt.Errorf("distarray: NewLayout: %d PEs: %w", numPEs, ErrInvalidLayout)
	}
	if dist != Block && dist != Cyclic {
		return Layout{}, fmt.Errorf("distarray: NewLayout: %v: %w", dist, ErrInvalidLayout)
	}
	n := uint64(numPEs)

	return Layout{
		dist:     dist,
		capacity: capacity,
		numPEs:   numPEs,
		base:     capacity / n,
		rem:      capacity % n,
	}, nil
}

// Capacity returns the global element count.
func (l Layout) Capacity() uint64 { return l.capacity }

// NumPEs returns the number of shards.
func (l Layout) NumPEs() int { return l.numPEs }

// Distribution returns the policy.
func (l Layout) Distribution() Distribution { return l.dist }

// Contains reports whether i < capacity.
func (l Layout) Contains(i uint64) bool { return i < l.capacity }

// OwnerOf returns the PE owning index i. i must be < capacity.
func (l Layout) OwnerOf(i uint64) int {
	if l.dist == Cyclic {
		return int(i % uint64(l.numPEs))
	}
	wide := l.rem * (l.base + 1) // indices held by the first rem PEs
	if i < wide {
		return int(i / (l.base + 1))
	}

	return int(l.rem + (i-wide)/l.base)
}

// LocalOffset returns i's position inside its owner's shard.
func (l Layout) LocalOffset(i uint64) uint64 {
	if l.dist == Cyclic {
		return i / uint64(l.numPEs)
	}

	return i - l.start(l.OwnerOf(i))
}

// GlobalIndex is the inverse of (OwnerOf, LocalOffset).
func (l Layout) GlobalIndex(pe int, offset uint64) uint64 {
	if l.dist == Cyclic {
		return offset*uint64(l.numPEs) + uint64(pe)
	}

	return l.start(pe) + offset
}

// LocalLen returns the number of elements held by pe. Both policies give the
// first capacity%numPEs PEs one extra element.
func (l Layout) LocalLen(pe int) uint64 {
	if uint64(pe) < l.rem {
		return l.base + 1
	}

	return l.base
}

func (l Layout) start(pe int) uint64 {
	p := uint64(pe)
	return p*l.base + min(p, l.rem)
}
