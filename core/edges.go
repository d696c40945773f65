// SPDX-License-Identifier: MIT
//
// File: edges.go
// Role: value methods on Edge (normalization, hashing, formatting).

package core

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
)

// NewEdge returns the edge (u, v) exactly as given.
func NewEdge(u, v VertexID) Edge {
	return Edge{U: u, V: v}
}

// Normalize returns the edge with endpoints ordered as (min, max).
//
// Complexity: O(1).
func (e Edge) Normalize() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}

	return e
}

// Reverse returns (V, U).
func (e Edge) Reverse() Edge {
	return Edge{U: e.V, V: e.U}
}

// IsLoop reports whether both endpoints are the same vertex.
func (e Edge) IsLoop() bool {
	return e.U == e.V
}

// Has reports whether x is one of the endpoints.
func (e Edge) Has(x VertexID) bool {
	return e.U == x || e.V == x
}

// Hash returns a deterministic 64-bit FNV-1a digest of (U, V) in that order.
// Two orientations of the same unordered pair may hash differently; callers
// that need orientation-free placement hash e.Normalize().
//
// Complexity: O(1), no allocations beyond the hasher.
func (e Edge) Hash() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], e.U)
	binary.LittleEndian.PutUint64(buf[8:], e.V)

	h := fnv.New64a()
	_, _ = h.Write(buf[:]) // fnv never fails

	return h.Sum64()
}

// String renders the edge as "u-v".
func (e Edge) String() string {
	return strconv.FormatUint(e.U, 10) + "-" + strconv.FormatUint(e.V, 10)
}

// EdgesFromPairs converts [][2]VertexID literals into edges, preserving order.
func EdgesFromPairs(pairs [][2]VertexID) []Edge {
	out := make([]Edge, len(pairs))
	for i, p := range pairs {
		out[i] = Edge{U: p[0], V: p[1]}
	}

	return out
}
