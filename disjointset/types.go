// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Vertex record, packed vertex word, sentinel errors, per-PE statistics.

package disjointset

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dsforest/core"
)

// Sentinel errors.
var (
	// ErrVertexOutOfRange indicates a vertex id ≥ capacity.
	ErrVertexOutOfRange = errors.New("disjointset: vertex out of range")

	// ErrUnknownVertex indicates an edge endpoint that was never registered.
	ErrUnknownVertex = errors.New("disjointset: edge references unknown vertex")

	// ErrPhaseOrder indicates an operation invoked out of order, such as
	// ProcessEdges twice without ingesting anything in between.
	ErrPhaseOrder = errors.New("disjointset: phase invoked out of order")

	// ErrInvalidCapacity indicates a capacity the vertex word cannot address.
	ErrInvalidCapacity = errors.New("disjointset: invalid capacity")
)

// Vertex word layout: the low 48 bits hold parent+1 (0 = unregistered), the
// high 16 bits hold the rank.
const (
	parentBits  = 48
	parentMask  = 1<<parentBits - 1
	maxRank     = 1<<(64-parentBits) - 1
	MaxCapacity = parentMask - 1 // largest capacity whose ids fit the parent field
)

// Vertex is a snapshot of one vertex record. Two records are the same vertex
// when their Values match; Parent and Rank do not take part in identity.
type Vertex struct {
	Value  core.VertexID
	Parent core.VertexID
	Rank   uint64
}

// Identity returns the record of a fresh singleton vertex.
func Identity(id core.VertexID) Vertex {
	return Vertex{Value: id, Parent: id}
}

// IsRoot reports whether the record is its own parent.
func (v Vertex) IsRoot() bool { return v.Parent == v.Value }

// Equal compares by Value only.
func (v Vertex) Equal(o Vertex) bool { return v.Value == o.Value }

// String renders "value->parent(rank)".
func (v Vertex) String() string {
	return fmt.Sprintf("%d->%d(r%d)", v.Value, v.Parent, v.Rank)
}

// Less orders vertices for linking: lower rank first and, on equal rank, the
// larger id first. Linking always puts the lesser root under the greater one,
// so parent keys strictly increase along every chain.
//
// On equal rank the larger id therefore goes under the smaller, the reverse
// of the usual find-union tie rule that puts the smaller id under the
// higher-id root. Hooking keeps every rank at 0 and parents smaller than
// their children, which is this same order, so the local phase, both remote
// protocols and compression share one key.
func Less(a, b Vertex) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}

	return a.Value > b.Value
}

func pack(parent core.VertexID, rank uint64) uint64 {
	return rank<<parentBits | (parent + 1)
}

func (v Vertex) word() uint64 { return pack(v.Parent, v.Rank) }

// unpack decodes the word of vertex id; ok is false for an unregistered slot.
func unpack(id core.VertexID, w uint64) (Vertex, bool) {
	if w == 0 {
		return Vertex{}, false
	}

	return Vertex{Value: id, Parent: (w & parentMask) - 1, Rank: w >> parentBits}, true
}

// PEStats are the per-epoch edge counters of one PE.
type PEStats struct {
	PE            int
	LocalEdges    int // local edges ingested
	SpanningEdges int // spanning edges ingested, plus local edges deferred to the remote phase
	Ghosts        int // distinct ghost vertices
	LocalTree     int // tree edges found by the local phase
	Pruned        int // spanning edges discarded by the reducer
	Candidates    int // spanning edges sent to the remote phase
	Accepted      int // candidates accepted into the spanning forest
}
