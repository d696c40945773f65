// SPDX-License-Identifier: MIT
//
// File: forest.go
// Role: spanning-forest validation.

package serialcc

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dsforest/core"
)

// Validation failures.
var (
	// ErrForeignEdge indicates a forest edge that is not among the input edges.
	ErrForeignEdge = errors.New("serialcc: forest edge not in graph")

	// ErrCycle indicates a forest edge that closes a cycle.
	ErrCycle = errors.New("serialcc: forest contains a cycle")

	// ErrNotSpanning indicates a forest whose components differ from the graph's.
	ErrNotSpanning = errors.New("serialcc: forest does not span every component")
)

// ValidateSpanningForest checks that forest is a spanning forest of the
// graph on [0, n) with the given edges.
//
// Steps:
//  1. Every forest edge appears in edges, in either orientation.
//  2. Adding the forest edges one by one to a fresh SpliceSet never joins
//     a set to itself.
//  3. The forest has exactly n - c edges, where c is the number of
//     components of edges, and its sets equal those components.
//
// Complexity: O((n + E)·α(n)).
func ValidateSpanningForest(n uint64, edges, forest []core.Edge) error {
	// 1. Membership.
	present := make(map[core.Edge]struct{}, len(edges))
	for _, e := range edges {
		present[e.Normalize()] = struct{}{}
	}
	for _, f := range forest {
		if _, ok := present[f.Normalize()]; !ok {
			return fmt.Errorf("serialcc: %s: %w", f, ErrForeignEdge)
		}
	}

	// 2. Acyclicity.
	fs := NewSpliceSet(n)
	for _, f := range forest {
		joined, err := fs.UnionByRank(f.U, f.V)
		if err != nil {
			return err
		}
		if !joined {
			return fmt.Errorf("serialcc: %s: %w", f, ErrCycle)
		}
	}

	// 3. Same components.
	gs := NewSpliceSet(n)
	components := n
	for _, e := range edges {
		joined, err := gs.UnionSplice(e.U, e.V)
		if err != nil {
			return err
		}
		if joined {
			components--
		}
	}
	if want := n - components; uint64(len(forest)) != want {
		return fmt.Errorf("serialcc: %d forest edges, want %d: %w", len(forest), want, ErrNotSpanning)
	}
	for i := core.VertexID(0); i < n; i++ {
		r, _ := gs.Find(i)
		if same, _ := fs.InterleavedFind(i, r); !same {
			return fmt.Errorf("serialcc: vertex %d not joined to %d: %w", i, r, ErrNotSpanning)
		}
	}

	return nil
}
