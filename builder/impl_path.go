// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// impl_path.go - Path(n) and Cycle(n).
//
// Contract:
//   - Path: n ≥ 2, edges (i-1, i) for i = 1..n-1 in increasing order.
//   - Cycle: n ≥ 3, the path edges then the closing edge (n-1, 0).
//
// Complexity: O(n) time, O(1) extra space.

package builder

import "github.com/katalvlaran/dsforest/core"

// Path returns a Constructor that builds a simple path P_n.
func Path(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(methodPath, n, MinPathNodes); err != nil {
			return err
		}

		addSequentialVertices(g, cfg, n)
		for i := 1; i < n; i++ {
			if err := addEdge(g, cfg, methodPath, uint64(i-1), uint64(i)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Cycle returns a Constructor that builds a simple cycle C_n.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(methodCycle, n, MinCycleNodes); err != nil {
			return err
		}

		addSequentialVertices(g, cfg, n)
		for i := 1; i < n; i++ {
			if err := addEdge(g, cfg, methodCycle, uint64(i-1), uint64(i)); err != nil {
				return err
			}
		}

		return addEdge(g, cfg, methodCycle, uint64(n-1), 0)
	}
}
