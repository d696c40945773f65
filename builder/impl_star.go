// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// impl_star.go - Star(n) and Complete(n).
//
// Contract:
//   - Star: n ≥ 2, center 0, edges (0, i) for i = 1..n-1.
//   - Complete: n ≥ 1, edges (i, j) for i < j, i ascending then j ascending.
//
// Complexity: Star O(n); Complete O(n²).

package builder

import "github.com/katalvlaran/dsforest/core"

// Star returns a Constructor that builds a star with center 0.
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(methodStar, n, MinStarNodes); err != nil {
			return err
		}

		addSequentialVertices(g, cfg, n)
		for i := 1; i < n; i++ {
			if err := addEdge(g, cfg, methodStar, 0, uint64(i)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Complete returns a Constructor that builds K_n.
func Complete(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(methodComplete, n, 1); err != nil {
			return err
		}

		addSequentialVertices(g, cfg, n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := addEdge(g, cfg, methodComplete, uint64(i), uint64(j)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
