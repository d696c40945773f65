// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// helpers.go - vertex and edge insertion shared by constructors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dsforest/core"
)

// addSequentialVertices inserts ids offset..offset+n-1. Re-adding existing
// vertices is a no-op in core.Graph.
// Complexity: O(n).
func addSequentialVertices(g *core.Graph, cfg builderConfig, n int) {
	for i := 0; i < n; i++ {
		g.AddVertex(cfg.offset + core.VertexID(i))
	}
}

// addEdge inserts (offset+u, offset+v) and tags failures with method.
func addEdge(g *core.Graph, cfg builderConfig, method string, u, v uint64) error {
	u, v = cfg.offset+u, cfg.offset+v
	if err := g.AddEdge(u, v); err != nil {
		return fmt.Errorf("%s: AddEdge(%d-%d): %w", method, u, v, err)
	}

	return nil
}
