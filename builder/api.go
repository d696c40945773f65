// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// api.go - public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildGraph(gopts, bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - BuildEdges wraps BuildGraph for callers that only need the edge stream.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical graphs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dsforest/core"
)

// Constructor applies a deterministic graph mutation using the resolved
// builderConfig. Constructors validate parameters before touching g and
// return sentinel-wrapped errors.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a new core.Graph with graph options gopts, resolves the
// builder configuration from bopts, and applies all constructors in order.
// Any constructor error is wrapped with "BuildGraph: %w" and returned
// immediately.
//
// Complexity: O(len(bopts)) plus the cost of each constructor.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// BuildEdges runs the constructors on a graph that admits loops and parallel
// edges and returns the vertex count (largest id + 1) and the edges in
// emission order, or shuffled with WithShuffle.
//
// Errors:
//   - ErrNeedRandSource if WithShuffle is set without an RNG.
//   - any constructor error.
func BuildEdges(bopts []BuilderOption, cons ...Constructor) (uint64, []core.Edge, error) {
	cfg := newBuilderConfig(bopts...)
	if cfg.shuffle && cfg.rng == nil {
		return 0, nil, fmt.Errorf("BuildEdges: shuffle: %w", ErrNeedRandSource)
	}

	g, err := BuildGraph([]core.GraphOption{core.WithLoops(), core.WithMultiEdges()}, bopts, cons...)
	if err != nil {
		return 0, nil, err
	}

	edges := g.Edges()
	if cfg.shuffle {
		cfg.rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
	}
	var n uint64
	if maxID, ok := g.MaxVertexID(); ok {
		n = maxID + 1
	}

	return n, edges, nil
}
