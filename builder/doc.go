// SPDX-License-Identifier: MIT
//
// Package builder produces edge streams and graph fixtures over dense
// integer vertex ids. It feeds the distributed engine with workloads and
// gives tests small graphs whose components are known by construction.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – Constructor:  a function that adds vertices and edges to a core.Graph.
//     – BuildGraph:   creates a graph and applies constructors in order.
//     – BuildEdges:   same, but returns the edge list, optionally shuffled.
//   - Topologies: Path, Cycle, Star, Complete, Grid, RandomSparse, RMAT.
//   - Streams without a graph: RMATGenerator and RMATShard, which split one
//     RMAT stream into per-PE slices seeded seed·numPEs + pe.
//   - Options: WithSeed, WithRand, WithShuffle, WithFuzz, WithPartition,
//     WithDirected, WithOffset.
//
// Guarantees:
//
//   - Determinism: equal inputs, options and seed give equal edge lists.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors never panic; they return errors wrapping the sentinels in
//     errors.go.
//
// See individual function documentation for complexity and emission order.
package builder
