// SPDX-License-Identifier: MIT
//
// Package serialcc holds single-threaded connected-components kernels over
// dense vertex ids [0, n). They serve as references for the distributed
// engine in package disjointset and as baselines in benchmarks.
//
//   - SpliceSet: arena-indexed union-find with union-by-rank, Rem-style
//     splicing and an interleaved same-set query.
//   - CSR + ShiloachVishkin: hook-and-shortcut rounds over a compressed
//     sparse row graph; the label of a component is its smallest id.
//   - ComponentsBFS: breadth-first labelling of a core.Graph.
//   - ValidateSpanningForest: checks a forest against the edges it was
//     drawn from.
//
// None of the types here are safe for concurrent mutation.
package serialcc
