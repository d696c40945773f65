// SPDX-License-Identifier: MIT
//
// Package core defines the vocabulary shared by every dsforest package:
// integer vertex identifiers, undirected edges, and a small thread-safe
// undirected Graph used to hold edge streams for generation, I/O and
// verification.
//
// Vertex identifiers are dense unsigned integers (VertexID). They double as
// global indices into the distributed vertex table, so a graph on n vertices
// is expected to use IDs 0..n-1.
//
// Edge semantics:
//
//   - An Edge is an unordered pair (U, V). Ingestion does not require the pair
//     to be normalized; generators emit the normalized form (min, max).
//   - Edge.Hash is a deterministic FNV-1a digest of the pair as given, so the
//     same edge always lands on the same owner PE within one process and
//     across runs.
//
// Graph:
//
//   - Undirected only. Loops and parallel edges are rejected unless enabled
//     with WithLoops / WithMultiEdges.
//   - Edges() preserves insertion order: edge streams are replayed exactly.
//   - Vertices() and NeighborIDs() are sorted ascending.
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj); lock order is always muVert -> muEdgeAdj.
//
// Errors:
//
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - parallel edge when multi-edges are disabled.
package core
