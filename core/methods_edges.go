// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/Edges/EdgeCount/NeighborIDs.
//
// Determinism:
//   - Edges() returns edges in insertion order, as supplied.
//   - NeighborIDs() is sorted ascending.
//
// Concurrency:
//   - Mutations under muEdgeAdj write lock, reads under its read lock.

package core

import "slices"

// AddEdge appends the undirected edge (u, v), creating missing endpoints.
//
// Steps:
//  1. Reject loops unless WithLoops.
//  2. Ensure endpoints via AddVertex.
//  3. Under muEdgeAdj, reject parallel edges unless WithMultiEdges.
//  4. Append to the edge list and bump adjacency multiplicities (mirrored).
//
// Errors:
//   - ErrLoopNotAllowed, ErrMultiEdgeNotAllowed.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v VertexID) error {
	if u == v && !g.Looped() {
		return ErrLoopNotAllowed
	}

	g.AddVertex(u)
	g.AddVertex(v)

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if !g.allowMulti && g.adjacency[u][v] > 0 {
		return ErrMultiEdgeNotAllowed
	}

	g.edges = append(g.edges, Edge{U: u, V: v})
	g.adjacency[u][v]++
	if u != v {
		g.adjacency[v][u]++
	}

	return nil
}

// AddEdges appends every edge in order and stops at the first error.
func (g *Graph) AddEdges(edges ...Edge) error {
	for _, e := range edges {
		if err := g.AddEdge(e.U, e.V); err != nil {
			return err
		}
	}

	return nil
}

// HasEdge reports whether {u, v} is present in either orientation.
func (g *Graph) HasEdge(u, v VertexID) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.adjacency[u][v] > 0
}

// Edges returns a copy of the edge list in insertion order.
//
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return slices.Clone(g.edges)
}

// EdgeCount returns the number of stored edges (parallel edges counted).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// NeighborIDs returns the distinct neighbors of id sorted ascending.
//
// Errors:
//   - ErrVertexNotFound if id is absent.
//
// Complexity: O(d log d).
func (g *Graph) NeighborIDs(id VertexID) ([]VertexID, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}

	g.muEdgeAdj.RLock()
	out := make([]VertexID, 0, len(g.adjacency[id]))
	for nb := range g.adjacency[id] {
		out = append(out, nb)
	}
	g.muEdgeAdj.RUnlock()

	slices.Sort(out)

	return out, nil
}

// Clone returns a deep copy with the same flags, vertices and edge order.
//
// Complexity: O(V+E).
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	c := &Graph{
		allowMulti: g.allowMulti,
		allowLoops: g.allowLoops,
		vertices:   make(map[VertexID]struct{}, len(g.vertices)),
		edges:      slices.Clone(g.edges),
		adjacency:  make(map[VertexID]map[VertexID]int, len(g.adjacency)),
	}
	for id := range g.vertices {
		c.vertices[id] = struct{}{}
	}
	for u, inner := range g.adjacency {
		m := make(map[VertexID]int, len(inner))
		for v, mult := range inner {
			m[v] = mult
		}
		c.adjacency[u] = m
	}

	return c
}

// Clear removes all vertices and edges but keeps the configuration flags.
func (g *Graph) Clear() {
	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	g.vertices = make(map[VertexID]struct{})
	g.edges = nil
	g.adjacency = make(map[VertexID]map[VertexID]int)
}

// ensureAdjacency creates the adjacency bucket for id. Caller holds muEdgeAdj.
func ensureAdjacency(g *Graph, id VertexID) {
	if g.adjacency[id] == nil {
		g.adjacency[id] = make(map[VertexID]int)
	}
}
