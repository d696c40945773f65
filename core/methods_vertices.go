// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns IDs sorted ascending.
//
// Concurrency:
//   - Vertex catalog protected by muVert.
//   - Adjacency bootstrap under muEdgeAdj (lock order muVert -> muEdgeAdj).

package core

import "slices"

// AddVertex inserts a vertex if missing (idempotent).
//
// Implementation:
//   - Stage 1: Under muVert write lock, check presence; if missing, register it.
//   - Stage 2: Under muEdgeAdj write lock, bootstrap its adjacency bucket.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddVertex(id VertexID) {
	g.muVert.Lock()
	defer g.muVert.Unlock()

	if _, exists := g.vertices[id]; exists {
		return
	}
	g.vertices[id] = struct{}{}

	g.muEdgeAdj.Lock()
	ensureAdjacency(g, id)
	g.muEdgeAdj.Unlock()
}

// AddVertexRange inserts vertices 0..n-1. Existing vertices are left untouched.
//
// Complexity: O(n).
func (g *Graph) AddVertexRange(n int) {
	for i := 0; i < n; i++ {
		g.AddVertex(VertexID(i))
	}
}

// HasVertex reports whether the vertex ID exists.
func (g *Graph) HasVertex(id VertexID) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// Vertices returns all vertex IDs sorted ascending.
//
// Complexity: O(V log V).
func (g *Graph) Vertices() []VertexID {
	g.muVert.RLock()
	ids := make([]VertexID, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	g.muVert.RUnlock()

	slices.Sort(ids)

	return ids
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// MaxVertexID returns the largest vertex ID and false when the graph is empty.
// A graph on dense IDs needs a vertex table of capacity MaxVertexID()+1.
func (g *Graph) MaxVertexID() (VertexID, bool) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	var (
		maxID VertexID
		found bool
	)
	for id := range g.vertices {
		if !found || id > maxID {
			maxID, found = id, true
		}
	}

	return maxID, found
}

// Degree returns the number of incident edge endpoints of id.
// A self-loop contributes 2, as in the classical handshake convention.
//
// Errors:
//   - ErrVertexNotFound if id is absent.
func (g *Graph) Degree(id VertexID) (int, error) {
	if !g.HasVertex(id) {
		return 0, ErrVertexNotFound
	}

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	deg := 0
	for nb, mult := range g.adjacency[id] {
		if nb == id {
			deg += 2 * mult
			continue
		}
		deg += mult
	}

	return deg, nil
}
