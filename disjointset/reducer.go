// SPDX-License-Identifier: MIT
//
// File: reducer.go
// Role: PE-local pruning of spanning edges through ghost/local-root connection classes.

package disjointset

import (
	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/internal/set"
	"github.com/katalvlaran/dsforest/pgas"
)

// connections is a class of local roots and ghosts already known to be
// connected through spanning edges kept earlier in the pass.
type connections struct {
	roots  set.Set[core.VertexID]
	ghosts set.Set[core.VertexID]
}

func (c *connections) size() int { return c.roots.Len() + c.ghosts.Len() }

// reducer maps every ghost and every local root to its class. A root or ghost
// belongs to at most one class, so two classes intersect only if they are
// the same class.
type reducer struct {
	byGhost map[core.VertexID]*connections
	byRoot  map[core.VertexID]*connections
}

// newReducer seeds one singleton class per ghost of the epoch.
func newReducer(ghosts map[core.VertexID]Vertex) *reducer {
	r := &reducer{
		byGhost: make(map[core.VertexID]*connections, len(ghosts)),
		byRoot:  make(map[core.VertexID]*connections),
	}
	for g := range ghosts {
		r.ghost(g)
	}

	return r
}

func (r *reducer) ghost(g core.VertexID) *connections {
	c, ok := r.byGhost[g]
	if !ok {
		c = &connections{}
		c.ghosts.Insert(g)
		r.byGhost[g] = c
	}

	return c
}

func (r *reducer) root(x core.VertexID) *connections {
	c, ok := r.byRoot[x]
	if !ok {
		c = &connections{}
		c.roots.Insert(x)
		r.byRoot[x] = c
	}

	return c
}

// link keeps an edge joining classes a and b: it reports false when they are
// already one class, otherwise merges the smaller into the larger.
func (r *reducer) link(a, b *connections) bool {
	if a == b {
		return false
	}
	if a.size() < b.size() {
		a, b = b, a
	}
	for g := range b.ghosts.Iter() {
		r.byGhost[g] = a
	}
	for x := range b.roots.Iter() {
		r.byRoot[x] = a
	}
	a.ghosts.Absorb(&b.ghosts)
	a.roots.Absorb(&b.roots)

	return true
}

// endpoint maps a vertex to its class: the local root's class for vertices
// owned by pe, the ghost's own class otherwise.
func (ds *DisjointSet) endpoint(pe *pgas.PE, r *reducer, id core.VertexID) (*connections, error) {
	if ds.VertexOwner(id) != pe.ID() {
		return r.ghost(id), nil
	}
	root, _, err := ds.localRoot(pe, id)
	if err != nil {
		return nil, err
	}

	return r.root(root.Value), nil
}

// reducePhase runs one pass over edges in order and returns the candidates
// that may still add connectivity. It sends no messages.
func (ds *DisjointSet) reducePhase(pe *pgas.PE, edges []core.Edge, ghosts map[core.VertexID]Vertex) (candidates []core.Edge, pruned int, err error) {
	r := newReducer(ghosts)
	for _, e := range edges {
		cu, err := ds.endpoint(pe, r, e.U)
		if err != nil {
			return nil, 0, err
		}
		cv, err := ds.endpoint(pe, r, e.V)
		if err != nil {
			return nil, 0, err
		}
		if r.link(cu, cv) {
			candidates = append(candidates, e)
			continue
		}
		pruned++
	}
	ds.metrics.pruned.Add(float64(pruned))

	return candidates, pruned, nil
}
