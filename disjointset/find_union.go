// SPDX-License-Identifier: MIT
//
// File: find_union.go
// Role: the self-forwarding find-union message and the global root lookup.
//
// A findUnion climbs u to its global root, then v, hopping to whichever PE
// owns the next parent, and finally links the lesser root (Less) under the
// greater one with a compare-and-swap at the lesser root's owner. The swap
// expects the exact root word it observed, so a root that was linked or
// re-ranked meanwhile makes it fail; the message then climbs again from the
// roots it knew.

package disjointset

import (
	"context"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/internal/ctxlog"
	"github.com/katalvlaran/dsforest/pgas"
)

type climbStage uint8

const (
	climbU climbStage = iota
	climbV
	link
)

type findUnion struct {
	ds    *DisjointSet
	edge  core.Edge
	stage climbStage
	u, v  core.VertexID // climb cursors
	rootU Vertex        // valid from climbV on
	rootV Vertex        // valid in link
}

func newFindUnion(ds *DisjointSet, e core.Edge) findUnion {
	return findUnion{ds: ds, edge: e, stage: climbU, u: e.U, v: e.V}
}

func (m findUnion) Handle(ctx context.Context, pe *pgas.PE, reply *pgas.Reply[bool]) {
	ds := m.ds
	for {
		switch m.stage {
		case climbU, climbV:
			cursor := &m.u
			if m.stage == climbV {
				cursor = &m.v
			}
			if owner := ds.VertexOwner(*cursor); owner != pe.ID() {
				ds.metrics.forwarded.Inc()
				reply.Forward(owner, m)
				return
			}
			root, next, found, err := ds.climb(pe, *cursor)
			if err != nil {
				reply.Fail(err)
				return
			}
			if !found {
				*cursor = next
				ds.metrics.forwarded.Inc()
				reply.Forward(ds.VertexOwner(next), m)
				return
			}
			if m.stage == climbU {
				m.rootU, m.stage = root, climbV
			} else {
				m.rootV, m.stage = root, link
			}

		case link:
			if m.rootU.Equal(m.rootV) {
				ds.compressFrom(pe, m.edge, m.rootU)
				reply.Resolve(false)
				return
			}
			child, parent := m.rootU, m.rootV
			if Less(m.rootV, m.rootU) {
				child, parent = m.rootV, m.rootU
			}
			if owner := ds.VertexOwner(child.Value); owner != pe.ID() {
				ds.metrics.forwarded.Inc()
				reply.Forward(owner, m)
				return
			}

			w, err := ds.slot(pe, child.Value)
			if err != nil {
				reply.Fail(err)
				return
			}
			if !w.CompareAndSwap(child.word(), pack(parent.Value, child.Rank)) {
				ds.metrics.casRetries.Inc()
				m.u, m.v, m.stage = m.rootU.Value, m.rootV.Value, climbU
				continue
			}

			ctxlog.FromContext(ctx).Debug("linked roots",
				"edge", m.edge.String(), "child", child.String(), "parent", parent.String())
			if child.Rank == parent.Rank {
				ds.metrics.rankRaises.Inc()
				ds.post(pe, parent.Value, rankRaise{ds: ds, target: parent.Value, rank: parent.Rank + 1})
			}
			ds.compressFrom(pe, m.edge, parent)
			reply.Resolve(true)
			return
		}
	}
}

// climb follows parents from id, which pe owns, while they stay on pe. It
// returns the root if reached, otherwise the first parent owned elsewhere.
func (ds *DisjointSet) climb(pe *pgas.PE, id core.VertexID) (root Vertex, next core.VertexID, found bool, err error) {
	v, _, err := ds.load(pe, id)
	if err != nil {
		return Vertex{}, 0, false, err
	}
	for !v.IsRoot() {
		if ds.VertexOwner(v.Parent) != pe.ID() {
			return Vertex{}, v.Parent, false, nil
		}
		if v, _, err = ds.load(pe, v.Parent); err != nil {
			return Vertex{}, 0, false, err
		}
	}

	return v, 0, true, nil
}

// post sends a follow-up to the owner of target without waiting for it.
func (ds *DisjointSet) post(pe *pgas.PE, target core.VertexID, msg pgas.Message[struct{}]) {
	pgas.Post[struct{}](pe, ds.VertexOwner(target), msg)
}

// compressFrom posts compression of both endpoint chains toward root.
func (ds *DisjointSet) compressFrom(pe *pgas.PE, e core.Edge, root Vertex) {
	if !ds.cfg.compression {
		return
	}
	for _, x := range [...]core.VertexID{e.U, e.V} {
		if x != root.Value {
			ds.post(pe, x, compress{ds: ds, vertex: x, root: root})
		}
	}
}

// findRoot resolves the global root record of a vertex.
type findRoot struct {
	ds     *DisjointSet
	cursor core.VertexID
}

func (m findRoot) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[Vertex]) {
	if owner := m.ds.VertexOwner(m.cursor); owner != pe.ID() {
		reply.Forward(owner, m)
		return
	}
	root, next, found, err := m.ds.climb(pe, m.cursor)
	if err != nil {
		reply.Fail(err)
		return
	}
	if !found {
		m.cursor = next
		reply.Forward(m.ds.VertexOwner(next), m)
		return
	}
	reply.Resolve(root)
}

// GlobalRoot returns the current global root record of v.
//
// Errors:
//   - ErrVertexOutOfRange, ErrUnknownVertex.
func (ds *DisjointSet) GlobalRoot(ctx context.Context, pe *pgas.PE, v core.VertexID) (Vertex, error) {
	if err := ds.checkRange(v); err != nil {
		return Vertex{}, err
	}

	return pgas.Exec[Vertex](ctx, pe, findRoot{ds: ds, cursor: v}).Await(ctx)
}
