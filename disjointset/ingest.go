// SPDX-License-Identifier: MIT
//
// File: ingest.go
// Role: AddNewVertex and AddEdge: classification, ghost registration, routing to the edge owner.

package disjointset

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/pgas"
)

// AddNewVertex registers id as a singleton. Registering an existing vertex is
// a no-op, so records already merged by an earlier epoch keep their parent.
//
// Errors (through the Future):
//   - ErrVertexOutOfRange if id ≥ capacity.
func (ds *DisjointSet) AddNewVertex(ctx context.Context, pe *pgas.PE, id core.VertexID) *pgas.Future[struct{}] {
	if err := ds.checkRange(id); err != nil {
		return pgas.Failed[struct{}](err)
	}
	ds.ingested.Store(true)

	return pgas.Exec[struct{}](ctx, pe, registerVertex{ds: ds, id: id})
}

// AddEdge classifies e and ships it, with any endpoints its owner does not
// hold, to the edge owner. The Future resolves once the owner has stored it.
//
// Errors (through the Future):
//   - ErrVertexOutOfRange if an endpoint ≥ capacity.
func (ds *DisjointSet) AddEdge(ctx context.Context, pe *pgas.PE, e core.Edge) *pgas.Future[struct{}] {
	if err := ds.checkRange(e.U); err != nil {
		return pgas.Failed[struct{}](fmt.Errorf("disjointset: AddEdge(%s): %w", e, err))
	}
	if err := ds.checkRange(e.V); err != nil {
		return pgas.Failed[struct{}](fmt.Errorf("disjointset: AddEdge(%s): %w", e, err))
	}

	owner := ds.EdgeOwner(e)
	msg := insertEdge{ds: ds, edge: e, local: ds.IsLocalEdge(e)}
	if ds.VertexOwner(e.U) != owner {
		msg.ghosts = append(msg.ghosts, e.U)
	}
	if ds.VertexOwner(e.V) != owner && e.V != e.U {
		msg.ghosts = append(msg.ghosts, e.V)
	}
	ds.ingested.Store(true)

	return pgas.Send[struct{}](ctx, pe, owner, msg)
}

// AddEdges ingests every edge and waits for all of them.
func (ds *DisjointSet) AddEdges(ctx context.Context, pe *pgas.PE, edges []core.Edge) error {
	futs := make([]*pgas.Future[struct{}], len(edges))
	for i, e := range edges {
		futs[i] = ds.AddEdge(ctx, pe, e)
	}

	return pgas.AwaitAll(ctx, futs...)
}

// registerVertex installs an identity record at the vertex owner.
type registerVertex struct {
	ds *DisjointSet
	id core.VertexID
}

func (m registerVertex) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[struct{}]) {
	if owner := m.ds.VertexOwner(m.id); owner != pe.ID() {
		reply.Forward(owner, m)
		return
	}
	w, err := m.ds.slot(pe, m.id)
	if err != nil {
		reply.Fail(err)
		return
	}
	w.CompareAndSwap(0, Identity(m.id).word())
	reply.Resolve(struct{}{})
}

// insertEdge stores an edge on its owner. Ghost entries are written before
// the edge is appended, so a reader of the edge lists never sees an edge
// whose ghosts are missing.
type insertEdge struct {
	ds     *DisjointSet
	edge   core.Edge
	local  bool
	ghosts []core.VertexID
}

func (m insertEdge) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[struct{}]) {
	st := m.ds.pes[pe.ID()]

	if len(m.ghosts) > 0 {
		st.ghostMu.Lock()
		for _, g := range m.ghosts {
			if _, ok := st.ghosts[g]; !ok {
				st.ghosts[g] = Identity(g)
			}
		}
		st.ghostMu.Unlock()
	}

	st.edgeMu.Lock()
	if m.local {
		st.localEdges = append(st.localEdges, m.edge)
	} else {
		st.spanningEdges = append(st.spanningEdges, m.edge)
	}
	st.edgeMu.Unlock()

	reply.Resolve(struct{}{})
}
