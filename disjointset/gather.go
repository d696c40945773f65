// SPDX-License-Identifier: MIT
//
// File: gather.go
// Role: result gathering (SpanningTree, Roots, Components, Stats) and Reset.

package disjointset

import (
	"context"
	"maps"
	"slices"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/pgas"
)

// treeReq returns a PE's local tree followed by its accepted spanning edges.
type treeReq struct{ ds *DisjointSet }

func (m treeReq) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[[]core.Edge]) {
	st := m.ds.pes[pe.ID()]
	st.treeMu.Lock()
	out := make([]core.Edge, 0, len(st.localTree)+len(st.spanningTree))
	out = append(out, st.localTree...)
	out = append(out, st.spanningTree...)
	st.treeMu.Unlock()
	reply.Resolve(out)
}

// SpanningTree gathers the tree edges of the last epoch from every PE,
// concatenated in PE order.
func (ds *DisjointSet) SpanningTree(ctx context.Context, pe *pgas.PE) ([]core.Edge, error) {
	parts, err := pgas.Broadcast[[]core.Edge](ctx, pe, treeReq{ds: ds})
	if err != nil {
		return nil, err
	}

	return slices.Concat(parts...), nil
}

// LocalTree returns the tree edges pe's local phase found in the last epoch.
func (ds *DisjointSet) LocalTree(pe *pgas.PE) []core.Edge {
	st := ds.pes[pe.ID()]
	st.treeMu.Lock()
	defer st.treeMu.Unlock()

	return slices.Clone(st.localTree)
}

type statsReq struct{ ds *DisjointSet }

func (m statsReq) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[PEStats]) {
	st := m.ds.pes[pe.ID()]
	st.treeMu.Lock()
	s := st.stats
	st.treeMu.Unlock()
	reply.Resolve(s)
}

// Stats gathers every PE's counters for the last epoch, indexed by PE.
func (ds *DisjointSet) Stats(ctx context.Context, pe *pgas.PE) ([]PEStats, error) {
	return pgas.Broadcast[PEStats](ctx, pe, statsReq{ds: ds})
}

// registeredReq lists the registered vertices of a PE's shard.
type registeredReq struct{ ds *DisjointSet }

func (m registeredReq) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[[]core.VertexID]) {
	var ids []core.VertexID
	m.ds.table.Local(pe).Range(func(id, word uint64) bool {
		if word != 0 {
			ids = append(ids, id)
		}
		return true
	})
	reply.Resolve(ids)
}

// Roots maps every registered vertex to its current global root.
func (ds *DisjointSet) Roots(ctx context.Context, pe *pgas.PE) (map[core.VertexID]core.VertexID, error) {
	parts, err := pgas.Broadcast[[]core.VertexID](ctx, pe, registeredReq{ds: ds})
	if err != nil {
		return nil, err
	}
	ids := slices.Concat(parts...)

	futs := make([]*pgas.Future[Vertex], len(ids))
	for i, id := range ids {
		futs[i] = pgas.Exec[Vertex](ctx, pe, findRoot{ds: ds, cursor: id})
	}
	roots := make(map[core.VertexID]core.VertexID, len(ids))
	for i, f := range futs {
		r, err := f.Await(ctx)
		if err != nil {
			return nil, err
		}
		roots[ids[i]] = r.Value
	}

	return roots, nil
}

// Components groups registered vertices by global root; members are sorted.
func (ds *DisjointSet) Components(ctx context.Context, pe *pgas.PE) (map[core.VertexID][]core.VertexID, error) {
	roots, err := ds.Roots(ctx, pe)
	if err != nil {
		return nil, err
	}

	comps := make(map[core.VertexID][]core.VertexID)
	for _, v := range slices.Sorted(maps.Keys(roots)) {
		r := roots[v]
		comps[r] = append(comps[r], v)
	}

	return comps, nil
}

// Reset drops everything ingested but not yet processed, the ghost maps and
// the last epoch's tree edges. The vertex table keeps its state. Collective.
func (ds *DisjointSet) Reset(ctx context.Context, pe *pgas.PE) error {
	if err := pe.Quiesce(ctx); err != nil {
		return err
	}
	st := ds.pes[pe.ID()]
	st.takeEpoch()
	st.treeMu.Lock()
	st.stats = PEStats{PE: pe.ID()}
	st.treeMu.Unlock()
	if pe.ID() == 0 {
		ds.ingested.Store(false)
	}

	return pe.Barrier(ctx)
}
