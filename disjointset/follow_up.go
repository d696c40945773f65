// SPDX-License-Identifier: MIT
//
// File: follow_up.go
// Role: fire-and-forget rank raise and path compression messages.
//
// Both are idempotent and commute with each other and with links: every
// mutation is a compare-and-swap against the word just read, never against
// a value carried in the message.

package disjointset

import (
	"context"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/pgas"
)

// rankRaise lifts the root above target to at least rank. Only roots are
// raised; a non-root with a smaller rank passes the request to its parent,
// whose rank is never below its own.
type rankRaise struct {
	ds     *DisjointSet
	target core.VertexID
	rank   uint64
}

func (m rankRaise) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[struct{}]) {
	ds := m.ds
	want := min(m.rank, maxRank)
	for {
		x, w, err := ds.load(pe, m.target)
		if err != nil {
			reply.Fail(err)
			return
		}
		if x.Rank >= want {
			break
		}
		if !x.IsRoot() {
			m.target = x.Parent
			if owner := ds.VertexOwner(m.target); owner != pe.ID() {
				ds.metrics.forwarded.Inc()
				reply.Forward(owner, m)
				return
			}
			continue
		}
		if w.CompareAndSwap(x.word(), pack(x.Value, want)) {
			break
		}
		ds.metrics.casRetries.Inc()
	}
	reply.Resolve(struct{}{})
}

// compress re-points the vertices on the chain from vertex directly at
// root while they stay strictly below root in the Less order. root is the
// record observed when the message was posted; its key never decreases, so
// a vertex a concurrent compression already moved above root is left alone.
type compress struct {
	ds     *DisjointSet
	vertex core.VertexID
	root   Vertex
}

func (m compress) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[struct{}]) {
	ds := m.ds
	for {
		x, w, err := ds.load(pe, m.vertex)
		if err != nil {
			reply.Fail(err)
			return
		}
		if x.IsRoot() || x.Parent == m.root.Value || !Less(x, m.root) {
			break
		}
		if w.CompareAndSwap(x.word(), pack(m.root.Value, x.Rank)) {
			ds.metrics.compressions.Inc()
		}
		m.vertex = x.Parent
		if owner := ds.VertexOwner(m.vertex); owner != pe.ID() {
			ds.metrics.forwarded.Inc()
			reply.Forward(owner, m)
			return
		}
	}
	reply.Resolve(struct{}{})
}
