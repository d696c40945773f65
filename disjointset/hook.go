// SPDX-License-Identifier: MIT
//
// File: hook.go
// Role: ProtocolHook: staged conditional hooking plus distributed pointer jumping.
//
// Every round first flattens all trees into stars by pointer jumping, then
// evaluates each candidate edge in both directions. A direction (u, v) hooks
// u's parent under v's grandparent when u's parent is a root and the
// grandparent has the smaller id. Parents therefore always carry smaller ids
// than their children. Rounds repeat until no hook succeeds anywhere.

package disjointset

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/pgas"
)

// Stage is the progress of a hook request.
type Stage uint8

const (
	// SeekVParent reads v's parent at v's owner.
	SeekVParent Stage = iota
	// SeekVGrandparent reads the parent of v's parent at its owner.
	SeekVGrandparent
	// SeekUParent reads u's parent at u's owner.
	SeekUParent
	// Compare hooks u's parent under v's grandparent at u's parent's owner.
	Compare
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case SeekVParent:
		return "seek-v-parent"
	case SeekVGrandparent:
		return "seek-v-grandparent"
	case SeekUParent:
		return "seek-u-parent"
	case Compare:
		return "compare"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

type hookReq struct {
	ds           *DisjointSet
	u, v         core.VertexID
	stage        Stage
	vParent      core.VertexID
	vGrandparent core.VertexID
	uParent      core.VertexID
}

// at returns the vertex whose owner must run the current stage.
func (m hookReq) at() core.VertexID {
	switch m.stage {
	case SeekVParent:
		return m.v
	case SeekVGrandparent:
		return m.vParent
	case SeekUParent:
		return m.u
	default:
		return m.uParent
	}
}

func (m hookReq) Handle(_ context.Context, pe *pgas.PE, reply *pgas.Reply[bool]) {
	ds := m.ds
	for {
		if owner := ds.VertexOwner(m.at()); owner != pe.ID() {
			ds.metrics.forwarded.Inc()
			reply.Forward(owner, m)
			return
		}
		x, w, err := ds.load(pe, m.at())
		if err != nil {
			reply.Fail(err)
			return
		}

		switch m.stage {
		case SeekVParent:
			m.vParent, m.stage = x.Parent, SeekVGrandparent
		case SeekVGrandparent:
			m.vGrandparent, m.stage = x.Parent, SeekUParent
		case SeekUParent:
			m.uParent, m.stage = x.Parent, Compare
		case Compare:
			if !x.IsRoot() || m.vGrandparent >= x.Value {
				reply.Resolve(false)
				return
			}
			if w.CompareAndSwap(x.word(), pack(m.vGrandparent, x.Rank)) {
				reply.Resolve(true)
				return
			}
			ds.metrics.casRetries.Inc()
		}
	}
}

// jumpToStars repeats pointer jumping over pe's vertices until no vertex on
// any PE changes. Collective.
func (ds *DisjointSet) jumpToStars(ctx context.Context, pe *pgas.PE) error {
	shard := ds.table.Local(pe)
	for {
		var changed int64
		var jumpErr error
		shard.Range(func(id, word uint64) bool {
			x, ok := unpack(id, word)
			if !ok || x.IsRoot() {
				return true
			}
			p, err := ds.At(ctx, pe, x.Parent)
			if err != nil {
				jumpErr = err
				return false
			}
			if p.IsRoot() {
				return true
			}
			if _, swapped, err := ds.CompareAndExchange(ctx, pe, x, Vertex{Value: x.Value, Parent: p.Parent, Rank: x.Rank}); err != nil {
				jumpErr = err
				return false
			} else if swapped {
				changed++
			}
			return true
		})
		if err := pe.Agree(ctx, jumpErr); err != nil {
			return err
		}
		total, err := pe.AllReduceSum(ctx, changed)
		if err != nil {
			return err
		}
		ds.metrics.compressions.Add(float64(changed))
		if total == 0 {
			return nil
		}
	}
}

// hookPhase runs hook rounds over pe's candidates and returns the edges whose
// hook joined two trees. Collective.
func (ds *DisjointSet) hookPhase(ctx context.Context, pe *pgas.PE, candidates []core.Edge) ([]core.Edge, error) {
	var accepted []core.Edge
	pending := candidates
	for {
		if err := ds.jumpToStars(ctx, pe); err != nil {
			return nil, err
		}

		futs := make([]*pgas.Future[bool], 0, 2*len(pending))
		for _, e := range pending {
			futs = append(futs,
				pgas.Exec[bool](ctx, pe, hookReq{ds: ds, u: e.U, v: e.V}),
				pgas.Exec[bool](ctx, pe, hookReq{ds: ds, u: e.V, v: e.U}))
		}

		var hooked int64
		var roundErr error
		next := pending[:0:0]
		for i, e := range pending {
			fwd, err := futs[2*i].Await(ctx)
			if err != nil {
				roundErr = err
				break
			}
			bwd, err := futs[2*i+1].Await(ctx)
			if err != nil {
				roundErr = err
				break
			}
			if fwd || bwd {
				accepted = append(accepted, e)
				hooked++
				continue
			}
			next = append(next, e)
		}
		if err := pe.Agree(ctx, roundErr); err != nil {
			return nil, err
		}

		total, err := pe.AllReduceSum(ctx, hooked)
		if err != nil {
			return nil, err
		}
		ds.metrics.hookRounds.Inc()
		if total == 0 {
			return accepted, nil
		}
		pending = next
	}
}
