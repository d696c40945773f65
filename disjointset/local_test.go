package disjointset

import (
	"context"
	"testing"
	"time"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/distarray"
	"github.com/katalvlaran/dsforest/internal/ctxlog"
	"github.com/katalvlaran/dsforest/pgas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSet(t *testing.T, pes int, n uint64, opts ...Option) *DisjointSet {
	t.Helper()
	w, err := pgas.NewWorld(pes, pgas.WithLogger(ctxlog.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	ds, err := NewWithVertices(w, n, n, opts...)
	require.NoError(t, err)

	return ds
}

// set overwrites the record of v on its owner.
func (ds *DisjointSet) set(t *testing.T, v Vertex) {
	t.Helper()
	w, err := ds.slot(ds.world.PE(ds.VertexOwner(v.Value)), v.Value)
	require.NoError(t, err)
	w.Store(v.word())
}

func (ds *DisjointSet) get(t *testing.T, id core.VertexID) Vertex {
	t.Helper()
	v, _, err := ds.load(ds.world.PE(ds.VertexOwner(id)), id)
	require.NoError(t, err)

	return v
}

func TestPackUnpack(t *testing.T) {
	for _, v := range []Vertex{Identity(0), {Value: 9, Parent: 3, Rank: 2}, {Value: 1, Parent: MaxCapacity - 1, Rank: maxRank}} {
		got, ok := unpack(v.Value, v.word())
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
	_, ok := unpack(4, 0)
	assert.False(t, ok, "zero word is unregistered")
}

func TestLess(t *testing.T) {
	assert.True(t, Less(Vertex{Value: 1, Rank: 0}, Vertex{Value: 9, Rank: 1}), "lower rank first")
	assert.True(t, Less(Vertex{Value: 9}, Vertex{Value: 1}), "equal rank: larger id first")
	assert.False(t, Less(Vertex{Value: 4}, Vertex{Value: 4}))
	assert.False(t, Less(Vertex{Value: 2}, Vertex{Value: 7}), "hooked children sit below smaller-id parents")
}

func TestUnionSplice(t *testing.T) {
	ds := newTestSet(t, 1, 6)
	pe := ds.world.PE(0)

	grafted, err := ds.unionSplice(pe, 4, 5)
	require.NoError(t, err)
	assert.True(t, grafted)
	assert.Equal(t, core.VertexID(4), ds.get(t, 5).Parent, "equal rank: larger id under smaller")

	grafted, err = ds.unionSplice(pe, 5, 4)
	require.NoError(t, err)
	assert.False(t, grafted)

	ds.set(t, Vertex{Value: 2, Parent: 2, Rank: 3})
	grafted, err = ds.unionSplice(pe, 5, 2)
	require.NoError(t, err)
	assert.True(t, grafted)
	assert.Equal(t, core.VertexID(2), ds.get(t, 4).Parent, "lower rank root under higher")
	assert.Equal(t, core.VertexID(2), ds.get(t, 5).Parent, "spliced onto the other side")
	assert.Equal(t, uint64(3), ds.get(t, 2).Rank, "local phase never raises ranks")
}

func TestLocalPhase_DefersNonResidentChains(t *testing.T) {
	// Block on 2 PEs: 0..3 on PE 0, 4..7 on PE 1.
	ds := newTestSet(t, 2, 8)
	pe := ds.world.PE(0)
	ds.set(t, Vertex{Value: 1, Parent: 6})

	tree, deferred, err := ds.localPhase(pe, core.EdgesFromPairs([][2]core.VertexID{{0, 1}, {2, 3}, {3, 2}}))
	require.NoError(t, err)
	assert.Equal(t, core.EdgesFromPairs([][2]core.VertexID{{0, 1}}), deferred)
	assert.Equal(t, core.EdgesFromPairs([][2]core.VertexID{{2, 3}}), tree)
	assert.Equal(t, core.VertexID(6), ds.get(t, 1).Parent, "deferred edges mutate nothing")
}

func TestLocalRoot_Policies(t *testing.T) {
	for _, rs := range []RootSearch{RootSearchBoundary, RootSearchFixpoint} {
		ds := newTestSet(t, 2, 8, WithRootSearch(rs))
		pe := ds.world.PE(0)
		ds.set(t, Vertex{Value: 0, Parent: 1})
		ds.set(t, Vertex{Value: 1, Parent: 2})

		r, resident, err := ds.localRoot(pe, 0)
		require.NoError(t, err)
		assert.True(t, resident, rs.String())
		assert.Equal(t, core.VertexID(2), r.Value, rs.String())

		ds.set(t, Vertex{Value: 2, Parent: 5})
		r, resident, err = ds.localRoot(pe, 0)
		require.NoError(t, err)
		assert.False(t, resident, rs.String())
		assert.Equal(t, core.VertexID(2), r.Value, "boundary vertex, %s", rs)
	}
}

func TestReducePhase(t *testing.T) {
	ds := newTestSet(t, 2, 8)
	pe := ds.world.PE(0)
	ghosts := map[core.VertexID]Vertex{4: Identity(4), 5: Identity(5), 6: Identity(6)}

	edges := core.EdgesFromPairs([][2]core.VertexID{
		{0, 4}, // kept: root 0 meets ghost 4
		{1, 4}, // kept: root 1 joins {0, 4}
		{0, 1}, // pruned
		{5, 6}, // kept
		{6, 5}, // pruned
		{4, 6}, // kept: joins the two classes
		{1, 5}, // pruned
	})
	candidates, pruned, err := ds.reducePhase(pe, edges, ghosts)
	require.NoError(t, err)
	assert.Equal(t, 3, pruned)
	assert.Equal(t, core.EdgesFromPairs([][2]core.VertexID{{0, 4}, {1, 4}, {5, 6}, {4, 6}}), candidates)
}

func TestReducePhase_SameLocalTree(t *testing.T) {
	ds := newTestSet(t, 2, 8)
	pe := ds.world.PE(0)
	ds.set(t, Vertex{Value: 3, Parent: 2})

	candidates, pruned, err := ds.reducePhase(pe,
		core.EdgesFromPairs([][2]core.VertexID{{2, 7}, {3, 7}}),
		map[core.VertexID]Vertex{7: Identity(7)})
	require.NoError(t, err)
	assert.Equal(t, 1, pruned, "3 and 2 share a local root")
	assert.Len(t, candidates, 1)
}

func runOn(t *testing.T, ds *DisjointSet, fn func(ctx context.Context, pe *pgas.PE) error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, ds.world.Run(ctx, func(ctx context.Context, pe *pgas.PE) error {
		if pe.ID() != 0 {
			return nil
		}
		if err := fn(ctx, pe); err != nil {
			return err
		}
		return pe.WaitAll(ctx)
	}))
}

func TestRankRaise_ClimbsToRoot(t *testing.T) {
	ds := newTestSet(t, 2, 8)
	ds.set(t, Vertex{Value: 1, Parent: 6})
	ds.set(t, Vertex{Value: 6, Parent: 6, Rank: 1})

	runOn(t, ds, func(ctx context.Context, pe *pgas.PE) error {
		_, err := pgas.Send[struct{}](ctx, pe, ds.VertexOwner(1), rankRaise{ds: ds, target: 1, rank: 3}).Await(ctx)
		return err
	})
	assert.Equal(t, uint64(0), ds.get(t, 1).Rank, "non-roots keep their rank")
	assert.Equal(t, uint64(3), ds.get(t, 6).Rank)

	runOn(t, ds, func(ctx context.Context, pe *pgas.PE) error {
		_, err := pgas.Send[struct{}](ctx, pe, ds.VertexOwner(6), rankRaise{ds: ds, target: 6, rank: 2}).Await(ctx)
		return err
	})
	assert.Equal(t, uint64(3), ds.get(t, 6).Rank, "ranks never drop")
}

func TestCompress_PointsChainAtRoot(t *testing.T) {
	// Chain 0 -> 4 -> 1 -> 5 -> 2 across both PEs.
	ds := newTestSet(t, 2, 8)
	for _, v := range []Vertex{{Value: 0, Parent: 4}, {Value: 4, Parent: 1, Rank: 1}, {Value: 1, Parent: 5, Rank: 2}, {Value: 5, Parent: 2, Rank: 3}, {Value: 2, Parent: 2, Rank: 4}} {
		ds.set(t, v)
	}

	runOn(t, ds, func(ctx context.Context, pe *pgas.PE) error {
		_, err := pgas.Send[struct{}](ctx, pe, ds.VertexOwner(0), compress{ds: ds, vertex: 0, root: Vertex{Value: 2, Parent: 2, Rank: 4}}).Await(ctx)
		return err
	})
	for _, v := range []core.VertexID{0, 4, 1, 5} {
		got := ds.get(t, v)
		assert.Equal(t, core.VertexID(2), got.Parent, "vertex %d", v)
	}
	assert.Equal(t, uint64(1), ds.get(t, 4).Rank, "compression keeps ranks")
}

func TestCompress_StopsAboveOvertakenRoot(t *testing.T) {
	// Chain 0 -> 1 -> 2 -> 3 -> 4 with ranks 0..4, where an earlier
	// compression already moved 1 past 2 onto 3. Block on 2 PEs: 0..2 on
	// PE 0, 3..5 on PE 1.
	ds := newTestSet(t, 2, 6)
	for _, v := range []Vertex{{Value: 0, Parent: 1}, {Value: 1, Parent: 3, Rank: 1}, {Value: 2, Parent: 3, Rank: 2}, {Value: 3, Parent: 4, Rank: 3}, {Value: 4, Parent: 4, Rank: 4}} {
		ds.set(t, v)
	}

	// 2 was a rank 2 root when the compression was posted.
	runOn(t, ds, func(ctx context.Context, pe *pgas.PE) error {
		_, err := pgas.Send[struct{}](ctx, pe, ds.VertexOwner(0), compress{ds: ds, vertex: 0, root: Vertex{Value: 2, Parent: 2, Rank: 2}}).Await(ctx)
		return err
	})
	assert.Equal(t, core.VertexID(2), ds.get(t, 0).Parent)
	assert.Equal(t, core.VertexID(2), ds.get(t, 1).Parent)
	assert.Equal(t, core.VertexID(3), ds.get(t, 2).Parent, "root side untouched")
	assert.Equal(t, core.VertexID(4), ds.get(t, 3).Parent, "vertices above 2 are never pointed at it")

	for id := core.VertexID(0); id < 6; id++ {
		v, steps := ds.get(t, id), 0
		for !v.IsRoot() {
			require.Less(t, steps, 6, "parent cycle through vertex %d", id)
			v = ds.get(t, v.Parent)
			steps++
		}
		if id <= 4 {
			assert.Equal(t, core.VertexID(4), v.Value, "vertex %d", id)
		}
	}
}

func TestFindUnion_LinksAcrossPEs(t *testing.T) {
	ds := newTestSet(t, 2, 8)
	ds.set(t, Vertex{Value: 0, Parent: 5})
	ds.set(t, Vertex{Value: 5, Parent: 5, Rank: 1})

	var joined, again bool
	runOn(t, ds, func(ctx context.Context, pe *pgas.PE) error {
		var err error
		if joined, err = pgas.Exec[bool](ctx, pe, newFindUnion(ds, core.NewEdge(0, 7))).Await(ctx); err != nil {
			return err
		}
		again, err = pgas.Exec[bool](ctx, pe, newFindUnion(ds, core.NewEdge(7, 0))).Await(ctx)
		return err
	})

	assert.True(t, joined)
	assert.False(t, again)
	assert.Equal(t, core.VertexID(5), ds.get(t, 7).Parent, "rank 0 root under rank 1 root")
	assert.Equal(t, uint64(1), ds.get(t, 5).Rank, "unequal ranks raise nothing")
}

func TestHookReq_Stages(t *testing.T) {
	ds := newTestSet(t, 2, 8, WithProtocol(ProtocolHook))
	ds.set(t, Vertex{Value: 6, Parent: 1})

	var fwd, bwd bool
	runOn(t, ds, func(ctx context.Context, pe *pgas.PE) error {
		var err error
		// u=7 is a root and v's grandparent 1 is smaller: hook 7 under 1.
		if fwd, err = pgas.Exec[bool](ctx, pe, hookReq{ds: ds, u: 7, v: 6}).Await(ctx); err != nil {
			return err
		}
		bwd, err = pgas.Exec[bool](ctx, pe, hookReq{ds: ds, u: 6, v: 7}).Await(ctx)
		return err
	})

	assert.True(t, fwd)
	assert.False(t, bwd, "same tree after the first hook")
	assert.Equal(t, core.VertexID(1), ds.get(t, 7).Parent)
}

func TestNew_UsesExplicitDistribution(t *testing.T) {
	w, err := pgas.NewWorld(2, pgas.WithLogger(ctxlog.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ds, err := New(w, 8, distarray.Cyclic, WithDistribution(distarray.Block))
	require.NoError(t, err)
	assert.Equal(t, distarray.Cyclic, ds.layout.Distribution())
	assert.Equal(t, 1, ds.VertexOwner(3))
}
