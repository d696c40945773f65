package disjointset_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/disjointset"
	"github.com/katalvlaran/dsforest/distarray"
	"github.com/katalvlaran/dsforest/internal/ctxlog"
	"github.com/katalvlaran/dsforest/pgas"
	"github.com/katalvlaran/dsforest/serialcc"
	"github.com/stretchr/testify/require"
)

// twoIslands is a 14-vertex graph with components
// {0,1,2,3,4,5,7,10} and {6,8,9,11,12,13}.
var twoIslands = core.EdgesFromPairs([][2]core.VertexID{
	{0, 1}, {0, 3}, {1, 2}, {1, 5}, {1, 10}, {2, 4}, {2, 5}, {3, 4}, {4, 5},
	{5, 7}, {5, 10}, {6, 8}, {6, 9}, {8, 11}, {9, 11}, {11, 12}, {12, 13},
})

var twoIslandsPartition = [][]core.VertexID{
	{0, 1, 2, 3, 4, 5, 7, 10},
	{6, 8, 9, 11, 12, 13},
}

func newWorld(t testing.TB, n int) *pgas.World {
	t.Helper()
	w, err := pgas.NewWorld(n, pgas.WithLogger(ctxlog.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	return w
}

func testCtx(t testing.TB) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	return ctx
}

// epochResult is what PE 0 gathers after one ProcessEdges.
type epochResult struct {
	tree       []core.Edge
	partition  [][]core.VertexID
	roots      map[core.VertexID]core.VertexID
	stats      []disjointset.PEStats
	localTrees [][]core.Edge
}

// runEpoch spreads edges round-robin over the PEs, processes them and
// gathers the results on PE 0.
func runEpoch(t testing.TB, ds *disjointset.DisjointSet, edges []core.Edge) epochResult {
	t.Helper()
	ctx := testCtx(t)
	w := ds.World()

	var res epochResult
	res.localTrees = make([][]core.Edge, w.NumPEs())
	var mu sync.Mutex
	err := w.Run(ctx, func(ctx context.Context, pe *pgas.PE) error {
		var mine []core.Edge
		for i := pe.ID(); i < len(edges); i += pe.NumPEs() {
			mine = append(mine, edges[i])
		}
		if err := ds.AddEdges(ctx, pe, mine); err != nil {
			return err
		}
		if err := ds.ProcessEdges(ctx, pe); err != nil {
			return err
		}
		mu.Lock()
		res.localTrees[pe.ID()] = ds.LocalTree(pe)
		mu.Unlock()
		if pe.ID() != 0 {
			return nil
		}

		var err error
		if res.tree, err = ds.SpanningTree(ctx, pe); err != nil {
			return err
		}
		comps, err := ds.Components(ctx, pe)
		if err != nil {
			return err
		}
		res.partition = serialcc.Partition(comps)
		if res.roots, err = ds.Roots(ctx, pe); err != nil {
			return err
		}
		res.stats, err = ds.Stats(ctx, pe)
		return err
	})
	require.NoError(t, err)

	return res
}

// registerAll registers vertices [0, n) from whichever PE owns them.
func registerAll(t testing.TB, ds *disjointset.DisjointSet, n uint64) {
	t.Helper()
	ctx := testCtx(t)
	err := ds.World().Run(ctx, func(ctx context.Context, pe *pgas.PE) error {
		var futs []*pgas.Future[struct{}]
		for id := uint64(0); id < n; id++ {
			if ds.VertexOwner(id) == pe.ID() {
				futs = append(futs, ds.AddNewVertex(ctx, pe, id))
			}
		}
		return pgas.AwaitAll(ctx, futs...)
	})
	require.NoError(t, err)
}

// reference returns the component partition of [0, n) under edges.
func reference(t testing.TB, n uint64, edges []core.Edge) [][]core.VertexID {
	t.Helper()
	c, err := serialcc.NewCSR(n, edges)
	require.NoError(t, err)

	return serialcc.Partition(serialcc.Group(serialcc.Labels(serialcc.ShiloachVishkin(c))))
}

// randomEdges draws m edges over [0, n) from seed.
func randomEdges(n, m int, seed int64) []core.Edge {
	r := rand.New(rand.NewSource(seed))
	out := make([]core.Edge, m)
	for i := range out {
		out[i] = core.NewEdge(core.VertexID(r.Intn(n)), core.VertexID(r.Intn(n)))
	}

	return out
}

func newSet(t testing.TB, pes int, n uint64, opts ...disjointset.Option) *disjointset.DisjointSet {
	t.Helper()
	ds, err := disjointset.NewWithVertices(newWorld(t, pes), n, n, opts...)
	require.NoError(t, err)

	return ds
}

var distributions = []distarray.Distribution{distarray.Block, distarray.Cyclic}
