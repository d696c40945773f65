package serialcc_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/serialcc"
	"github.com/stretchr/testify/assert"
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

// randomEdges draws m edges over [0, n) from a fixed seed.
func randomEdges(n, m int, seed int64) []core.Edge {
	r := rand.New(rand.NewSource(seed))
	out := make([]core.Edge, m)
	for i := range out {
		out[i] = core.NewEdge(core.VertexID(r.Intn(n)), core.VertexID(r.Intn(n)))
	}

	return out
}

func graphOf(n int, edges []core.Edge) *core.Graph {
	g := core.NewGraph(core.WithLoops(), core.WithMultiEdges())
	g.AddVertexRange(n)
	_ = g.AddEdges(edges...)

	return g
}

func TestSpliceSet_TwoIslands(t *testing.T) {
	s := serialcc.NewSpliceSet(14)
	var grafts int
	for _, e := range twoIslands {
		joined, err := s.UnionSplice(e.U, e.V)
		require.NoError(t, err)
		if joined {
			grafts++
		}
	}

	assert.Equal(t, 12, grafts)
	assert.Equal(t, twoIslandsPartition, serialcc.Partition(serialcc.Group(serialcc.Labels(s.Roots()))))
}

func TestSpliceSet_UnionByRank(t *testing.T) {
	s := serialcc.NewSpliceSet(4)

	joined, err := s.UnionByRank(2, 3)
	require.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, core.VertexID(2), s.Parent(3), "equal rank: larger id goes under smaller")
	assert.Equal(t, uint32(1), s.Rank(2))

	_, err = s.UnionByRank(0, 3)
	require.NoError(t, err)
	assert.Equal(t, core.VertexID(2), s.Parent(0), "lower rank goes under higher")

	joined, err = s.UnionByRank(0, 2)
	require.NoError(t, err)
	assert.False(t, joined)
}

func TestSpliceSet_OutOfRange(t *testing.T) {
	s := serialcc.NewSpliceSet(3)

	_, err := s.Find(3)
	assert.ErrorIs(t, err, serialcc.ErrVertexOutOfRange)
	_, err = s.UnionSplice(0, 7)
	assert.ErrorIs(t, err, serialcc.ErrVertexOutOfRange)
	_, err = s.InterleavedFind(9, 0)
	assert.ErrorIs(t, err, serialcc.ErrVertexOutOfRange)
}

func TestSpliceSet_InterleavedFindMatchesFind(t *testing.T) {
	const n = 200
	s := serialcc.NewSpliceSet(n)
	for i, e := range randomEdges(n, 150, 7) {
		var err error
		if i%2 == 0 {
			_, err = s.UnionSplice(e.U, e.V)
		} else {
			_, err = s.UnionByRank(e.U, e.V)
		}
		require.NoError(t, err)
	}

	r := rand.New(rand.NewSource(11))
	for range 2000 {
		x, y := core.VertexID(r.Intn(n)), core.VertexID(r.Intn(n))
		same, err := s.InterleavedFind(x, y)
		require.NoError(t, err)
		rx, _ := s.Find(x)
		ry, _ := s.Find(y)
		assert.Equal(t, rx == ry, same, "pair %d,%d", x, y)
	}
}

func TestSpliceSet_SelfAndRepeat(t *testing.T) {
	s := serialcc.NewSpliceSet(2)

	joined, err := s.UnionSplice(1, 1)
	require.NoError(t, err)
	assert.False(t, joined)

	joined, _ = s.UnionSplice(0, 1)
	assert.True(t, joined)
	joined, _ = s.UnionSplice(1, 0)
	assert.False(t, joined)

	same, _ := s.InterleavedFind(0, 0)
	assert.True(t, same)
}

func TestCSR_Rows(t *testing.T) {
	c, err := serialcc.NewCSR(4, core.EdgesFromPairs([][2]core.VertexID{{2, 1}, {0, 3}, {2, 0}}))
	require.NoError(t, err)

	assert.Equal(t, uint64(4), c.Rows())
	assert.Equal(t, []uint64{0, 1, 1, 3, 3}, c.Offsets)
	assert.Equal(t, []core.VertexID{3}, c.Row(0))
	assert.Empty(t, c.Row(1))
	assert.Equal(t, []core.VertexID{1, 0}, c.Row(2))

	_, err = serialcc.NewCSR(2, core.EdgesFromPairs([][2]core.VertexID{{0, 2}}))
	assert.ErrorIs(t, err, serialcc.ErrVertexOutOfRange)
}

func TestShiloachVishkin_TwoIslands(t *testing.T) {
	c, err := serialcc.NewCSR(14, twoIslands)
	require.NoError(t, err)

	d := serialcc.ShiloachVishkin(c)
	for _, comp := range twoIslandsPartition {
		for _, v := range comp {
			assert.Equal(t, comp[0], d[v], "vertex %d", v)
		}
	}
}

func TestKernelsAgree(t *testing.T) {
	for _, tc := range []struct{ n, m int }{{1, 0}, {10, 3}, {100, 60}, {300, 290}, {500, 2000}} {
		edges := randomEdges(tc.n, tc.m, int64(tc.n*31+tc.m))

		c, err := serialcc.NewCSR(uint64(tc.n), edges)
		require.NoError(t, err)
		sv := serialcc.Labels(serialcc.ShiloachVishkin(c))
		bfs := serialcc.ComponentsBFS(graphOf(tc.n, edges))
		assert.Equal(t, sv, bfs, "n=%d m=%d", tc.n, tc.m)

		s := serialcc.NewSpliceSet(uint64(tc.n))
		for _, e := range edges {
			_, err := s.UnionSplice(e.U, e.V)
			require.NoError(t, err)
		}
		assert.Equal(t,
			serialcc.Partition(serialcc.Group(sv)),
			serialcc.Partition(serialcc.Group(serialcc.Labels(s.Roots()))))
	}
}

func TestValidateSpanningForest(t *testing.T) {
	triangle := core.EdgesFromPairs([][2]core.VertexID{{0, 1}, {1, 2}, {0, 2}})

	assert.NoError(t, serialcc.ValidateSpanningForest(3, triangle,
		core.EdgesFromPairs([][2]core.VertexID{{2, 1}, {0, 2}})))
	assert.NoError(t, serialcc.ValidateSpanningForest(5, nil, nil))

	err := serialcc.ValidateSpanningForest(3, triangle, core.EdgesFromPairs([][2]core.VertexID{{0, 1}}))
	assert.ErrorIs(t, err, serialcc.ErrNotSpanning)

	err = serialcc.ValidateSpanningForest(3, triangle, triangle)
	assert.ErrorIs(t, err, serialcc.ErrCycle)

	err = serialcc.ValidateSpanningForest(4, triangle, core.EdgesFromPairs([][2]core.VertexID{{0, 1}, {2, 3}}))
	assert.ErrorIs(t, err, serialcc.ErrForeignEdge)
}

func TestValidateSpanningForest_SpliceGrafts(t *testing.T) {
	edges := randomEdges(400, 500, 3)
	s := serialcc.NewSpliceSet(400)
	var forest []core.Edge
	for _, e := range edges {
		if joined, _ := s.UnionSplice(e.U, e.V); joined {
			forest = append(forest, e)
		}
	}

	assert.NoError(t, serialcc.ValidateSpanningForest(400, edges, forest))
}
