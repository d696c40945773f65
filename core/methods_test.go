package core_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/dsforest/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddEdge_Policies verifies loop and multi-edge admission rules.
func TestAddEdge_Policies(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddEdge(0, 1))
	assert.ErrorIs(t, g.AddEdge(1, 0), core.ErrMultiEdgeNotAllowed) // mirrored pair is the same edge
	assert.ErrorIs(t, g.AddEdge(2, 2), core.ErrLoopNotAllowed)

	multi := core.NewGraph(core.WithMultiEdges(), core.WithLoops())
	require.NoError(t, multi.AddEdge(0, 1))
	require.NoError(t, multi.AddEdge(1, 0))
	require.NoError(t, multi.AddEdge(2, 2))
	assert.Equal(t, 3, multi.EdgeCount())

	deg, err := multi.Degree(2)
	require.NoError(t, err)
	assert.Equal(t, 2, deg)
}

// TestEdges_InsertionOrder ensures edge streams replay exactly as inserted.
func TestEdges_InsertionOrder(t *testing.T) {
	g := core.NewGraph()
	in := []core.Edge{{U: 5, V: 1}, {U: 0, V: 3}, {U: 2, V: 4}}
	require.NoError(t, g.AddEdges(in...))

	assert.Equal(t, in, g.Edges())
	assert.Equal(t, []core.VertexID{0, 1, 2, 3, 4, 5}, g.Vertices())

	maxID, ok := g.MaxVertexID()
	assert.True(t, ok)
	assert.Equal(t, core.VertexID(5), maxID)

	nbs, err := g.NeighborIDs(1)
	require.NoError(t, err)
	assert.Equal(t, []core.VertexID{5}, nbs)

	_, err = g.NeighborIDs(42)
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestClone_Independent checks that Clone deep-copies storage.
func TestClone_Independent(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddEdge(0, 1))
	c := g.Clone()
	require.NoError(t, c.AddEdge(1, 2))

	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 2, c.EdgeCount())
	assert.False(t, g.HasVertex(2))

	g.Clear()
	assert.Zero(t, g.VertexCount())
	assert.Equal(t, 3, c.VertexCount())
}

// TestEdge_Normalize covers the value helpers on Edge.
func TestEdge_Normalize(t *testing.T) {
	e := core.NewEdge(7, 3)
	assert.Equal(t, core.Edge{U: 3, V: 7}, e.Normalize())
	assert.Equal(t, core.Edge{U: 3, V: 7}, e.Reverse())
	assert.True(t, e.Has(7))
	assert.False(t, e.IsLoop())
	assert.Equal(t, "7-3", e.String())
	assert.Equal(t, e.Hash(), core.NewEdge(7, 3).Hash())
	assert.NotEqual(t, e.Hash(), e.Reverse().Hash())
}

// TestConcurrentAddEdge ensures concurrent AddEdge calls are safe.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			require.NoError(t, g.AddEdge(1000, core.VertexID(id)))
		}(i)
	}
	wg.Wait()

	nbs, err := g.NeighborIDs(1000)
	require.NoError(t, err)
	require.Len(t, nbs, num)
}
