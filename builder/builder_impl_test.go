// File: builder_impl_test.go
// Package builder_test verifies topology, counts, determinism and errors of
// every Constructor.
package builder_test

import (
	"testing"

	"github.com/katalvlaran/dsforest/builder"
	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/serialcc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// componentsOf returns the number of components of g.
func componentsOf(g *core.Graph) int {
	return len(serialcc.Group(serialcc.ComponentsBFS(g)))
}

// TestBuilders_Functional runs table-driven functional tests for each builder.
func TestBuilders_Functional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ctor        builder.Constructor
		wantV       int
		wantE       int
		wantComps   int
		sampleCheck func(t *testing.T, g *core.Graph)
	}{
		{
			name: "Path(4)", ctor: builder.Path(4), wantV: 4, wantE: 3, wantComps: 1,
			sampleCheck: func(t *testing.T, g *core.Graph) {
				assert.Equal(t, core.EdgesFromPairs([][2]core.VertexID{{0, 1}, {1, 2}, {2, 3}}), g.Edges())
			},
		},
		{
			name: "Cycle(5)", ctor: builder.Cycle(5), wantV: 5, wantE: 5, wantComps: 1,
			sampleCheck: func(t *testing.T, g *core.Graph) {
				assert.True(t, g.HasEdge(4, 0), "closing edge")
			},
		},
		{
			name: "Star(6)", ctor: builder.Star(6), wantV: 6, wantE: 5, wantComps: 1,
			sampleCheck: func(t *testing.T, g *core.Graph) {
				d, err := g.Degree(0)
				require.NoError(t, err)
				assert.Equal(t, 5, d)
			},
		},
		{name: "Complete(5)", ctor: builder.Complete(5), wantV: 5, wantE: 10, wantComps: 1},
		{
			name: "Grid(3,4)", ctor: builder.Grid(3, 4), wantV: 12, wantE: 17, wantComps: 1,
			sampleCheck: func(t *testing.T, g *core.Graph) {
				assert.True(t, g.HasEdge(0, 1))
				assert.True(t, g.HasEdge(0, 4))
				assert.False(t, g.HasEdge(3, 4), "no wrap between rows")
			},
		},
		{name: "RandomSparse(10,0)", ctor: builder.RandomSparse(10, 0), wantV: 10, wantE: 0, wantComps: 10},
		{name: "RandomSparse(6,1)", ctor: builder.RandomSparse(6, 1), wantV: 6, wantE: 15, wantComps: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.BuildGraph(nil, nil, tc.ctor)
			require.NoError(t, err)
			assert.Equal(t, tc.wantV, g.VertexCount())
			assert.Equal(t, tc.wantE, g.EdgeCount())
			assert.Equal(t, tc.wantComps, componentsOf(g))
			if tc.sampleCheck != nil {
				tc.sampleCheck(t, g)
			}
		})
	}
}

func TestBuilders_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ctor builder.Constructor
		want error
	}{
		{"Path(1)", builder.Path(1), builder.ErrTooFewVertices},
		{"Cycle(2)", builder.Cycle(2), builder.ErrTooFewVertices},
		{"Star(1)", builder.Star(1), builder.ErrTooFewVertices},
		{"Complete(0)", builder.Complete(0), builder.ErrTooFewVertices},
		{"Grid(0,3)", builder.Grid(0, 3), builder.ErrTooFewVertices},
		{"RandomSparse(p>1)", builder.RandomSparse(4, 1.5), builder.ErrInvalidProbability},
		{"RandomSparse(no rng)", builder.RandomSparse(4, 0.5), builder.ErrNeedRandSource},
		{"RMAT(no rng)", builder.RMAT(3, 2), builder.ErrNeedRandSource},
		{"nil", nil, builder.ErrConstructFailed},
	}
	for _, tc := range cases {
		_, _, err := builder.BuildEdges(nil, tc.ctor)
		assert.ErrorIs(t, err, tc.want, tc.name)
	}

	_, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(1)}, builder.RMAT(3, 2))
	assert.ErrorIs(t, err, builder.ErrUnsupportedGraphMode)
	_, _, err = builder.BuildEdges([]builder.BuilderOption{builder.WithShuffle()}, builder.Path(3))
	assert.ErrorIs(t, err, builder.ErrNeedRandSource)
}

func TestBuildEdges_OffsetAndShuffle(t *testing.T) {
	t.Parallel()

	n, _, err := builder.BuildEdges(nil, builder.Path(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	_, shifted, err := builder.BuildEdges([]builder.BuilderOption{builder.WithOffset(10)}, builder.Path(3))
	require.NoError(t, err)
	assert.Equal(t, core.EdgesFromPairs([][2]core.VertexID{{10, 11}, {11, 12}}), shifted)

	opts := []builder.BuilderOption{builder.WithSeed(3), builder.WithShuffle()}
	_, a, err := builder.BuildEdges(opts, builder.Complete(8))
	require.NoError(t, err)
	_, b, err := builder.BuildEdges([]builder.BuilderOption{builder.WithSeed(3), builder.WithShuffle()}, builder.Complete(8))
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed, same order")
	assert.ElementsMatch(t, edgesOf(t, builder.Complete(8)), a)
}

func edgesOf(t *testing.T, c builder.Constructor) []core.Edge {
	t.Helper()
	_, edges, err := builder.BuildEdges(nil, c)
	require.NoError(t, err)

	return edges
}

func TestRandomSparse_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(9)}, builder.RandomSparse(40, 0.1))
	require.NoError(t, err)
	b, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(9)}, builder.RandomSparse(40, 0.1))
	require.NoError(t, err)
	assert.Equal(t, a.Edges(), b.Edges())
}

func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithFuzz(1) })
	assert.Panics(t, func() { builder.WithFuzz(-0.1) })
	assert.Panics(t, func() { builder.WithPartition(0.5, 0.5, 0.5, 0) })
	assert.Panics(t, func() { builder.WithPartition(-0.1, 0.6, 0.5, 0) })
	assert.NotPanics(t, func() { builder.WithPartition(0.25, 0.25, 0.25, 0.25) })
}
