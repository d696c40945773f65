package serialcc_test

import (
	"testing"

	"github.com/katalvlaran/dsforest/serialcc"
)

// BenchmarkUnionSplice measures splicing 20k random edges over 10k vertices.
func BenchmarkUnionSplice(b *testing.B) {
	edges := randomEdges(10_000, 20_000, 42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := serialcc.NewSpliceSet(10_000)
		for _, e := range edges {
			_, _ = s.UnionSplice(e.U, e.V)
		}
	}
}

// BenchmarkShiloachVishkin measures the same graph through CSR rounds.
func BenchmarkShiloachVishkin(b *testing.B) {
	edges := randomEdges(10_000, 20_000, 42)
	c, _ := serialcc.NewCSR(10_000, edges)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = serialcc.ShiloachVishkin(c)
	}
}

// BenchmarkComponentsBFS measures BFS labelling on a core.Graph.
func BenchmarkComponentsBFS(b *testing.B) {
	g := graphOf(10_000, randomEdges(10_000, 20_000, 42))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = serialcc.ComponentsBFS(g)
	}
}
