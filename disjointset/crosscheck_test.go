package disjointset_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/disjointset"
	"github.com/katalvlaran/dsforest/serialcc"
	"github.com/stretchr/testify/assert"
)

// TestCrossCheck compares every configuration with the serial kernels on
// random graphs of different densities.
func TestCrossCheck(t *testing.T) {
	graphs := []struct {
		n, m int
	}{{30, 12}, {150, 140}, {300, 900}}

	for pes := 1; pes <= 4; pes++ {
		for _, dist := range distributions {
			for _, p := range []disjointset.Protocol{disjointset.ProtocolFindUnion, disjointset.ProtocolHook} {
				for _, rs := range []disjointset.RootSearch{disjointset.RootSearchBoundary, disjointset.RootSearchFixpoint} {
					for _, compress := range []bool{true, false} {
						if p == disjointset.ProtocolHook && !compress {
							continue // hook rounds never post compressions
						}
						name := fmt.Sprintf("%dpe/%s/%s/%s/compress=%t", pes, dist, p, rs, compress)
						t.Run(name, func(t *testing.T) {
							for gi, g := range graphs {
								edges := randomEdges(g.n, g.m, int64(pes*1000+gi))
								ds := newSet(t, pes, uint64(g.n),
									disjointset.WithDistribution(dist),
									disjointset.WithProtocol(p),
									disjointset.WithRootSearch(rs),
									disjointset.WithPathCompression(compress))

								res := runEpoch(t, ds, edges)
								assert.Equal(t, reference(t, uint64(g.n), edges), res.partition, "graph %d", gi)
								assert.NoError(t, serialcc.ValidateSpanningForest(uint64(g.n), edges, res.tree), "graph %d", gi)
							}
						})
					}
				}
			}
		}
	}
}

// TestCrossCheck_LargeCompressed runs graphs big enough for compressions to
// race each other and overtake the roots they were posted with.
func TestCrossCheck_LargeCompressed(t *testing.T) {
	if testing.Short() {
		t.Skip("large graphs")
	}
	graphs := []struct {
		n, m int
		seed int64
	}{{1500, 1500, 1500}, {1500, 5000, 1501}, {4000, 3000, 1502}}

	for _, dist := range distributions {
		for _, p := range []disjointset.Protocol{disjointset.ProtocolFindUnion, disjointset.ProtocolHook} {
			t.Run(fmt.Sprintf("%s/%s", dist, p), func(t *testing.T) {
				for _, g := range graphs {
					edges := randomEdges(g.n, g.m, g.seed)
					ds := newSet(t, 3, uint64(g.n),
						disjointset.WithDistribution(dist),
						disjointset.WithProtocol(p),
						disjointset.WithPathCompression(true))

					res := runEpoch(t, ds, edges)
					assert.Equal(t, reference(t, uint64(g.n), edges), res.partition, "n=%d m=%d", g.n, g.m)
					assert.NoError(t, serialcc.ValidateSpanningForest(uint64(g.n), edges, res.tree), "n=%d m=%d", g.n, g.m)
				}
			})
		}
	}
}

// TestOrderIndependence feeds the same edges in different orders and PE
// counts and expects the same partition.
func TestOrderIndependence(t *testing.T) {
	const n = 200
	edges := randomEdges(n, 180, 77)
	want := reference(t, n, edges)

	r := rand.New(rand.NewSource(1))
	for trial := range 6 {
		shuffled := append([]core.Edge(nil), edges...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		for i := range shuffled {
			if r.Intn(2) == 0 {
				shuffled[i] = shuffled[i].Reverse()
			}
		}

		res := runEpoch(t, newSet(t, 1+trial%4, n), shuffled)
		assert.Equal(t, want, res.partition, "trial %d", trial)
	}
}
