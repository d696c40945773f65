package disjointset_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/disjointset"
	"github.com/katalvlaran/dsforest/internal/ctxlog"
	"github.com/katalvlaran/dsforest/pgas"
	"github.com/katalvlaran/dsforest/serialcc"
)

// ExampleDisjointSet_ProcessEdges joins two paths across two PEs and prints
// the components, whatever vertex ends up as each root.
func ExampleDisjointSet_ProcessEdges() {
	world, _ := pgas.NewWorld(2, pgas.WithLogger(ctxlog.Discard()))
	defer world.Close()
	ds, _ := disjointset.NewWithVertices(world, 6, 6)

	edges := core.EdgesFromPairs([][2]core.VertexID{{0, 4}, {4, 2}, {1, 5}})
	var comps map[core.VertexID][]core.VertexID
	var tree []core.Edge
	err := world.Run(context.Background(), func(ctx context.Context, pe *pgas.PE) error {
		if pe.ID() == 0 {
			if err := ds.AddEdges(ctx, pe, edges); err != nil {
				return err
			}
		}
		if err := ds.ProcessEdges(ctx, pe); err != nil {
			return err
		}
		if pe.ID() != 0 {
			return nil
		}
		var err error
		if tree, err = ds.SpanningTree(ctx, pe); err != nil {
			return err
		}
		comps, err = ds.Components(ctx, pe)
		return err
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("tree edges:", len(tree))
	for _, members := range serialcc.Partition(comps) {
		fmt.Println(members)
	}
	// Output:
	// tree edges: 3
	// [0 2 4]
	// [1 5]
	// [3]
}
