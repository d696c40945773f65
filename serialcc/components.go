// SPDX-License-Identifier: MIT
//
// File: components.go
// Role: BFS component labelling and component grouping helpers.

package serialcc

import (
	"cmp"
	"maps"
	"slices"

	"github.com/katalvlaran/dsforest/core"
)

// ComponentsBFS maps every vertex of g to the smallest id of its component.
// Vertices are scanned in ascending order, so each BFS starts at its
// component's minimum.
//
// Complexity: O(V log V + E).
func ComponentsBFS(g *core.Graph) map[core.VertexID]core.VertexID {
	label := make(map[core.VertexID]core.VertexID, g.VertexCount())
	for _, start := range g.Vertices() {
		if _, seen := label[start]; seen {
			continue
		}
		label[start] = start
		queue := []core.VertexID{start}
		for qi := 0; qi < len(queue); qi++ {
			nbrs, err := g.NeighborIDs(queue[qi])
			if err != nil {
				continue // vertex removed concurrently
			}
			for _, nb := range nbrs {
				if _, seen := label[nb]; !seen {
					label[nb] = start
					queue = append(queue, nb)
				}
			}
		}
	}

	return label
}

// Group turns a vertex → label mapping into label → sorted members.
func Group(labels map[core.VertexID]core.VertexID) map[core.VertexID][]core.VertexID {
	out := make(map[core.VertexID][]core.VertexID)
	for _, v := range slices.Sorted(maps.Keys(labels)) {
		out[labels[v]] = append(out[labels[v]], v)
	}

	return out
}

// Partition returns the member lists of a grouping sorted by their first
// member. Two labellings describe the same components iff their partitions
// are equal, whatever the labels.
func Partition(groups map[core.VertexID][]core.VertexID) [][]core.VertexID {
	out := slices.Collect(maps.Values(groups))
	slices.SortFunc(out, func(a, b []core.VertexID) int {
		return cmp.Compare(a[0], b[0])
	})

	return out
}

// Labels turns a dense label slice into a vertex → label map.
func Labels(d []core.VertexID) map[core.VertexID]core.VertexID {
	out := make(map[core.VertexID]core.VertexID, len(d))
	for i, l := range d {
		out[core.VertexID(i)] = l
	}

	return out
}
