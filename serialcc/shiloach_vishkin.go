// SPDX-License-Identifier: MIT
//
// File: shiloach_vishkin.go
// Role: serial Shiloach-Vishkin connected components over a CSR.

package serialcc

import "github.com/katalvlaran/dsforest/core"

// ShiloachVishkin labels every row with the smallest id of its component.
//
// Steps:
//  1. d[i] = i.
//  2. Graft: for each stored edge (i, j), a root label is hooked under the
//     smaller label of the other endpoint, in both directions.
//  3. Shortcut: every d[i] jumps to d[d[i]] until all trees are stars.
//  4. Repeat 2-3 until a graft pass changes nothing.
//
// Complexity: O(rounds·(n + E)).
func ShiloachVishkin(c *CSR) []core.VertexID {
	n := c.Rows()
	d := make([]core.VertexID, n)
	for i := range d {
		d[i] = core.VertexID(i)
	}

	for grafted := true; grafted; {
		grafted = false

		for i := core.VertexID(0); i < n; i++ {
			for _, j := range c.Row(i) {
				if d[i] < d[j] && d[j] == d[d[j]] {
					d[d[j]] = d[i]
					grafted = true
				}
				if d[j] < d[i] && d[i] == d[d[i]] {
					d[d[i]] = d[j]
					grafted = true
				}
			}
		}

		for i := range d {
			for d[i] != d[d[i]] {
				d[i] = d[d[i]]
			}
		}
	}

	return d
}
