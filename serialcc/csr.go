// SPDX-License-Identifier: MIT
//
// File: csr.go
// Role: compressed sparse row adjacency built from an edge list.

package serialcc

import (
	"fmt"

	"github.com/katalvlaran/dsforest/core"
)

// CSR stores, for every row u, the column ids of its edges in
// Cols[Offsets[u]:Offsets[u+1]]. Each input edge is stored once, under its
// U endpoint.
type CSR struct {
	Offsets []uint64
	Cols    []core.VertexID
}

// NewCSR builds a CSR over n rows with a counting sort, keeping the input
// order within each row.
//
// Errors:
//   - ErrVertexOutOfRange if an endpoint is ≥ n.
//
// Complexity: O(n + E).
func NewCSR(n uint64, edges []core.Edge) (*CSR, error) {
	// 1. Count the edges of each row.
	offsets := make([]uint64, n+1)
	for _, e := range edges {
		if e.U >= n || e.V >= n {
			return nil, fmt.Errorf("serialcc: edge %s with %d rows: %w", e, n, ErrVertexOutOfRange)
		}
		offsets[e.U+1]++
	}
	// 2. Prefix sums turn counts into row starts.
	for i := uint64(1); i <= n; i++ {
		offsets[i] += offsets[i-1]
	}
	// 3. Scatter columns with a moving cursor per row.
	cols := make([]core.VertexID, len(edges))
	next := make([]uint64, n)
	copy(next, offsets[:n])
	for _, e := range edges {
		cols[next[e.U]] = e.V
		next[e.U]++
	}

	return &CSR{Offsets: offsets, Cols: cols}, nil
}

// Rows returns the row count.
func (c *CSR) Rows() uint64 { return uint64(len(c.Offsets) - 1) }

// Row returns the columns of row u.
func (c *CSR) Row(u core.VertexID) []core.VertexID {
	return c.Cols[c.Offsets[u]:c.Offsets[u+1]]
}
