// SPDX-License-Identifier: MIT
//
// File: config.go
// Role: Run model, defaults, validation.

package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/dsforest/builder"
	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/disjointset"
	"github.com/katalvlaran/dsforest/distarray"
)

// ErrInvalidConfig indicates a run file or override with a meaningless value.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Run is the decoded, format-agnostic run configuration.
type Run struct {
	PEs          int
	Capacity     uint64 // 0 derives the capacity from vertices and edges
	Vertices     uint64
	Distribution distarray.Distribution
	Protocol     disjointset.Protocol
	RootSearch   disjointset.RootSearch
	Compression  bool
	Edges        []core.Edge
	EdgeFile     string
	RMAT         *RMAT
}

// RMAT describes a generated edge stream.
type RMAT struct {
	Order      int
	EdgeFactor int
	Fuzz       float64
	Seed       int64
	Partition  [4]float64
}

// Default returns the configuration used for every absent attribute.
func Default() Run {
	return Run{
		PEs:          1,
		Distribution: distarray.Block,
		Protocol:     disjointset.ProtocolFindUnion,
		RootSearch:   disjointset.RootSearchBoundary,
		Compression:  true,
	}
}

// DefaultRMAT returns the rmat block defaults for order.
func DefaultRMAT(order int) RMAT {
	return RMAT{
		Order:      order,
		EdgeFactor: builder.DefaultEdgeFactor,
		Fuzz:       builder.DefaultFuzz,
		Partition:  builder.DefaultPartition,
	}
}

// Options returns the disjoint-set options the run selects.
func (r *Run) Options() []disjointset.Option {
	return []disjointset.Option{
		disjointset.WithDistribution(r.Distribution),
		disjointset.WithProtocol(r.Protocol),
		disjointset.WithRootSearch(r.RootSearch),
		disjointset.WithPathCompression(r.Compression),
	}
}

// BuilderOptions returns the generator options of the rmat block.
func (m *RMAT) BuilderOptions() []builder.BuilderOption {
	p := m.Partition
	return []builder.BuilderOption{
		builder.WithFuzz(m.Fuzz),
		builder.WithPartition(p[0], p[1], p[2], p[3]),
	}
}

// Validate checks ranges and that at most one edge source is set.
func (r *Run) Validate() error {
	if r.PEs < 1 {
		return fmt.Errorf("config: pes = %d, want ≥ 1: %w", r.PEs, ErrInvalidConfig)
	}
	if r.Capacity > disjointset.MaxCapacity {
		return fmt.Errorf("config: capacity %d > %d: %w", r.Capacity, uint64(disjointset.MaxCapacity), ErrInvalidConfig)
	}
	if r.Capacity != 0 && r.Vertices > r.Capacity {
		return fmt.Errorf("config: vertices %d > capacity %d: %w", r.Vertices, r.Capacity, ErrInvalidConfig)
	}

	sources := 0
	if len(r.Edges) > 0 {
		sources++
	}
	if r.EdgeFile != "" {
		sources++
	}
	if r.RMAT != nil {
		sources++
	}
	if sources > 1 {
		return fmt.Errorf("config: edges, edge_file and rmat are exclusive: %w", ErrInvalidConfig)
	}

	if r.Capacity != 0 {
		for _, e := range r.Edges {
			if e.U >= r.Capacity || e.V >= r.Capacity {
				return fmt.Errorf("config: edge %s outside capacity %d: %w", e, r.Capacity, ErrInvalidConfig)
			}
		}
	}
	if r.RMAT != nil {
		return r.RMAT.validate()
	}

	return nil
}

func (m *RMAT) validate() error {
	if m.Order < 1 || m.Order > builder.MaxRMATOrder {
		return fmt.Errorf("config: rmat order %d outside [1, %d]: %w", m.Order, builder.MaxRMATOrder, ErrInvalidConfig)
	}
	if m.EdgeFactor < 1 {
		return fmt.Errorf("config: rmat edge_factor %d, want ≥ 1: %w", m.EdgeFactor, ErrInvalidConfig)
	}
	if m.Fuzz < 0 || m.Fuzz >= 1 || math.IsNaN(m.Fuzz) {
		return fmt.Errorf("config: rmat fuzz %v outside [0, 1): %w", m.Fuzz, ErrInvalidConfig)
	}
	sum := 0.0
	for _, p := range m.Partition {
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("config: rmat partition %v has a negative weight: %w", m.Partition, ErrInvalidConfig)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("config: rmat partition %v sums to %v: %w", m.Partition, sum, ErrInvalidConfig)
	}

	return nil
}

// ResolveCapacity returns Capacity, or when it is 0 the smallest capacity
// holding the pre-registered vertices, every edge endpoint and the RMAT
// vertex range.
func (r *Run) ResolveCapacity(edges []core.Edge) uint64 {
	if r.Capacity != 0 {
		return r.Capacity
	}
	c := r.Vertices
	for _, e := range edges {
		c = max(c, e.U+1, e.V+1)
	}
	if r.RMAT != nil {
		c = max(c, uint64(1)<<r.RMAT.Order)
	}

	return c
}

// ResolveVertices returns Vertices, or capacity when no count was given.
func (r *Run) ResolveVertices(capacity uint64) uint64 {
	if r.Vertices == 0 {
		return capacity
	}

	return r.Vertices
}
