// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithShuffle makes BuildEdges return its edges in a random order drawn from
// the configured RNG.
func WithShuffle() BuilderOption {
	return func(c *builderConfig) { c.shuffle = true }
}

// WithFuzz sets the RMAT noise amplitude. Panics outside [0, 1).
func WithFuzz(f float64) BuilderOption {
	if f < 0 || f >= 1 || math.IsNaN(f) {
		panic(fmt.Sprintf("builder: WithFuzz(%v): want 0 ≤ f < 1", f))
	}

	return func(c *builderConfig) { c.fuzz = f }
}

// WithPartition sets the RMAT quadrant probabilities. Panics unless all are
// non-negative and they sum to 1 within 1e-9.
func WithPartition(a, b, c, d float64) BuilderOption {
	sum := a + b + c + d
	if a < 0 || b < 0 || c < 0 || d < 0 || math.Abs(sum-1) > 1e-9 {
		panic(fmt.Sprintf("builder: WithPartition(%v, %v, %v, %v): want non-negative values summing to 1", a, b, c, d))
	}

	return func(cfg *builderConfig) { cfg.partition = [4]float64{a, b, c, d} }
}

// WithDirected makes RMAT emit each generated pair once, as drawn, instead
// of both orientations of (min, max).
func WithDirected() BuilderOption {
	return func(c *builderConfig) { c.directed = true }
}

// WithOffset shifts every vertex id a constructor emits by base, so several
// constructors can build disjoint pieces of one graph.
func WithOffset(base uint64) BuilderOption {
	return func(c *builderConfig) { c.offset = base }
}
