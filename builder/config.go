// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng       = nil        (stochastic constructors fail without WithSeed/WithRand)
//   • shuffle   = false
//   • fuzz      = DefaultFuzz
//   • partition = DefaultPartition
//   • directed  = false      (RMAT emits both orientations of each pair)
//   • offset    = 0

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors. It is passed by
// value.
type builderConfig struct {
	rng       *rand.Rand
	shuffle   bool
	fuzz      float64
	partition [4]float64
	directed  bool
	offset    uint64 // added to every vertex id
}

// newBuilderConfig applies opts over the defaults, last one wins.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		fuzz:      DefaultFuzz,
		partition: DefaultPartition,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
