// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// constants.go - public minima and RMAT defaults.

package builder

// Topology minima.
const (
	// MinCycleNodes is the smallest simple cycle.
	MinCycleNodes = 3
	// MinPathNodes is the smallest path with an edge.
	MinPathNodes = 2
	// MinStarNodes is a center plus one leaf.
	MinStarNodes = 2
	// MinGridDim is the smallest grid side.
	MinGridDim = 1
)

// Probability bounds.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)

// RMAT parameters.
const (
	// DefaultFuzz is the per-level multiplicative noise amplitude.
	DefaultFuzz = 0.1

	// DefaultEdgeFactor is the number of generated pairs per vertex.
	DefaultEdgeFactor = 16

	// MaxRMATOrder keeps every id below 2^47, inside the vertex word.
	MaxRMATOrder = 47
)

// DefaultPartition is the RMAT quadrant split (a, b, c, d).
var DefaultPartition = [4]float64{0.57, 0.19, 0.19, 0.05}

// Method tags prefixed to constructor errors.
const (
	methodPath         = "Path"
	methodCycle        = "Cycle"
	methodStar         = "Star"
	methodComplete     = "Complete"
	methodGrid         = "Grid"
	methodRandomSparse = "RandomSparse"
	methodRMAT         = "RMAT"
)
