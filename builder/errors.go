// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with %w.
//   • Option constructors panic on meaningless input; constructors never do.

package builder

import "errors"

// ErrTooFewVertices indicates that a size parameter (n, rows, cols, order)
// is smaller than the constructor allows.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrTooManyVertices indicates a size whose vertex ids would not fit the
// distributed vertex word.
var ErrTooManyVertices = errors.New("builder: parameter too large")

// ErrInvalidProbability indicates a probability outside [0, 1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor run without WithSeed
// or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrUnsupportedGraphMode indicates a constructor whose output the graph's
// mode flags would reject, e.g. RMAT on a graph without loops.
var ErrUnsupportedGraphMode = errors.New("builder: unsupported graph mode")

// ErrConstructFailed indicates a construction that could not complete, such
// as a nil constructor passed to BuildGraph.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrInvalidShard indicates a PE index outside [0, numPEs).
var ErrInvalidShard = errors.New("builder: invalid shard")
