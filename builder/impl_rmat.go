// SPDX-License-Identifier: MIT
// Package: dsforest/builder
//
// impl_rmat.go - recursive-matrix (RMAT) edge generation.
//
// Canonical model:
//   - Vertex ids live in [0, 2^order). Each edge descends order levels of
//     the adjacency matrix; at every level the quadrant weights (a, b, c, d)
//     are multiplied by 1 - fuzz + 2·fuzz·U(0,1), renormalized, and one
//     quadrant is drawn: a keeps (u, v), b adds the step to u, c to v, d to
//     both. The step halves per level.
//   - Weights restart from the configured partition for every edge.
//   - Undirected (default): each drawn pair is normalized to (min, max) and
//     emitted twice, (min, max) then (max, min).
//   - Directed (WithDirected): each pair is emitted once as drawn.
//
// Determinism:
//   - A generator seeded with s produces the same stream every time.
//   - RMATShard seeds PE p of n with seed·n + p and gives it
//     count/n pairs, plus one for the first count mod n PEs.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/dsforest/core"
)

// RMATGenerator draws an RMAT edge stream.
type RMATGenerator struct {
	order     int
	fuzz      float64
	partition [4]float64
	directed  bool
	offset    uint64
	rng       *rand.Rand

	pending    core.Edge
	hasPending bool
}

// NewRMAT returns a generator over 2^order vertices configured by opts.
//
// Errors:
//   - ErrTooFewVertices if order < 1; ErrTooManyVertices if order > MaxRMATOrder.
//   - ErrNeedRandSource without WithSeed or WithRand.
func NewRMAT(order int, opts ...BuilderOption) (*RMATGenerator, error) {
	return newRMAT(order, newBuilderConfig(opts...))
}

func newRMAT(order int, cfg builderConfig) (*RMATGenerator, error) {
	if err := validateMin(methodRMAT, order, 1); err != nil {
		return nil, err
	}
	if order > MaxRMATOrder {
		return nil, fmt.Errorf("%s: order %d > %d: %w", methodRMAT, order, MaxRMATOrder, ErrTooManyVertices)
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodRMAT, ErrNeedRandSource)
	}

	return &RMATGenerator{
		order:     order,
		fuzz:      cfg.fuzz,
		partition: cfg.partition,
		directed:  cfg.directed,
		offset:    cfg.offset,
		rng:       cfg.rng,
	}, nil
}

// Vertices returns 2^order.
func (r *RMATGenerator) Vertices() uint64 { return 1 << r.order }

// draw descends the matrix once and returns the raw pair.
func (r *RMATGenerator) draw() (u, v uint64) {
	a, b, c, d := r.partition[0], r.partition[1], r.partition[2], r.partition[3]
	step := uint64(1) << (r.order - 1)

	for range r.order {
		a *= 1 - r.fuzz + 2*r.fuzz*r.rng.Float64()
		b *= 1 - r.fuzz + 2*r.fuzz*r.rng.Float64()
		c *= 1 - r.fuzz + 2*r.fuzz*r.rng.Float64()
		d *= 1 - r.fuzz + 2*r.fuzz*r.rng.Float64()
		s := a + b + c + d
		a, b, c = a/s, b/s, c/s
		d = 1 - a - b - c

		switch p := r.rng.Float64(); {
		case p < a:
		case p < a+b:
			u += step
		case p < a+b+c:
			v += step
		default:
			u += step
			v += step
		}
		step >>= 1
	}

	return u, v
}

// Next returns the next edge of the stream.
func (r *RMATGenerator) Next() core.Edge {
	if r.hasPending {
		r.hasPending = false
		return r.pending
	}

	u, v := r.draw()
	e := core.NewEdge(r.offset+u, r.offset+v)
	if r.directed {
		return e
	}
	e = e.Normalize()
	r.pending, r.hasPending = e.Reverse(), true

	return e
}

// Take draws the given number of pairs and returns their edges: one edge
// per pair when directed, two otherwise.
func (r *RMATGenerator) Take(pairs int) []core.Edge {
	per := 2
	if r.directed {
		per = 1
	}
	out := make([]core.Edge, 0, per*pairs)
	for range per * pairs {
		out = append(out, r.Next())
	}

	return out
}

// RMAT returns a Constructor that adds 2^order vertices and the edges of
// 2^order·edgeFactor drawn pairs. The graph must admit loops and parallel
// edges.
func RMAT(order, edgeFactor int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if err := validateMin(methodRMAT, edgeFactor, 1); err != nil {
			return err
		}
		if !g.Looped() || !g.Multigraph() {
			return fmt.Errorf("%s: graph must allow loops and multi-edges: %w", methodRMAT, ErrUnsupportedGraphMode)
		}
		gen, err := newRMAT(order, cfg)
		if err != nil {
			return err
		}

		addSequentialVertices(g, cfg, 1<<order)
		for _, e := range gen.Take(edgeFactor << order) {
			if err := g.AddEdge(e.U, e.V); err != nil {
				return fmt.Errorf("%s: AddEdge(%s): %w", methodRMAT, e, err)
			}
		}

		return nil
	}
}

// RMATShard returns PE pe's share of an RMAT stream of 2^order·edgeFactor
// pairs split over numPEs, drawn from its own RNG seeded seed·numPEs + pe.
// Any WithSeed or WithRand in opts is ignored.
//
// Errors:
//   - ErrInvalidShard if pe ∉ [0, numPEs).
//   - NewRMAT and edgeFactor validation errors.
func RMATShard(order, edgeFactor, pe, numPEs int, seed int64, opts ...BuilderOption) ([]core.Edge, error) {
	if numPEs < 1 || pe < 0 || pe >= numPEs {
		return nil, fmt.Errorf("%s: shard %d of %d: %w", methodRMAT, pe, numPEs, ErrInvalidShard)
	}
	if err := validateMin(methodRMAT, edgeFactor, 1); err != nil {
		return nil, err
	}

	cfg := newBuilderConfig(opts...)
	cfg.rng = rand.New(rand.NewSource(seed*int64(numPEs) + int64(pe)))
	gen, err := newRMAT(order, cfg)
	if err != nil {
		return nil, err
	}

	total := edgeFactor << order
	share := total / numPEs
	if pe < total%numPEs {
		share++
	}

	return gen.Take(share), nil
}
