// SPDX-License-Identifier: MIT
//
// Package app runs one dsforest epoch from parsed command-line options.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/katalvlaran/dsforest/builder"
	"github.com/katalvlaran/dsforest/config"
	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/disjointset"
	"github.com/katalvlaran/dsforest/internal/cli"
	"github.com/katalvlaran/dsforest/internal/ctxlog"
	"github.com/katalvlaran/dsforest/pgas"
	"github.com/katalvlaran/dsforest/serialcc"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrMismatch indicates a result that disagrees with the serial reference.
var ErrMismatch = errors.New("app: result differs from the serial reference")

// App holds everything one run needs.
type App struct {
	out    io.Writer
	opts   *cli.Options
	logger *slog.Logger
	reg    *prometheus.Registry
}

// Result is what PE 0 gathers after the epoch.
type Result struct {
	PEs       int
	Capacity  uint64
	Vertices  uint64
	EdgeCount int
	Tree      []core.Edge
	Partition [][]core.VertexID
	Stats     []disjointset.PEStats
}

// NewApp builds an App writing results to out and logs to logW.
func NewApp(out, logW io.Writer, opts *cli.Options) *App {
	return &App{
		out:    out,
		opts:   opts,
		logger: ctxlog.New(opts.LogLevel, opts.LogFormat, logW),
		reg:    prometheus.NewRegistry(),
	}
}

// Run executes the epoch and writes the report.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	res, err := a.Execute(ctx)
	if err != nil {
		return err
	}

	return a.report(res)
}

// Execute builds the World and the set, ingests the configured edge stream
// and processes it in one epoch. A fatal World error reported on close is
// returned when nothing else failed first.
func (a *App) Execute(ctx context.Context) (res *Result, err error) {
	run := a.opts.Run
	src, err := newSource(run)
	if err != nil {
		return nil, err
	}

	// The full stream is materialized only when something needs it.
	var all []core.Edge
	if run.RMAT == nil || a.opts.Validate || a.opts.DumpEdges != "" {
		if all, err = src.all(run.PEs); err != nil {
			return nil, err
		}
	}
	if a.opts.DumpEdges != "" {
		if err := dumpEdges(a.opts.DumpEdges, all); err != nil {
			return nil, err
		}
	}

	capacity := run.ResolveCapacity(all)
	vertices := run.ResolveVertices(capacity)
	a.logger.Info("run starting", "pes", run.PEs, "capacity", capacity, "vertices", vertices,
		"protocol", run.Protocol.String(), "distribution", run.Distribution.String())

	world, err := pgas.NewWorld(run.PEs, pgas.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err = closeWith(err, world); err != nil {
			res = nil
		}
	}()

	opts := append(run.Options(), disjointset.WithRegistry(a.reg))
	ds, err := disjointset.NewWithVertices(world, capacity, vertices, opts...)
	if err != nil {
		return nil, err
	}

	res = &Result{PEs: run.PEs, Capacity: capacity, Vertices: vertices}
	var mu sync.Mutex
	err = world.Run(ctx, func(ctx context.Context, pe *pgas.PE) error {
		mine, err := src.shard(pe.ID(), pe.NumPEs())
		if err != nil {
			return err
		}
		mu.Lock()
		res.EdgeCount += len(mine)
		mu.Unlock()
		if err := ds.AddEdges(ctx, pe, mine); err != nil {
			return err
		}
		if err := ds.ProcessEdges(ctx, pe); err != nil {
			return err
		}
		if pe.ID() != 0 {
			return nil
		}

		if res.Tree, err = ds.SpanningTree(ctx, pe); err != nil {
			return err
		}
		comps, err := ds.Components(ctx, pe)
		if err != nil {
			return err
		}
		res.Partition = serialcc.Partition(comps)
		res.Stats, err = ds.Stats(ctx, pe)
		return err
	})
	if err != nil {
		return nil, err
	}
	a.logger.Info("run complete", "components", len(res.Partition), "tree_edges", len(res.Tree))

	if a.opts.Validate {
		if err := validate(res, all); err != nil {
			return nil, err
		}
		a.logger.Info("result matches the serial reference")
	}

	return res, nil
}

// closeWith closes c and returns err, or the close error when err is nil.
func closeWith(err error, c io.Closer) error {
	if cerr := c.Close(); cerr != nil && err == nil {
		return fmt.Errorf("app: close world: %w", cerr)
	}

	return err
}

// source yields the edge stream, split over PEs.
type source struct {
	edges []core.Edge
	rmat  *config.RMAT
}

func newSource(run *config.Run) (*source, error) {
	switch {
	case run.RMAT != nil:
		return &source{rmat: run.RMAT}, nil
	case run.EdgeFile != "":
		edges, err := config.ReadEdgeFile(run.EdgeFile)
		if err != nil {
			return nil, err
		}
		return &source{edges: edges}, nil
	default:
		return &source{edges: run.Edges}, nil
	}
}

// shard returns PE pe's part: an RMAT shard drawn on the PE, or every
// numPEs-th edge of a fixed list.
func (s *source) shard(pe, numPEs int) ([]core.Edge, error) {
	if m := s.rmat; m != nil {
		return builder.RMATShard(m.Order, m.EdgeFactor, pe, numPEs, m.Seed, m.BuilderOptions()...)
	}
	var mine []core.Edge
	for i := pe; i < len(s.edges); i += numPEs {
		mine = append(mine, s.edges[i])
	}

	return mine, nil
}

// all returns the whole stream in shard order.
func (s *source) all(numPEs int) ([]core.Edge, error) {
	if s.rmat == nil {
		return s.edges, nil
	}
	var out []core.Edge
	for pe := 0; pe < numPEs; pe++ {
		part, err := s.shard(pe, numPEs)
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}

	return out, nil
}

func dumpEdges(path string, edges []core.Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("app: dump edges: %w", err)
	}
	if err := config.WriteEdges(f, edges); err != nil {
		f.Close()
		return fmt.Errorf("app: dump edges: %w", err)
	}

	return f.Close()
}

// validate checks the forest and the partition against serial kernels over
// the registered vertices.
func validate(res *Result, edges []core.Edge) error {
	if err := serialcc.ValidateSpanningForest(res.Vertices, edges, res.Tree); err != nil {
		return fmt.Errorf("%w: %w", ErrMismatch, err)
	}
	c, err := serialcc.NewCSR(res.Vertices, edges)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMismatch, err)
	}
	want := serialcc.Partition(serialcc.Group(serialcc.Labels(serialcc.ShiloachVishkin(c))))
	if !slices.EqualFunc(want, res.Partition, slices.Equal) {
		return fmt.Errorf("%w: %d components, reference has %d", ErrMismatch, len(res.Partition), len(want))
	}

	// Second oracle: BFS over the edge graph with every vertex present.
	g := core.NewGraph(core.WithLoops(), core.WithMultiEdges())
	g.AddVertexRange(int(res.Vertices))
	if err := g.AddEdges(edges...); err != nil {
		return fmt.Errorf("%w: %w", ErrMismatch, err)
	}
	bfs := serialcc.Partition(serialcc.Group(serialcc.ComponentsBFS(g)))
	if !slices.EqualFunc(bfs, res.Partition, slices.Equal) {
		return fmt.Errorf("%w: %d components, BFS has %d", ErrMismatch, len(res.Partition), len(bfs))
	}

	return nil
}
