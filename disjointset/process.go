// SPDX-License-Identifier: MIT
//
// File: process.go
// Role: ProcessEdges epoch driver: local union, candidate reduction, remote union, gather.

package disjointset

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/pgas"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProcessEdges runs one epoch over everything ingested since the previous
// one. It is collective: every PE of the World must call it, each from its
// own driver goroutine. On return every PE's tree edges are available to
// SpanningTree.
//
// Sequence: quiesce ingestion → local union → barrier → candidate
// reduction → barrier → remote union (find-union or hook rounds) → quiesce
// follow-ups → barrier. Each phase is traced and timed; a failure on any PE
// is reported by every PE at the next barrier and aborts the epoch.
//
// Errors:
//   - ErrPhaseOrder if nothing was ingested since the last epoch.
//   - ErrUnknownVertex if an edge endpoint was never registered.
//   - any fatal World error.
func (ds *DisjointSet) ProcessEdges(ctx context.Context, pe *pgas.PE) (err error) {
	ctx, span := ds.cfg.tracer.Start(ctx, "disjointset.ProcessEdges",
		trace.WithAttributes(attribute.Int("pe", pe.ID()), attribute.String("protocol", ds.cfg.protocol.String())))
	defer func() { endSpan(span, err) }()

	if err := pe.Quiesce(ctx); err != nil {
		return err
	}
	pending := ds.ingested.Load()
	if err := pe.Barrier(ctx); err != nil {
		return err
	}
	if !pending {
		return fmt.Errorf("disjointset: ProcessEdges on PE %d: nothing ingested since the last epoch: %w", pe.ID(), ErrPhaseOrder)
	}
	if pe.ID() == 0 {
		ds.ingested.Store(false)
	}

	st := ds.pes[pe.ID()]
	local, spanning, ghosts := st.takeEpoch()
	stats := PEStats{PE: pe.ID(), LocalEdges: len(local), Ghosts: len(ghosts)}
	log := pe.Logger()

	// Local union-find.
	var tree, deferred []core.Edge
	err = ds.phase(ctx, pe, "local", func(context.Context) error {
		var perr error
		tree, deferred, perr = ds.localPhase(pe, local)
		return perr
	})
	if err != nil {
		return err
	}
	spanning = append(spanning, deferred...)
	stats.SpanningEdges, stats.LocalTree = len(spanning), len(tree)
	ds.metrics.accepted.WithLabelValues("local").Add(float64(len(tree)))
	log.Info("phase complete", "phase", "local", "local_edges", len(local), "tree_edges", len(tree), "deferred", len(deferred))

	// Candidate reduction.
	var candidates []core.Edge
	err = ds.phase(ctx, pe, "reduce", func(context.Context) error {
		var perr error
		candidates, stats.Pruned, perr = ds.reducePhase(pe, spanning, ghosts)
		return perr
	})
	if err != nil {
		return err
	}
	stats.Candidates = len(candidates)
	log.Info("phase complete", "phase", "reduce", "spanning_edges", len(spanning), "candidates", len(candidates), "pruned", stats.Pruned)

	// Remote union.
	var accepted []core.Edge
	err = ds.phase(ctx, pe, "remote", func(ctx context.Context) error {
		var perr error
		if ds.cfg.protocol == ProtocolHook {
			accepted, perr = ds.hookPhase(ctx, pe, candidates)
			return perr
		}
		accepted, perr = ds.findUnionPhase(ctx, pe, candidates)
		if qerr := pe.Quiesce(ctx); qerr != nil {
			return qerr
		}
		return perr
	})
	if err != nil {
		return err
	}
	stats.Accepted = len(accepted)
	ds.metrics.accepted.WithLabelValues("remote").Add(float64(len(accepted)))
	log.Info("phase complete", "phase", "remote", "candidates", len(candidates), "accepted", len(accepted))

	st.treeMu.Lock()
	st.localTree, st.spanningTree, st.stats = tree, accepted, stats
	st.treeMu.Unlock()

	return pe.Barrier(ctx)
}

// phase runs fn inside a span, records its duration and makes every PE agree
// on its outcome.
func (ds *DisjointSet) phase(ctx context.Context, pe *pgas.PE, name string, fn func(context.Context) error) error {
	pctx, span := ds.cfg.tracer.Start(ctx, "disjointset."+name, trace.WithAttributes(attribute.Int("pe", pe.ID())))
	start := time.Now()
	err := fn(pctx)
	ds.metrics.phaseDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	endSpan(span, err)
	if err != nil {
		pe.Logger().Error("phase failed", "phase", name, "err", err)
	}

	return pe.Agree(ctx, err)
}

// findUnionPhase issues one find-union per candidate, first hop inline, and
// returns the accepted ones in candidate order.
func (ds *DisjointSet) findUnionPhase(ctx context.Context, pe *pgas.PE, candidates []core.Edge) ([]core.Edge, error) {
	futs := make([]*pgas.Future[bool], len(candidates))
	for i, e := range candidates {
		futs[i] = pgas.Exec[bool](ctx, pe, newFindUnion(ds, e))
	}

	var accepted []core.Edge
	for i, f := range futs {
		ok, err := f.Await(ctx)
		if err != nil {
			return nil, fmt.Errorf("disjointset: find-union %s: %w", candidates[i], err)
		}
		if ok {
			accepted = append(accepted, candidates[i])
		}
	}

	return accepted, nil
}

// takeEpoch hands the ingested edges and ghosts to the epoch and leaves the
// PE empty for the next one.
func (st *peState) takeEpoch() (local, spanning []core.Edge, ghosts map[core.VertexID]Vertex) {
	st.ghostMu.Lock()
	ghosts = st.ghosts
	st.ghosts = make(map[core.VertexID]Vertex)
	st.ghostMu.Unlock()

	st.edgeMu.Lock()
	local, spanning = st.localEdges, st.spanningEdges
	st.localEdges, st.spanningEdges = nil, nil
	st.edgeMu.Unlock()

	st.treeMu.Lock()
	st.localTree, st.spanningTree = nil, nil
	st.treeMu.Unlock()

	return local, spanning, ghosts
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
