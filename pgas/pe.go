// SPDX-License-Identifier: MIT
//
// File: pe.go
// Role: processing element: message loop, identity, Barrier/WaitAll/Quiesce.

package pgas

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/katalvlaran/dsforest/internal/ctxlog"
)

// PE is one processing element of a World. Its message loop runs handlers one
// at a time; driver code calling Exec may run alongside it.
type PE struct {
	id      int
	world   *World
	mailbox *mailbox
	logger  *slog.Logger

	sent    atomic.Uint64
	handled atomic.Uint64

	collSeq uint64 // driver-goroutine only
}

// Stats counts the messages a PE has sent and handled since the World started.
type Stats struct {
	PE      int
	Sent    uint64
	Handled uint64
}

func (pe *PE) loop(ctx context.Context) error {
	hctx := ctxlog.WithLogger(ctx, pe.logger)
	for {
		env, ok := pe.mailbox.pop(ctx)
		if !ok {
			return nil
		}
		env.run(hctx, pe)
		pe.world.inflight.done()
	}
}

// ID returns the PE index in [0, NumPEs).
func (pe *PE) ID() int { return pe.id }

// NumPEs returns the team size.
func (pe *PE) NumPEs() int { return len(pe.world.pes) }

// World returns the owning World.
func (pe *PE) World() *World { return pe.world }

// Logger returns the PE-tagged logger.
func (pe *PE) Logger() *slog.Logger { return pe.logger }

// Barrier blocks until every PE of the World has called Barrier.
func (pe *PE) Barrier(ctx context.Context) error {
	ch := pe.world.barrier.arrive()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-pe.world.ctx.Done():
		return pe.world.Err()
	}
}

// WaitAll blocks until no message is queued or running anywhere in the World.
// Drivers still issuing messages can restart activity afterwards; use Quiesce
// for a collective guarantee.
func (pe *PE) WaitAll(ctx context.Context) error {
	select {
	case <-pe.world.inflight.wait():
		return pe.world.Err()
	case <-ctx.Done():
		return ctx.Err()
	case <-pe.world.ctx.Done():
		return pe.world.Err()
	}
}

// Quiesce is the collective Barrier, WaitAll, Barrier sequence. On return
// every message issued before the call on any PE, and everything those
// handlers forwarded or posted, has completed.
func (pe *PE) Quiesce(ctx context.Context) error {
	if err := pe.Barrier(ctx); err != nil {
		return err
	}
	if err := pe.WaitAll(ctx); err != nil {
		return err
	}

	return pe.Barrier(ctx)
}

// Stats returns the PE's message counters.
func (pe *PE) Stats() Stats {
	return Stats{PE: pe.id, Sent: pe.sent.Load(), Handled: pe.handled.Load()}
}
