// SPDX-License-Identifier: MIT
//
// File: world.go
// Role: World lifecycle (NewWorld/Close), fatal error propagation, SPMD Run.

package pgas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/dsforest/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// World is a fixed team of PEs. Create it with NewWorld and release it with Close.
type World struct {
	pes      []*PE
	barrier  *barrier
	inflight *quiescence
	coll     collectives
	logger   *slog.Logger

	ctx    context.Context // cancelled on fatal error or Close
	cancel context.CancelCauseFunc
	loops  *errgroup.Group

	failOnce sync.Once
	failErr  error
	closed   atomic.Bool
	closeMu  sync.Mutex
}

// NewWorld starts numPEs message loops.
//
// Errors:
//   - ErrInvalidPE if numPEs < 1.
func NewWorld(numPEs int, opts ...Option) (*World, error) {
	if numPEs < 1 {
		return nil, fmt.Errorf("pgas: NewWorld(%d): %w", numPEs, ErrInvalidPE)
	}

	cfg := worldConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	w := &World{
		pes:      make([]*PE, numPEs),
		barrier:  newBarrier(numPEs),
		inflight: newQuiescence(),
		logger:   cfg.logger,
		ctx:      ctx,
		cancel:   cancel,
		loops:    &errgroup.Group{},
	}
	for i := range w.pes {
		w.pes[i] = &PE{
			id:      i,
			world:   w,
			mailbox: newMailbox(),
			logger:  cfg.logger.With("pe", i),
		}
	}
	for _, pe := range w.pes {
		w.loops.Go(func() error { return pe.loop(ctx) })
	}
	w.logger.Debug("world started", "pes", numPEs)

	return w, nil
}

// NumPEs returns the team size.
func (w *World) NumPEs() int {
	return len(w.pes)
}

// PE returns the PE with index i, or nil when i is out of range.
func (w *World) PE(i int) *PE {
	if i < 0 || i >= len(w.pes) {
		return nil
	}

	return w.pes[i]
}

// Logger returns the World's base logger.
func (w *World) Logger() *slog.Logger {
	return w.logger
}

// Err returns the fatal error, ErrWorldClosed after Close, or nil.
func (w *World) Err() error {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()

	if w.failErr != nil {
		return w.failErr
	}
	if w.closed.Load() {
		return ErrWorldClosed
	}

	return nil
}

// fail records the first fatal error and stops every PE.
func (w *World) fail(err error) {
	w.failOnce.Do(func() {
		w.closeMu.Lock()
		w.failErr = err
		w.closeMu.Unlock()
		w.logger.Error("fatal message failure", "err", err)
		w.cancel(err)
	})
}

// Close waits for in-flight messages to drain, stops all PE loops and returns
// the fatal error, if one occurred. Close is idempotent.
func (w *World) Close() error {
	if w.closed.CompareAndSwap(false, true) {
		select {
		case <-w.inflight.wait():
		case <-w.ctx.Done():
		}
		for _, pe := range w.pes {
			pe.mailbox.close()
		}
		_ = w.loops.Wait()
		w.cancel(ErrWorldClosed)
		w.logger.Debug("world closed")
	}

	w.closeMu.Lock()
	defer w.closeMu.Unlock()

	return w.failErr
}

// Run executes fn on every PE concurrently (SPMD style) and returns the first
// error. A failing PE cancels the context seen by the others, which releases
// any of them blocked in Barrier or Await.
func (w *World) Run(ctx context.Context, fn func(ctx context.Context, pe *PE) error) error {
	if err := w.Err(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, pe := range w.pes {
		g.Go(func() error {
			if err := fn(ctxlog.WithLogger(gctx, pe.logger), pe); err != nil {
				return fmt.Errorf("pe %d: %w", pe.id, err)
			}
			return nil
		})
	}
	err := g.Wait()
	if werr := w.Err(); werr != nil && !errors.Is(err, werr) {
		return errors.Join(err, werr)
	}

	return err
}
