// SPDX-License-Identifier: MIT
//
// File: future.go
// Role: single-assignment typed result of a Send, plus AwaitAll batching.

package pgas

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Waiter is the untyped view of a Future used for batching.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Future is the eventual result of a request. It completes exactly once.
type Future[T any] struct {
	world    *World
	done     chan struct{}
	once     sync.Once
	val      T
	err      error
	detached bool // posted: nobody awaits, failures are fatal to the World
}

func newFuture[T any](w *World) *Future[T] {
	return &Future[T]{world: w, done: make(chan struct{})}
}

// Ready returns an already resolved Future.
func Ready[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: v}
	close(f.done)

	return f
}

// Failed returns an already failed Future.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)

	return f
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
		if err != nil && f.detached && f.world != nil {
			f.world.fail(err)
		}
	})
}

// Done returns a channel closed on completion.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the Future completes, ctx is done, or the World fails.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	var zero T
	var worldDone <-chan struct{}
	if f.world != nil {
		worldDone = f.world.ctx.Done()
	}

	select {
	case <-f.done:
		return f.val, f.err
	default:
	}

	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-worldDone:
		// A late completion still wins over the World's failure.
		select {
		case <-f.done:
			return f.val, f.err
		default:
		}
		return zero, f.world.Err()
	}
}

// Wait is Await without the value.
func (f *Future[T]) Wait(ctx context.Context) error {
	_, err := f.Await(ctx)
	return err
}

// AwaitAll waits for every waiter and returns the first error, cancelling the
// remaining waits once one fails.
func AwaitAll[W Waiter](ctx context.Context, waiters ...W) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range waiters {
		g.Go(func() error { return w.Wait(gctx) })
	}

	return g.Wait()
}
