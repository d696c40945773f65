// SPDX-License-Identifier: MIT
//
// File: message.go
// Role: typed active messages, explicit continuations (Reply), Send/Post/Exec/Broadcast.

package pgas

import (
	"context"
	"fmt"
)

// Message is an active message producing a T. Handle runs on the destination
// PE and must settle reply exactly once (Resolve, Fail or Forward). It must
// not block waiting on other PEs.
type Message[T any] interface {
	Handle(ctx context.Context, pe *PE, reply *Reply[T])
}

// MessageFunc adapts a plain function to Message.
type MessageFunc[T any] func(ctx context.Context, pe *PE, reply *Reply[T])

// Handle calls f.
func (f MessageFunc[T]) Handle(ctx context.Context, pe *PE, reply *Reply[T]) {
	f(ctx, pe, reply)
}

// Reply is the continuation of a request. It belongs to one handler
// invocation; Forward hands it to the next hop.
type Reply[T any] struct {
	fut     *Future[T]
	pe      *PE
	settled bool
}

// Resolve completes the request with v.
func (r *Reply[T]) Resolve(v T) {
	r.settled = true
	r.fut.complete(v, nil)
}

// Fail completes the request with err.
func (r *Reply[T]) Fail(err error) {
	var zero T
	r.settled = true
	r.fut.complete(zero, err)
}

// Forward re-dispatches msg to dest; its handler inherits this continuation.
// Forwarding to the current PE re-queues the message behind pending work.
func (r *Reply[T]) Forward(dest int, msg Message[T]) {
	r.settled = true
	r.pe.sent.Add(1)
	dispatch(r.pe.world, dest, msg, r.fut)
}

// Send dispatches msg to dest and returns its Future.
func Send[T any](ctx context.Context, from *PE, dest int, msg Message[T]) *Future[T] {
	if err := ctx.Err(); err != nil {
		return Failed[T](err)
	}
	fut := newFuture[T](from.world)
	from.sent.Add(1)
	dispatch(from.world, dest, msg, fut)

	return fut
}

// Post dispatches msg to dest without a waiter. Failure is fatal to the World.
func Post[T any](from *PE, dest int, msg Message[T]) {
	fut := newFuture[T](from.world)
	fut.detached = true
	from.sent.Add(1)
	dispatch(from.world, dest, msg, fut)
}

// Exec runs msg inline on the calling goroutine as if it had been received by
// pe. Forwarded hops are dispatched normally.
func Exec[T any](ctx context.Context, pe *PE, msg Message[T]) *Future[T] {
	fut := newFuture[T](pe.world)
	runHandler(ctx, pe, msg, fut)

	return fut
}

// Broadcast sends msg to every PE, including from, and gathers the results
// indexed by PE.
func Broadcast[T any](ctx context.Context, from *PE, msg Message[T]) ([]T, error) {
	n := from.world.NumPEs()
	futs := make([]*Future[T], n)
	for i := 0; i < n; i++ {
		futs[i] = Send(ctx, from, i, msg)
	}

	out := make([]T, n)
	for i, f := range futs {
		v, err := f.Await(ctx)
		if err != nil {
			return nil, fmt.Errorf("pgas: broadcast reply from PE %d: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}

// dispatch queues msg on dest's mailbox, accounting it as in flight.
func dispatch[T any](w *World, dest int, msg Message[T], fut *Future[T]) {
	var zero T
	if dest < 0 || dest >= len(w.pes) {
		fut.complete(zero, fmt.Errorf("pgas: send to PE %d of %d: %w", dest, len(w.pes), ErrInvalidPE))
		return
	}

	w.inflight.add()
	ok := w.pes[dest].mailbox.push(envelope{run: func(ctx context.Context, pe *PE) {
		runHandler(ctx, pe, msg, fut)
	}})
	if !ok {
		w.inflight.done()
		fut.complete(zero, fmt.Errorf("pgas: send to PE %d: %w", dest, ErrRemoteUnavailable))
	}
}

// runHandler invokes msg and converts panics and unsettled replies into errors.
func runHandler[T any](ctx context.Context, pe *PE, msg Message[T], fut *Future[T]) {
	reply := &Reply[T]{fut: fut, pe: pe}
	defer func() {
		if rec := recover(); rec != nil {
			reply.Fail(fmt.Errorf("pgas: handler panic on PE %d: %v", pe.id, rec))
			return
		}
		if !reply.settled {
			reply.Fail(fmt.Errorf("pgas: %T on PE %d: %w", msg, pe.id, ErrUnresolved))
		}
	}()

	pe.handled.Add(1)
	msg.Handle(ctx, pe, reply)
}
