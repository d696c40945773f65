// SPDX-License-Identifier: MIT
//
// Package pgas is a small in-process active-messaging substrate: a World of
// N processing elements (PEs) that share nothing but the ability to send
// each other typed request messages.
//
// Model:
//
//   - Each PE owns an unbounded mailbox drained by one loop goroutine. A
//     received message runs as one handler invocation on that goroutine.
//   - A handler never blocks on another PE. It settles its Reply exactly once
//     by calling Resolve, Fail or Forward. Forward re-dispatches a message to
//     another PE carrying the same reply, which is how multi-hop requests
//     travel as explicit continuations instead of nested awaits.
//   - Send returns a *Future; Post is fire-and-forget. A failed posted
//     message is fatal: the World records the error and cancels, so every
//     pending Await and Barrier returns it.
//   - Barrier blocks a PE until all PEs reach the same barrier. WaitAll blocks
//     until no message is in flight anywhere. Quiesce = Barrier, WaitAll,
//     Barrier: the standard phase separator.
//   - Run executes an SPMD function on every PE concurrently and returns the
//     first error.
//
// There is no ambient "current PE": every operation takes the *PE it runs on.
//
// Errors:
//
//	ErrInvalidPE         - PE index outside [0, NumPEs).
//	ErrRemoteUnavailable - destination mailbox closed.
//	ErrWorldClosed       - the World was closed.
//	ErrUnresolved        - a handler returned without settling its Reply.
package pgas
