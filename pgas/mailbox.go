// SPDX-License-Identifier: MIT
//
// File: mailbox.go
// Role: unbounded FIFO mailbox and the in-flight counter behind WaitAll.
//
// Handlers forward messages from inside a PE loop. A bounded channel would let
// two loops block on each other's full inboxes, so the queue grows instead.

package pgas

import (
	"context"
	"sync"
)

// envelope is one queued handler invocation.
type envelope struct {
	run func(ctx context.Context, pe *PE)
}

type mailbox struct {
	mu     sync.Mutex
	queue  []envelope
	notify chan struct{} // capacity 1; a token means "queue may be non-empty"
	closed bool
}

func newMailbox() *mailbox {
	return &mailbox{notify: make(chan struct{}, 1)}
}

// push enqueues env and reports false if the mailbox is closed.
func (m *mailbox) push(env envelope) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, env)
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}

	return true
}

// pop blocks until an envelope is available. It reports false once the
// mailbox is closed and drained, or when ctx is done.
func (m *mailbox) pop(ctx context.Context) (envelope, bool) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			env := m.queue[0]
			m.queue[0] = envelope{}
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return env, true
		}
		closed := m.closed
		m.mu.Unlock()
		if closed {
			return envelope{}, false
		}

		select {
		case <-m.notify:
		case <-ctx.Done():
			return envelope{}, false
		}
	}
}

func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// quiescence counts messages queued or running anywhere in the World.
type quiescence struct {
	mu   sync.Mutex
	n    int64
	idle chan struct{} // closed while n == 0
}

func newQuiescence() *quiescence {
	idle := make(chan struct{})
	close(idle)

	return &quiescence{idle: idle}
}

func (q *quiescence) add() {
	q.mu.Lock()
	if q.n == 0 {
		q.idle = make(chan struct{})
	}
	q.n++
	q.mu.Unlock()
}

func (q *quiescence) done() {
	q.mu.Lock()
	q.n--
	if q.n == 0 {
		close(q.idle)
	}
	q.mu.Unlock()
}

// wait returns the channel closed when the counter next reaches zero.
func (q *quiescence) wait() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.idle
}
