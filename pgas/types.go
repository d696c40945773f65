// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: sentinel errors and World options.

package pgas

import (
	"errors"
	"log/slog"
)

var (
	// ErrInvalidPE indicates a PE index outside [0, NumPEs) or a non-positive PE count.
	ErrInvalidPE = errors.New("pgas: invalid PE")

	// ErrRemoteUnavailable indicates the destination PE no longer accepts messages.
	ErrRemoteUnavailable = errors.New("pgas: remote PE unavailable")

	// ErrWorldClosed indicates the World has been shut down.
	ErrWorldClosed = errors.New("pgas: world closed")

	// ErrUnresolved indicates a handler returned without resolving, failing or forwarding.
	ErrUnresolved = errors.New("pgas: handler did not settle its reply")
)

// Option configures a World before its PEs start.
type Option func(*worldConfig)

type worldConfig struct {
	logger *slog.Logger
}

// WithLogger sets the base logger; every PE derives a child with a "pe" attribute.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("pgas: WithLogger(nil)")
	}

	return func(c *worldConfig) { c.logger = l }
}
