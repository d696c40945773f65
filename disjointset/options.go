// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: functional options (distribution, root search, protocol, compression, metrics, tracing).

package disjointset

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/dsforest/distarray"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RootSearch selects how far the local root walk goes.
type RootSearch int

const (
	// RootSearchBoundary stops at the first vertex whose parent lives on
	// another PE and returns it.
	RootSearchBoundary RootSearch = iota

	// RootSearchFixpoint repeats the boundary walk from its own result until
	// two consecutive walks agree, absorbing concurrent re-parenting.
	RootSearchFixpoint
)

// String returns "boundary" or "fixpoint".
func (r RootSearch) String() string {
	if r == RootSearchFixpoint {
		return "fixpoint"
	}

	return "boundary"
}

// Protocol selects the remote union protocol.
type Protocol int

const (
	// ProtocolFindUnion resolves both global roots and links them by rank
	// with a compare-and-swap at the lower root's owner.
	ProtocolFindUnion Protocol = iota

	// ProtocolHook runs rounds of conditional star hooking (parent,
	// grandparent, parent, compare) alternated with pointer jumping.
	ProtocolHook
)

// String returns "find-union" or "hook".
func (p Protocol) String() string {
	if p == ProtocolHook {
		return "hook"
	}

	return "find-union"
}

// ParseRootSearch accepts "boundary" or "fixpoint".
func ParseRootSearch(s string) (RootSearch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boundary", "":
		return RootSearchBoundary, nil
	case "fixpoint":
		return RootSearchFixpoint, nil
	default:
		return 0, fmt.Errorf("disjointset: unknown root search %q", s)
	}
}

// ParseProtocol accepts "find-union" or "hook".
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "find-union", "findunion", "":
		return ProtocolFindUnion, nil
	case "hook":
		return ProtocolHook, nil
	default:
		return 0, fmt.Errorf("disjointset: unknown protocol %q", s)
	}
}

// Option configures a DisjointSet at construction.
type Option func(*config)

type config struct {
	dist        distarray.Distribution
	rootSearch  RootSearch
	protocol    Protocol
	compression bool
	registry    prometheus.Registerer
	tracer      trace.Tracer
}

func defaultConfig() config {
	return config{
		dist:        distarray.Block,
		rootSearch:  RootSearchBoundary,
		protocol:    ProtocolFindUnion,
		compression: true,
		registry:    prometheus.NewRegistry(),
		tracer:      otel.Tracer(tracerName),
	}
}

// WithDistribution sets the vertex table distribution (default Block).
func WithDistribution(d distarray.Distribution) Option {
	if d != distarray.Block && d != distarray.Cyclic {
		panic(fmt.Sprintf("disjointset: WithDistribution(%v): unknown distribution", d))
	}

	return func(c *config) { c.dist = d }
}

// WithRootSearch sets the local root walk policy (default RootSearchBoundary).
func WithRootSearch(r RootSearch) Option {
	if r != RootSearchBoundary && r != RootSearchFixpoint {
		panic(fmt.Sprintf("disjointset: WithRootSearch(%d): unknown policy", int(r)))
	}

	return func(c *config) { c.rootSearch = r }
}

// WithProtocol selects the remote union protocol (default ProtocolFindUnion).
// The protocol is fixed for the lifetime of the set.
func WithProtocol(p Protocol) Option {
	if p != ProtocolFindUnion && p != ProtocolHook {
		panic(fmt.Sprintf("disjointset: WithProtocol(%d): unknown protocol", int(p)))
	}

	return func(c *config) { c.protocol = p }
}

// WithPathCompression toggles the compression follow-up messages (default on).
func WithPathCompression(on bool) Option {
	return func(c *config) { c.compression = on }
}

// WithRegistry registers the set's metrics on reg instead of a private registry.
// Panics on nil.
func WithRegistry(reg prometheus.Registerer) Option {
	if reg == nil {
		panic("disjointset: WithRegistry(nil)")
	}

	return func(c *config) { c.registry = reg }
}

// WithTracer sets the tracer used for phase spans. Panics on nil.
func WithTracer(t trace.Tracer) Option {
	if t == nil {
		panic("disjointset: WithTracer(nil)")
	}

	return func(c *config) { c.tracer = t }
}
