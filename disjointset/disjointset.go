// SPDX-License-Identifier: MIT
//
// File: disjointset.go
// Role: DisjointSet construction, per-PE state, vertex table access, ownership routing.

package disjointset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/distarray"
	"github.com/katalvlaran/dsforest/pgas"
)

// DisjointSet is a union-find forest whose vertex table is partitioned over
// the PEs of a pgas.World. Every method that takes a *pgas.PE must be called
// from that PE's driver goroutine (for example inside World.Run).
type DisjointSet struct {
	world    *pgas.World
	capacity uint64
	table    *distarray.Array
	layout   distarray.Layout
	cfg      config
	metrics  *metrics
	pes      []*peState

	ingested atomic.Bool // set by ingestion, consumed by ProcessEdges
}

// peState is the PE-resident part of the set. The ghost map and the edge
// lists have separate locks; insertEdge takes them in that order.
type peState struct {
	ghostMu sync.Mutex
	ghosts  map[core.VertexID]Vertex

	edgeMu        sync.Mutex
	localEdges    []core.Edge
	spanningEdges []core.Edge

	treeMu       sync.Mutex
	localTree    []core.Edge
	spanningTree []core.Edge
	stats        PEStats
}

func newPEState() *peState {
	return &peState{ghosts: make(map[core.VertexID]Vertex)}
}

// New creates an empty set able to hold vertex ids [0, capacity) on world's
// PEs, laid out with dist. Vertices must be registered with AddNewVertex
// before edges referencing them are processed.
//
// Errors:
//   - ErrInvalidCapacity if capacity > MaxCapacity.
func New(world *pgas.World, capacity uint64, dist distarray.Distribution, opts ...Option) (*DisjointSet, error) {
	return newSet(world, capacity, append(append([]Option(nil), opts...), WithDistribution(dist)))
}

// NewWithVertices creates a set and registers identity vertices
// 0..initial-1. The distribution defaults to Block. The registration counts
// as ingestion, so ProcessEdges may run even if no edge is added.
//
// Errors:
//   - ErrInvalidCapacity if capacity > MaxCapacity.
//   - ErrVertexOutOfRange if initial > capacity.
func NewWithVertices(world *pgas.World, capacity, initial uint64, opts ...Option) (*DisjointSet, error) {
	if initial > capacity {
		return nil, fmt.Errorf("disjointset: NewWithVertices(%d of %d): %w", initial, capacity, ErrVertexOutOfRange)
	}
	ds, err := newSet(world, capacity, opts)
	if err != nil {
		return nil, err
	}

	for pe := 0; pe < world.NumPEs(); pe++ {
		shard := ds.table.Local(world.PE(pe))
		for off := uint64(0); off < shard.Len(); off++ {
			if id := shard.GlobalIndex(off); id < initial {
				shard.Store(off, Identity(id).word())
			}
		}
	}
	if initial > 0 {
		ds.ingested.Store(true)
	}

	return ds, nil
}

func newSet(world *pgas.World, capacity uint64, opts []Option) (*DisjointSet, error) {
	if capacity > MaxCapacity {
		return nil, fmt.Errorf("disjointset: capacity %d > %d: %w", capacity, uint64(MaxCapacity), ErrInvalidCapacity)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	table, err := distarray.New(world, capacity, cfg.dist)
	if err != nil {
		return nil, fmt.Errorf("disjointset: vertex table: %w", err)
	}

	ds := &DisjointSet{
		world:    world,
		capacity: capacity,
		table:    table,
		layout:   table.Layout(),
		cfg:      cfg,
		metrics:  newMetrics(cfg.registry),
		pes:      make([]*peState, world.NumPEs()),
	}
	for i := range ds.pes {
		ds.pes[i] = newPEState()
	}
	world.Logger().Debug("disjoint set created",
		"capacity", capacity, "distribution", cfg.dist.String(),
		"protocol", cfg.protocol.String(), "root_search", cfg.rootSearch.String())

	return ds, nil
}

// World returns the World the set is distributed over.
func (ds *DisjointSet) World() *pgas.World { return ds.world }

// Capacity returns the maximum vertex count.
func (ds *DisjointSet) Capacity() uint64 { return ds.capacity }

// Protocol returns the remote union protocol in use.
func (ds *DisjointSet) Protocol() Protocol { return ds.cfg.protocol }

// VertexOwner returns the PE owning vertex v.
func (ds *DisjointSet) VertexOwner(v core.VertexID) int { return ds.layout.OwnerOf(v) }

// EdgeOwner returns the PE that stores and processes e: hash(e) mod NumPEs.
func (ds *DisjointSet) EdgeOwner(e core.Edge) int {
	return int(e.Hash() % uint64(ds.layout.NumPEs()))
}

// IsLocalEdge reports whether both endpoints and the edge itself are owned
// by the same PE.
func (ds *DisjointSet) IsLocalEdge(e core.Edge) bool {
	owner := ds.EdgeOwner(e)
	return ds.VertexOwner(e.U) == owner && ds.VertexOwner(e.V) == owner
}

func (ds *DisjointSet) checkRange(id core.VertexID) error {
	if id >= ds.capacity {
		return fmt.Errorf("disjointset: vertex %d of %d: %w", id, ds.capacity, ErrVertexOutOfRange)
	}
	return nil
}

// slot returns the word of a vertex owned by pe.
func (ds *DisjointSet) slot(pe *pgas.PE, id core.VertexID) (*atomic.Uint64, error) {
	w, err := ds.table.Word(pe, id)
	if errors.Is(err, distarray.ErrIndexOutOfRange) {
		return nil, ds.checkRange(id)
	}

	return w, err
}

// load reads a vertex owned by pe.
func (ds *DisjointSet) load(pe *pgas.PE, id core.VertexID) (Vertex, *atomic.Uint64, error) {
	w, err := ds.slot(pe, id)
	if err != nil {
		return Vertex{}, nil, err
	}
	v, ok := unpack(id, w.Load())
	if !ok {
		return Vertex{}, nil, fmt.Errorf("disjointset: vertex %d: %w", id, ErrUnknownVertex)
	}

	return v, w, nil
}

// At returns the current record of vertex id, asking its owner when id is
// remote. Must not be called from inside a message handler.
//
// Errors:
//   - ErrVertexOutOfRange, ErrUnknownVertex.
func (ds *DisjointSet) At(ctx context.Context, pe *pgas.PE, id core.VertexID) (Vertex, error) {
	if err := ds.checkRange(id); err != nil {
		return Vertex{}, err
	}
	w, err := ds.table.Load(ctx, pe, id)
	if err != nil {
		return Vertex{}, err
	}
	v, ok := unpack(id, w)
	if !ok {
		return Vertex{}, fmt.Errorf("disjointset: vertex %d: %w", id, ErrUnknownVertex)
	}

	return v, nil
}

// CompareAndExchange replaces the record of expected.Value with next when
// the stored parent and rank still equal expected's. It returns the record
// observed before the attempt and whether the swap happened. Remote ids go
// through the owner. Must not be called from inside a message handler.
func (ds *DisjointSet) CompareAndExchange(ctx context.Context, pe *pgas.PE, expected, next Vertex) (Vertex, bool, error) {
	if !expected.Equal(next) {
		return Vertex{}, false, fmt.Errorf("disjointset: exchange %d for %d: records of different vertices", expected.Value, next.Value)
	}
	if err := ds.checkRange(expected.Value); err != nil {
		return Vertex{}, false, err
	}
	cur, swapped, err := ds.table.CompareAndSwap(ctx, pe, expected.Value, expected.word(), next.word())
	if err != nil {
		return Vertex{}, false, err
	}
	v, ok := unpack(expected.Value, cur)
	if !ok {
		return Vertex{}, false, fmt.Errorf("disjointset: vertex %d: %w", expected.Value, ErrUnknownVertex)
	}
	if !swapped {
		ds.metrics.casRetries.Inc()
	}

	return v, swapped, nil
}
