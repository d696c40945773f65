// SPDX-License-Identifier: MIT
//
// File: local.go
// Role: local root search and union-by-rank with splicing over PE-resident records.
//
// Both run without messages. The local phase runs while no handler is in
// flight, so splicing uses plain stores.

package disjointset

import (
	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/pgas"
)

// localRoot climbs from id while parents are owned by pe. It returns the
// last record reached and whether that record is a true root (false means
// its parent lives on another PE).
func (ds *DisjointSet) localRoot(pe *pgas.PE, id core.VertexID) (Vertex, bool, error) {
	r, root, err := ds.walkLocal(pe, id)
	if err != nil || ds.cfg.rootSearch == RootSearchBoundary {
		return r, root, err
	}

	for {
		next, nextRoot, err := ds.walkLocal(pe, r.Value)
		if err != nil {
			return Vertex{}, false, err
		}
		if next.Value == r.Value && nextRoot == root {
			return next, nextRoot, nil
		}
		r, root = next, nextRoot
	}
}

func (ds *DisjointSet) walkLocal(pe *pgas.PE, id core.VertexID) (Vertex, bool, error) {
	v, _, err := ds.load(pe, id)
	if err != nil {
		return Vertex{}, false, err
	}
	for !v.IsRoot() {
		if ds.VertexOwner(v.Parent) != pe.ID() {
			return v, false, nil
		}
		if v, _, err = ds.load(pe, v.Parent); err != nil {
			return Vertex{}, false, err
		}
	}

	return v, true, nil
}

// unionSplice links the trees of u and v, both resident on pe with fully
// resident root chains. At each step the endpoint whose parent is lesser
// (Less) is re-pointed to the other endpoint's parent and then climbs. It
// reports whether a root was grafted, i.e. the edge joined two trees.
func (ds *DisjointSet) unionSplice(pe *pgas.PE, u, v core.VertexID) (bool, error) {
	x, xw, err := ds.load(pe, u)
	if err != nil {
		return false, err
	}
	y, yw, err := ds.load(pe, v)
	if err != nil {
		return false, err
	}
	px, _, err := ds.load(pe, x.Parent)
	if err != nil {
		return false, err
	}
	py, _, err := ds.load(pe, y.Parent)
	if err != nil {
		return false, err
	}

	for !px.Equal(py) {
		if Less(px, py) {
			xw.Store(pack(py.Value, x.Rank))
			if x.Equal(px) {
				return true, nil
			}
			if x, xw, err = ds.load(pe, px.Value); err != nil {
				return false, err
			}
			if px, _, err = ds.load(pe, x.Parent); err != nil {
				return false, err
			}
			continue
		}

		yw.Store(pack(px.Value, y.Rank))
		if y.Equal(py) {
			return true, nil
		}
		if y, yw, err = ds.load(pe, py.Value); err != nil {
			return false, err
		}
		if py, _, err = ds.load(pe, y.Parent); err != nil {
			return false, err
		}
	}

	return false, nil
}

// localPhase unions this PE's local edges. Edges whose root chains leave the
// PE (possible after an earlier epoch linked a local tree remotely) are
// returned as deferred and join the spanning edges.
func (ds *DisjointSet) localPhase(pe *pgas.PE, edges []core.Edge) (tree, deferred []core.Edge, err error) {
	for _, e := range edges {
		ru, residentU, err := ds.localRoot(pe, e.U)
		if err != nil {
			return nil, nil, err
		}
		rv, residentV, err := ds.localRoot(pe, e.V)
		if err != nil {
			return nil, nil, err
		}
		if ru.Equal(rv) {
			continue
		}
		if !residentU || !residentV {
			deferred = append(deferred, e)
			continue
		}

		grafted, err := ds.unionSplice(pe, e.U, e.V)
		if err != nil {
			return nil, nil, err
		}
		if grafted {
			tree = append(tree, e)
		}
	}

	return tree, deferred, nil
}
