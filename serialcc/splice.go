// SPDX-License-Identifier: MIT
//
// File: splice.go
// Role: SpliceSet, a serial union-find over a dense arena.

package serialcc

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dsforest/core"
)

// ErrVertexOutOfRange is returned for ids outside [0, n).
var ErrVertexOutOfRange = errors.New("serialcc: vertex out of range")

// SpliceSet is a union-find forest over ids [0, n). Ranks strictly increase
// along every parent chain and only roots ever gain rank.
type SpliceSet struct {
	parent []core.VertexID
	rank   []uint32
}

// NewSpliceSet returns n singletons.
func NewSpliceSet(n uint64) *SpliceSet {
	s := &SpliceSet{
		parent: make([]core.VertexID, n),
		rank:   make([]uint32, n),
	}
	for i := range s.parent {
		s.parent[i] = core.VertexID(i)
	}

	return s
}

// Len returns the number of vertices.
func (s *SpliceSet) Len() uint64 { return uint64(len(s.parent)) }

// Parent returns the current parent of x.
func (s *SpliceSet) Parent(x core.VertexID) core.VertexID { return s.parent[x] }

// Rank returns the current rank of x.
func (s *SpliceSet) Rank(x core.VertexID) uint32 { return s.rank[x] }

func (s *SpliceSet) check(ids ...core.VertexID) error {
	for _, id := range ids {
		if id >= s.Len() {
			return fmt.Errorf("serialcc: vertex %d of %d: %w", id, s.Len(), ErrVertexOutOfRange)
		}
	}

	return nil
}

// Find returns the root of x, halving the path on the way up.
//
// Complexity: amortized O(α(n)).
func (s *SpliceSet) Find(x core.VertexID) (core.VertexID, error) {
	if err := s.check(x); err != nil {
		return 0, err
	}
	for s.parent[x] != x {
		s.parent[x] = s.parent[s.parent[x]]
		x = s.parent[x]
	}

	return x, nil
}

// UnionByRank links the roots of a and b, the lower rank under the higher.
// On equal rank the larger id goes under the smaller one, whose rank grows.
// It reports whether two trees were joined.
func (s *SpliceSet) UnionByRank(a, b core.VertexID) (bool, error) {
	ra, err := s.Find(a)
	if err != nil {
		return false, err
	}
	rb, err := s.Find(b)
	if err != nil {
		return false, err
	}
	if ra == rb {
		return false, nil
	}

	switch {
	case s.rank[ra] > s.rank[rb]:
		s.parent[rb] = ra
	case s.rank[rb] > s.rank[ra]:
		s.parent[ra] = rb
	case ra < rb:
		s.parent[rb] = ra
		s.rank[ra]++
	default:
		s.parent[ra] = rb
		s.rank[rb]++
	}

	return true, nil
}

// UnionSplice joins the sets of a and b by walking both chains at once.
// Whichever side has the lower-ranked parent is re-pointed to the other
// side's parent and then climbs; equal-ranked parents make one side climb
// without a write. When both sides reach distinct equal-rank roots, a is
// linked under b and b's rank grows. It reports whether a root was grafted,
// which happens exactly when a and b were in different sets.
//
// Complexity: O(path length) without a separate Find.
func (s *SpliceSet) UnionSplice(a, b core.VertexID) (bool, error) {
	if err := s.check(a, b); err != nil {
		return false, err
	}

	x, y := a, b
	for px, py := s.parent[x], s.parent[y]; px != py; px, py = s.parent[x], s.parent[y] {
		switch {
		case s.rank[px] < s.rank[py]:
			s.parent[x] = py
			if x == px {
				return true, nil
			}
			x = px
		case s.rank[py] < s.rank[px]:
			s.parent[y] = px
			if y == py {
				return true, nil
			}
			y = py
		case x != px:
			x = px
		case y != py:
			y = py
		default:
			s.parent[x] = y
			s.rank[y]++
			return true, nil
		}
	}

	return false, nil
}

// InterleavedFind reports whether x and y are in the same set by climbing
// the lower-ranked side one step at a time. It stops as soon as the two
// cursors meet or the side that must climb is a root, so it usually touches
// fewer records than two full Finds. It never writes.
func (s *SpliceSet) InterleavedFind(x, y core.VertexID) (bool, error) {
	if err := s.check(x, y); err != nil {
		return false, err
	}

	for x != y {
		switch {
		case s.rank[x] < s.rank[y], s.rank[x] == s.rank[y] && s.parent[x] != x:
			if s.parent[x] == x {
				return false, nil
			}
			x = s.parent[x]
		default:
			if s.parent[y] == y {
				return false, nil
			}
			y = s.parent[y]
		}
	}

	return true, nil
}

// Roots returns the root of every vertex, indexed by id.
func (s *SpliceSet) Roots() []core.VertexID {
	out := make([]core.VertexID, len(s.parent))
	for i := range out {
		out[i], _ = s.Find(core.VertexID(i))
	}

	return out
}
