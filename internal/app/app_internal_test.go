// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"testing"

	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/pgas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseWith(t *testing.T) {
	fatal := errors.New("handler failed")
	runErr := errors.New("epoch failed")

	closed := 0
	ok := closerFunc(func() error { closed++; return nil })
	failing := closerFunc(func() error { closed++; return fatal })

	assert.NoError(t, closeWith(nil, ok))
	assert.ErrorIs(t, closeWith(nil, failing), fatal, "close error surfaces when nothing else failed")
	assert.Equal(t, runErr, closeWith(runErr, failing), "the first error wins")
	assert.Equal(t, 3, closed, "always closes")

	w, err := pgas.NewWorld(2)
	require.NoError(t, err)
	assert.NoError(t, closeWith(nil, w))
	assert.ErrorIs(t, w.Err(), pgas.ErrWorldClosed)
}

func TestValidate(t *testing.T) {
	edges := core.EdgesFromPairs([][2]core.VertexID{{0, 1}, {1, 2}, {2, 0}, {3, 3}, {4, 5}})
	res := &Result{
		Vertices:  7,
		Tree:      core.EdgesFromPairs([][2]core.VertexID{{0, 1}, {1, 2}, {4, 5}}),
		Partition: [][]core.VertexID{{0, 1, 2}, {3}, {4, 5}, {6}},
	}
	require.NoError(t, validate(res, edges))

	res.Partition = [][]core.VertexID{{0, 1, 2}, {3}, {4, 5, 6}}
	assert.ErrorIs(t, validate(res, edges), ErrMismatch)

	res.Partition = [][]core.VertexID{{0, 1, 2}, {3}, {4, 5}, {6}}
	res.Tree = core.EdgesFromPairs([][2]core.VertexID{{0, 1}, {4, 5}})
	assert.ErrorIs(t, validate(res, edges), ErrMismatch, "forest misses vertex 2")
}
