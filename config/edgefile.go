// SPDX-License-Identifier: MIT
//
// File: edgefile.go
// Role: JSON edge files, an array of [u, v] pairs.

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/dsforest/core"
)

// ReadEdges decodes a JSON array of [u, v] pairs.
func ReadEdges(r io.Reader) ([]core.Edge, error) {
	var pairs [][2]core.VertexID
	if err := json.NewDecoder(r).Decode(&pairs); err != nil {
		return nil, fmt.Errorf("config: edge list: %w", err)
	}

	return core.EdgesFromPairs(pairs), nil
}

// ReadEdgeFile reads the edge file at path.
func ReadEdgeFile(path string) ([]core.Edge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open edge file: %w", err)
	}
	defer f.Close()

	edges, err := ReadEdges(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	return edges, nil
}

// WriteEdges encodes edges as a JSON array of [u, v] pairs, one per line.
func WriteEdges(w io.Writer, edges []core.Edge) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, e := range edges {
		sep := ",\n"
		if i == 0 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%s  [%d, %d]", sep, e.U, e.V); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n]\n")

	return err
}
