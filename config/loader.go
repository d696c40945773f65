// SPDX-License-Identifier: MIT
//
// File: loader.go
// Role: HCL decoding of run files into Run.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/disjointset"
	"github.com/katalvlaran/dsforest/distarray"
	"github.com/katalvlaran/dsforest/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// fileRoot is the HCL shape of a run file. Pointers tell absent attributes
// from zero values.
type fileRoot struct {
	PEs          *int           `hcl:"pes,optional"`
	Capacity     *uint64        `hcl:"capacity,optional"`
	Vertices     *uint64        `hcl:"vertices,optional"`
	Distribution *string        `hcl:"distribution,optional"`
	Protocol     *string        `hcl:"protocol,optional"`
	RootSearch   *string        `hcl:"root_search,optional"`
	Compression  *bool          `hcl:"compression,optional"`
	Edges        hcl.Expression `hcl:"edges,optional"`
	EdgeFile     *string        `hcl:"edge_file,optional"`
	RMAT         *rmatBlock     `hcl:"rmat,block"`
}

type rmatBlock struct {
	Order      int       `hcl:"order"`
	EdgeFactor *int      `hcl:"edge_factor,optional"`
	Fuzz       *float64  `hcl:"fuzz,optional"`
	Seed       *int64    `hcl:"seed,optional"`
	Partition  []float64 `hcl:"partition,optional"`
}

// pairList is the type every edges expression is converted to.
var pairList = cty.List(cty.List(cty.Number))

// Load reads and decodes the run file at path. A relative edge_file is
// resolved against the file's directory.
func Load(ctx context.Context, path string) (*Run, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	run, err := Parse(ctx, src, path)
	if err != nil {
		return nil, err
	}
	if run.EdgeFile != "" && !filepath.IsAbs(run.EdgeFile) {
		run.EdgeFile = filepath.Join(filepath.Dir(path), run.EdgeFile)
	}

	return run, nil
}

// Parse decodes src, named filename in diagnostics, over Default() and
// validates the result.
func Parse(ctx context.Context, src []byte, filename string) (*Run, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("decoding run file", "file", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %w", filename, diags)
	}

	run, err := root.translate()
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("run file decoded", "file", filename, "pes", run.PEs,
		"edges", len(run.Edges), "edge_file", run.EdgeFile, "rmat", run.RMAT != nil)

	return run, nil
}

func (f *fileRoot) translate() (*Run, error) {
	run := Default()
	if f.PEs != nil {
		run.PEs = *f.PEs
	}
	if f.Capacity != nil {
		run.Capacity = *f.Capacity
	}
	if f.Vertices != nil {
		run.Vertices = *f.Vertices
	}
	if f.Compression != nil {
		run.Compression = *f.Compression
	}
	if f.EdgeFile != nil {
		run.EdgeFile = *f.EdgeFile
	}

	var err error
	if f.Distribution != nil {
		if run.Distribution, err = distarray.ParseDistribution(*f.Distribution); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if f.Protocol != nil {
		if run.Protocol, err = disjointset.ParseProtocol(*f.Protocol); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if f.RootSearch != nil {
		if run.RootSearch, err = disjointset.ParseRootSearch(*f.RootSearch); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if f.Edges != nil {
		if run.Edges, err = decodeEdges(f.Edges); err != nil {
			return nil, err
		}
	}
	if f.RMAT != nil {
		m, err := f.RMAT.translate()
		if err != nil {
			return nil, err
		}
		run.RMAT = &m
	}

	return &run, nil
}

func (b *rmatBlock) translate() (RMAT, error) {
	m := DefaultRMAT(b.Order)
	if b.EdgeFactor != nil {
		m.EdgeFactor = *b.EdgeFactor
	}
	if b.Fuzz != nil {
		m.Fuzz = *b.Fuzz
	}
	if b.Seed != nil {
		m.Seed = *b.Seed
	}
	if b.Partition != nil {
		if len(b.Partition) != 4 {
			return RMAT{}, fmt.Errorf("rmat partition has %d weights, want 4: %w", len(b.Partition), ErrInvalidConfig)
		}
		copy(m.Partition[:], b.Partition)
	}

	return m, nil
}

// decodeEdges evaluates expr and converts it to edges. A null value means
// the attribute was absent.
func decodeEdges(expr hcl.Expression) ([]core.Edge, error) {
	val, diags := expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	rng := expr.Range()
	val, err := convert.Convert(val, pairList)
	if err != nil {
		return nil, fmt.Errorf("edges at %s: want a list of [u, v] pairs: %w", rng, err)
	}
	var pairs [][]uint64
	if err := gocty.FromCtyValue(val, &pairs); err != nil {
		return nil, fmt.Errorf("edges at %s: %w", rng, err)
	}

	edges := make([]core.Edge, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("edges at %s: element %d has %d ids, want 2: %w", rng, i, len(p), ErrInvalidConfig)
		}
		edges[i] = core.NewEdge(p[0], p[1])
	}

	return edges, nil
}
