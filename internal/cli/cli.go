// SPDX-License-Identifier: MIT
//
// Package cli parses dsforest command lines into a run configuration.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/katalvlaran/dsforest/builder"
	"github.com/katalvlaran/dsforest/config"
	"github.com/katalvlaran/dsforest/core"
	"github.com/katalvlaran/dsforest/disjointset"
	"github.com/katalvlaran/dsforest/distarray"
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Options is a parsed command line.
type Options struct {
	Run        *config.Run
	ConfigPath string

	LogFormat  string
	LogLevel   string
	Profile    string // "", "cpu" or "mem"
	ProfileDir string

	DumpEdges  string // write the edge stream here as JSON
	PrintTree  bool
	PrintComps bool
	Validate   bool
	Metrics    bool
}

// Parse processes command-line arguments. It returns the options, whether
// the program should exit cleanly (help), or an ExitError.
func Parse(ctx context.Context, args []string, output io.Writer) (*Options, bool, error) {
	slog.Debug("CLI parser started.")
	fs := flag.NewFlagSet("dsforest", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
dsforest - distributed connected components and spanning forests.

Usage:
  dsforest [options] [RUN_FILE]

Arguments:
  RUN_FILE
    Optional HCL run file. Flags override its values.

Options:
`)
		fs.PrintDefaults()
	}

	configFlag := fs.String("config", "", "Path to the HCL run file.")
	cFlag := fs.String("c", "", "Path to the HCL run file (shorthand).")
	logFormat := fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevel := fs.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	profileFlag := fs.String("profile", "", "Write a profile. Options: 'cpu' or 'mem'.")
	profileDir := fs.String("profile-dir", ".", "Directory for profile output.")
	dumpEdges := fs.String("dump-edges", "", "Write the processed edge stream to this JSON file.")
	printTree := fs.Bool("tree", false, "Print the spanning forest edges.")
	printComps := fs.Bool("components", false, "Print the members of every component.")
	validate := fs.Bool("validate", false, "Check the result against a serial reference.")
	metrics := fs.Bool("metrics", false, "Print the run's metrics in text exposition format.")

	fs.Int("pes", 1, "Number of processing elements.")
	fs.Uint64("capacity", 0, "Vertex capacity; 0 derives it from vertices and edges.")
	fs.Uint64("vertices", 0, "Identity vertices registered up front; 0 registers the whole capacity.")
	fs.String("distribution", "block", "Vertex distribution. Options: 'block' or 'cyclic'.")
	fs.String("protocol", "find-union", "Remote union protocol. Options: 'find-union' or 'hook'.")
	fs.String("root-search", "boundary", "Local root walk. Options: 'boundary' or 'fixpoint'.")
	fs.Bool("compression", true, "Compress paths after remote links.")
	fs.String("edges", "", "Inline edges, e.g. '0-1,1-2'.")
	fs.String("edge-file", "", "JSON file holding an array of [u, v] pairs.")
	fs.Int("rmat-order", 0, "Generate an RMAT stream over 2^order vertices.")
	fs.Int("rmat-edge-factor", builder.DefaultEdgeFactor, "RMAT pairs per vertex.")
	fs.Int64("rmat-seed", 0, "RMAT seed.")
	fs.Float64("rmat-fuzz", builder.DefaultFuzz, "RMAT per-level noise in [0, 1).")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	opts := &Options{
		LogFormat:  strings.ToLower(*logFormat),
		LogLevel:   strings.ToLower(*logLevel),
		Profile:    strings.ToLower(*profileFlag),
		ProfileDir: *profileDir,
		DumpEdges:  *dumpEdges,
		PrintTree:  *printTree,
		PrintComps: *printComps,
		Validate:   *validate,
		Metrics:    *metrics,
	}
	switch {
	case *configFlag != "":
		opts.ConfigPath = *configFlag
	case *cFlag != "":
		opts.ConfigPath = *cFlag
	case fs.NArg() > 0:
		opts.ConfigPath = fs.Arg(0)
	}

	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	switch opts.Profile {
	case "", "cpu", "mem":
	default:
		return nil, false, usageError("invalid profile: must be 'cpu' or 'mem'")
	}

	run := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(ctx, opts.ConfigPath)
		if err != nil {
			return nil, false, usageError("%v", err)
		}
		run = *loaded
	}

	set := make(map[string]*flag.Flag)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = f })
	for _, name := range overrideOrder {
		if f, ok := set[name]; ok {
			if err := override(&run, f); err != nil {
				return nil, false, usageError("%v", err)
			}
		}
	}
	if err := run.Validate(); err != nil {
		return nil, false, usageError("%v", err)
	}
	opts.Run = &run
	slog.Debug("CLI parser finished successfully.", "config", opts.ConfigPath, "pes", run.PEs)

	return opts, false, nil
}

// overrideOrder lists the run flags; edge sources come before the rmat
// tuning flags that depend on them.
var overrideOrder = []string{
	"pes", "capacity", "vertices", "distribution", "protocol", "root-search", "compression",
	"edges", "edge-file", "rmat-order", "rmat-edge-factor", "rmat-seed", "rmat-fuzz",
}

// override applies one explicitly set flag to run. Setting one edge source
// clears the others.
func override(run *config.Run, f *flag.Flag) error {
	getter, _ := f.Value.(flag.Getter)
	val := getter.Get()
	var err error

	switch f.Name {
	case "pes":
		run.PEs = val.(int)
	case "capacity":
		run.Capacity = val.(uint64)
	case "vertices":
		run.Vertices = val.(uint64)
	case "distribution":
		run.Distribution, err = distarray.ParseDistribution(val.(string))
	case "protocol":
		run.Protocol, err = disjointset.ParseProtocol(val.(string))
	case "root-search":
		run.RootSearch, err = disjointset.ParseRootSearch(val.(string))
	case "compression":
		run.Compression = val.(bool)
	case "edges":
		run.Edges, err = ParseEdges(val.(string))
		run.EdgeFile, run.RMAT = "", nil
	case "edge-file":
		run.EdgeFile = val.(string)
		run.Edges, run.RMAT = nil, nil
	case "rmat-order":
		m := config.DefaultRMAT(val.(int))
		if run.RMAT != nil {
			m = *run.RMAT
			m.Order = val.(int)
		}
		run.RMAT = &m
		run.Edges, run.EdgeFile = nil, ""
	case "rmat-edge-factor", "rmat-seed", "rmat-fuzz":
		if run.RMAT == nil {
			return fmt.Errorf("-%s needs -rmat-order or an rmat block", f.Name)
		}
		switch f.Name {
		case "rmat-edge-factor":
			run.RMAT.EdgeFactor = val.(int)
		case "rmat-seed":
			run.RMAT.Seed = val.(int64)
		default:
			run.RMAT.Fuzz = val.(float64)
		}
	}

	return err
}

// ParseEdges reads a comma-separated list of "u-v" pairs.
func ParseEdges(s string) ([]core.Edge, error) {
	var edges []core.Edge
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		us, vs, ok := strings.Cut(item, "-")
		if !ok {
			return nil, fmt.Errorf("edge %q: want u-v", item)
		}
		u, err := strconv.ParseUint(strings.TrimSpace(us), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("edge %q: %w", item, err)
		}
		v, err := strconv.ParseUint(strings.TrimSpace(vs), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("edge %q: %w", item, err)
		}
		edges = append(edges, core.NewEdge(u, v))
	}

	return edges, nil
}
