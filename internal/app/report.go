// SPDX-License-Identifier: MIT
//
// File: report.go
// Role: human-readable run summary and metrics dump.

package app

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/dsforest/core"
	"github.com/prometheus/common/expfmt"
)

func (a *App) report(res *Result) error {
	w := a.out
	fmt.Fprintf(w, "pes=%d capacity=%d vertices=%d edges=%d components=%d tree_edges=%d\n",
		res.PEs, res.Capacity, res.Vertices, res.EdgeCount, len(res.Partition), len(res.Tree))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "pe\tlocal\tspanning\tghosts\tlocal_tree\tpruned\tcandidates\taccepted\t")
	for _, s := range res.Stats {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
			s.PE, s.LocalEdges, s.SpanningEdges, s.Ghosts, s.LocalTree, s.Pruned, s.Candidates, s.Accepted)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if a.opts.PrintComps {
		for i, members := range res.Partition {
			fmt.Fprintf(w, "component %d: %s\n", i, joinIDs(members))
		}
	}
	if a.opts.PrintTree {
		parts := make([]string, len(res.Tree))
		for i, e := range res.Tree {
			parts[i] = e.String()
		}
		fmt.Fprintf(w, "tree: %s\n", strings.Join(parts, " "))
	}

	if a.opts.Metrics {
		families, err := a.reg.Gather()
		if err != nil {
			return fmt.Errorf("app: gather metrics: %w", err)
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
				return err
			}
		}
	}

	return nil
}

func joinIDs(ids []core.VertexID) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, id)
	}

	return b.String()
}
