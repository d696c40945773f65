// SPDX-License-Identifier: MIT
//
// Package config decodes dsforest run files.
//
// A run file is HCL. Every attribute is optional; absent ones keep the
// values of Default():
//
//	pes          = 2
//	capacity     = 14
//	vertices     = 14
//	distribution = "block"       # or "cyclic"
//	protocol     = "find-union"  # or "hook"
//	root_search  = "boundary"    # or "fixpoint"
//	compression  = true
//	edges        = [[0, 1], [0, 3]]
//	edge_file    = "graph.json"
//	rmat {
//	  order       = 10
//	  edge_factor = 8
//	  fuzz        = 0.1
//	  seed        = 7
//	  partition   = [0.57, 0.19, 0.19, 0.05]
//	}
//
// edges may be any HCL expression that evaluates to a sequence of [u, v]
// pairs, for example [for i in [0, 1, 2] : [i, i + 1]]. edge_file names a
// JSON array of [u, v] pairs and is resolved against the run file's
// directory.
package config
