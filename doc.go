// Package dsforest computes connected components and spanning forests of
// graphs whose vertices are spread over a team of processing elements (PEs)
// that share nothing but messages.
//
// 🚀 What is dsforest?
//
//	A union-find forest distributed over PEs, built from:
//		• pgas: in-process PEs with mailboxes, active messages, barriers
//		• distarray: block or cyclic arrays of atomic words, one shard per PE
//		• disjointset: epochs of local union, candidate reduction and
//		  remote union (find-union or conditional hooking)
//		• serialcc: serial kernels used as the reference (splice union-find,
//		  Shiloach–Vishkin, BFS, forest validation)
//		• builder: deterministic edge streams (path, cycle, star, complete,
//		  grid, random sparse, RMAT)
//		• config: HCL run files
//
// Under the hood:
//
//	core/        - VertexID, Edge, edge hashing, the Graph container
//	pgas/        - World, PE, Send/Post/Exec/Broadcast, Future, Reply
//	distarray/   - Layout (OwnerOf, LocalOffset) and Array
//	disjointset/ - DisjointSet, AddEdge, ProcessEdges, SpanningTree
//	serialcc/    - SpliceSet, CSR, ShiloachVishkin, ValidateSpanningForest
//	builder/     - BuildEdges, RMAT, RMATShard
//	config/      - Load, Parse, ReadEdgeFile
//	cmd/dsforest - the command-line driver
//
// Quick ASCII example, two PEs owning {0,1} and {2,3}:
//
//	    0───1   PE 0
//	    │
//	    2───3   PE 1
//
//	0-1 and 2-3 are local edges joined without messages; 0-2 is a spanning
//	edge joined by one remote find-union.
//
//	go run github.com/katalvlaran/dsforest/cmd/dsforest -pes 2 -edges 0-1,2-3,0-2 -tree
package dsforest
