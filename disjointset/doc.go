// SPDX-License-Identifier: MIT
//
// Package disjointset computes connected components and a spanning forest
// of a graph whose vertex table is partitioned across the PEs of a
// pgas.World. PEs share nothing but messages: every cross-PE step of
// union-find travels as a self-forwarding active message.
//
// What & Why
//
//   - Each vertex record (parent, rank) lives in one 64-bit word of a
//     distarray.Array, so every local read and update is a single atomic
//     operation and concurrent handlers coordinate through compare-and-swap.
//
//   - Every edge has one owner PE, hash(edge) mod NumPEs. An edge whose two
//     endpoints are owned by its owner is local; any other edge is spanning,
//     and its endpoints not owned by the edge owner are recorded there as
//     ghosts.
//
// Epoch
//
//   - Ingest: AddNewVertex registers identity records; AddEdge routes each
//     edge to its owner, which writes ghosts before appending the edge.
//
//   - Local union: union-by-rank with splicing over local edges, no messages.
//     A local edge whose root chain has left the PE (a later epoch) is
//     deferred to the spanning edges.
//
//   - Candidate reduction: spanning edges are filtered through classes of
//     local roots and ghosts already known to be connected; an edge joining
//     one class to itself is dropped. No messages.
//
//   - Remote union, either
//
//   - ProtocolFindUnion (default): resolve both global roots, link the
//     lesser root under the greater one by compare-and-swap at its owner,
//     then post a rank raise on ties and path compression of both chains.
//
//   - ProtocolHook: rounds of conditional star hooking in four stages
//     (SeekVParent, SeekVGrandparent, SeekUParent, Compare) alternated
//     with pointer jumping until no hook succeeds.
//
//   - Gather: SpanningTree concatenates every PE's tree edges.
//
// Ordering
//
// Roots are linked by Less: lower rank first, and on equal rank the larger
// id goes under the smaller. Only roots have their rank raised, so parent
// keys strictly increase along every chain and concurrent links cannot form
// a cycle. The hook protocol never raises ranks, so its "smaller id wins"
// rule is the same order.
//
// Concurrency
//
// Methods taking a *pgas.PE run on that PE's driver goroutine. ProcessEdges
// and Reset are collective. Handlers never wait on other PEs; remote reads
// from driver code (At, CompareAndExchange, GlobalRoot) may.
//
// Errors
//
//	ErrVertexOutOfRange - id ≥ capacity.
//	ErrUnknownVertex    - an edge endpoint was never registered; aborts the epoch.
//	ErrPhaseOrder       - ProcessEdges with nothing ingested since the last epoch.
//	ErrInvalidCapacity  - capacity beyond MaxCapacity.
//
// Compare-and-swap conflicts are retried internally and only counted in
// the dsforest_cas_retries_total metric.
package disjointset
