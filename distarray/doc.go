// SPDX-License-Identifier: MIT
//
// Package distarray provides a fixed-capacity array of atomic 64-bit words
// partitioned across the PEs of a pgas.World.
//
// A Layout maps a global index to its owning PE and local offset:
//
//   - Block: PE p holds a contiguous run. With base = capacity/numPEs and
//     rem = capacity%numPEs, the first rem PEs hold base+1 elements and the
//     rest hold base.
//   - Cyclic: element i lives on PE i%numPEs at offset i/numPEs.
//
// Each PE's shard is accessed lock-free through Shard. Array.Load, Store and
// CompareAndSwap work on any index; remote indices travel as pgas messages
// and the calling goroutine waits for the reply. Handlers running inside a PE
// loop must not call the remote variants; they forward instead.
//
// Errors:
//
//	ErrInvalidLayout   - zero PEs or an unknown distribution.
//	ErrIndexOutOfRange - index ≥ capacity.
//	ErrNotLocal        - local access to an index owned by another PE.
package distarray
