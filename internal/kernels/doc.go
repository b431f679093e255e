// Package kernels is the reference CPU kernel library that generated headers
// are validated against.
//
// Every kernel exposes the same contract as its hardware counterpart:
// Forward(ctx, out, in) fills out from in, is deterministic, and depends on
// shape constants fixed at construction. The optimization tier only changes
// how the units of the kernel's parallel dimension are issued:
//
//   - NONE issues every unit sequentially.
//   - LATENCY issues all units at once.
//   - THROUGHPUT issues units in groups of the family replication factor,
//     starting a new unit as soon as a slot in the group frees up.
//
// Per-unit arithmetic is identical across tiers, so outputs match exactly.
// Reductions combine fixed-size partials in index order for the same reason.
package kernels
