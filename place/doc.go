// Package place assigns every scheduled node a physical PE on the
// time-extended toroidal X×Y×II grid (spec §4.6). It runs after a
// route-inserted schedule has committed cycle times; it never changes
// those times, only where in the grid each node's value lives at its
// cycle.
//
// Strategy follows a randomized BFS with three remap escalations
// (basic, current-t, adjacent-t), mirroring the attempt-bounded
// randomized construction idiom of lvlath/builder's RandomRegular and
// the neighbor-offset model of lvlath/gridgraph. On exhausting
// MaxMappingAttempts fresh restarts, Place returns
// ErrPlacementFailed so the caller can increment II and restart
// modulo scheduling (spec §4.6, §7).
package place
