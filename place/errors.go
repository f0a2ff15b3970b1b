package place

import "errors"

// ErrPlacementFailed indicates every remap escalation was exhausted
// across MaxMappingAttempts fresh restarts; the caller increments II
// and restarts modulo scheduling (spec §4.6, §7).
var ErrPlacementFailed = errors.New("place: no feasible placement found")

// ErrUnreachable indicates a placed predecessor or successor cannot
// reach (or be reached from) a candidate PE within the toroidal
// time-extended grid; this is an internal plumbing error, not a
// legitimate placement failure, and signals a bug in the caller's
// schedule rather than resource exhaustion.
var ErrUnreachable = errors.New("place: grid reachability query on unplaced node")
