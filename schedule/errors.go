package schedule

import "errors"

// ErrNoFeasibleTime indicates the resource-feasible ASAP/ALAP search
// exhausted its search window without finding an available cycle.
var ErrNoFeasibleTime = errors.New("schedule: no resource-feasible time found")

// ErrModuloScheduleFailed indicates the modulo scheduler could not
// place every node within its valid window at the current II; the
// caller (pipeline) increments II and retries (spec §4.4, §7).
var ErrModuloScheduleFailed = errors.New("schedule: modulo schedule failed at current II")

// ErrLiveOutBeforeLoopControl indicates a live-out node's only
// available window lies at or before the loop-control node (spec §3:
// "live-out nodes must be scheduled strictly after the loop-control node").
var ErrLiveOutBeforeLoopControl = errors.New("schedule: live-out node cannot follow loop-control")
