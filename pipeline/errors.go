package pipeline

import "errors"

// ErrMaxIIExceeded indicates the scheduler/router/placer retry ladder
// raised II past cfg.MaxII without producing a committed schedule and
// placement (spec §7: "after MAX_II, fatal").
var ErrMaxIIExceeded = errors.New("pipeline: exceeded MAX_II without a feasible schedule and placement")
