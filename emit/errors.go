package emit

import "errors"

// ErrNoAlignment indicates a live-in/live-out node the register
// assignment names has no backing dfg.Node; an internal consistency
// error between instr.Generate's output and the DFG it was built from.
var ErrNoAlignment = errors.New("emit: live-in/live-out node missing from DFG")
