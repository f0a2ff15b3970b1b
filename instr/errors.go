package instr

import "errors"

// ErrBitWidthOverflow indicates a value does not fit into its
// instruction field; the schedule/placement is otherwise correct but
// the hardware cannot express it (spec §7: "Bit-width overflow").
var ErrBitWidthOverflow = errors.New("instr: value overflows its instruction field")

// ErrNoDirection indicates a producer/consumer PE pair is not
// toroidally adjacent across one cycle; this is an internal invariant
// violation, not a legitimate encoding failure (spec §7: "Invariant
// violation... PE direction computed between non-adjacent cycles").
var ErrNoDirection = errors.New("instr: producer/consumer PEs are not adjacent across one cycle")

// ErrUnsupportedOp indicates a node's OpKind has no instruction
// encoding defined (an internal error: the transformer/builder should
// never hand the instruction generator such a node).
var ErrUnsupportedOp = errors.New("instr: node has no instruction encoding")
