package instr

// Word is one 64-bit microinstruction (spec §6's bit layout table).
type Word uint64

// Variant selects which of the three field layouts a Word uses,
// determined by its P and C discriminator bits (spec §4.7).
type Variant int

const (
	VariantRegular   Variant = iota // P=0, C=0
	VariantPredicate                // P=1, C=0
	VariantCondition                // P=*, C=1 (P is reinterpreted as LE)
)

// OpCode is the regular arithmetic/logical opcode carried in the
// common OP field (spec §6's OpCode enum, order preserved).
type OpCode uint8

const (
	OpAdd OpCode = iota
	OpSub
	OpMult
	OpAND
	OpOR
	OpXOR
	OpASR
	OpNOOP
	OpASL
	OpDiv
	OpRem
	OpLSHR
	OpEQ
	OpNEQ
	OpGT
	OpLT
)

// PredOpCode is the P-type opcode (spec §6's PredOpCode enum).
type PredOpCode uint8

const (
	PredSetConfigBoundary PredOpCode = iota
	PredLDi
	PredLDMi
	PredLDUi
	PredSel
	PredLoopExit
	PredAddressGenerator
	PredNOP
	PredSignExtend
)

// CondOpCode is the C-type comparison opcode (spec §6's CondOpCode
// enum); signed and unsigned compares share the same encoding.
type CondOpCode uint8

const (
	CondCMPEQ CondOpCode = iota
	CondCMPNEQ
	CondCMPGT
	CondCMPLT
)

// Mux selects a PE-input source (spec §6's PE-input mux enum).
type Mux uint8

const (
	MuxRegister Mux = iota
	MuxLeft
	MuxRight
	MuxUp
	MuxDown
	MuxDataBus
	MuxImmediate
	MuxSelf
)

// field packs a (shift, width) bit range within a Word (spec §6's bit
// layout table, big-endian field numbering translated to Go shifts).
type field struct {
	shift uint
	width uint
}

func (f field) mask() uint64 { return (uint64(1) << f.width) - 1 }

// Common fields, present (at these bit positions) in every variant.
var (
	fieldDT    = field{61, 3}
	fieldP     = field{56, 1}
	fieldC     = field{55, 1}
	fieldLMUX  = field{52, 3}
	fieldRMUX  = field{49, 3}
	fieldR1    = field{45, 4}
	fieldR2    = field{41, 4}
)

// Regular/P-type-only OP field (C-type narrows and shifts this; see fieldCondOP).
var fieldOP = field{57, 4}

// Regular-variant fields (P=0, C=0).
var (
	fieldRegRW  = field{37, 4}
	fieldRegWE  = field{36, 1}
	fieldRegAB  = field{35, 1}
	fieldRegDB  = field{34, 1}
	fieldRegPhi = field{33, 1}
	fieldRegIMM = field{0, 32}
)

// P-type fields (P=1, C=0).
var (
	fieldPredRP   = field{37, 4}
	fieldPredPMUX = field{34, 3}
	fieldPredIMM  = field{0, 32}
)

// C-type fields (C=1); OP is narrower than the common variants' and
// frees bit 57 for SP.
var (
	fieldCondOP        = field{58, 3}
	fieldCondSP        = field{57, 1}
	fieldCondLE        = field{56, 1}
	fieldCondRW        = field{37, 4}
	fieldCondWE        = field{36, 1}
	fieldCondBROFFSET  = field{26, 10}
	fieldCondIMM       = field{0, 26}
)

// LoopExitBranchOffset is the fixed branch offset a loop-exit C-type
// word carries (spec §6: "0x3ff for loop-exit").
const LoopExitBranchOffset = 0x3ff
