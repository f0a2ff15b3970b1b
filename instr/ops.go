// File: ops.go
// Role: per-OpKind instruction-variant dispatch and field assembly
// (spec §4.7).
package instr

import (
	"fmt"

	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/place"
	"github.com/cgra-tc/cgrac/schedule"
)

// encodeNode selects and builds the single kernel-body Word for node n,
// placed at coord and scheduled at modulo time t (spec §4.7). Phi
// nodes additionally get a prologue word from encodePhiPrologue.
func encodeNode(d *dfg.DFG, p *place.Placement, sched *schedule.Schedule, rm *RegisterMap, n *dfg.Node, coord place.Coord, t int) (Word, error) {
	switch {
	case n.CondBranchID >= 0 || n.LoopExit:
		return encodeCondNode(d, p, rm, n, coord)
	case n.MemRole == dfg.MemRoleLoadAddr, n.MemRole == dfg.MemRoleStoreAddr:
		return encodeAddressGen(d, p, rm, n, coord)
	case n.Op == dfg.OpSignExtend:
		return encodeSignExtend(d, p, rm, n, coord)
	case n.MemRole == dfg.MemRoleLoadData:
		return encodeLoadData(n, rm)
	case n.MemRole == dfg.MemRoleStoreData:
		return encodeStoreData(d, p, n, coord)
	case n.Op == dfg.OpRoute:
		return encodeRoute(d, p, n, coord)
	case n.Op == dfg.OpPhi:
		return encodePhiKernel(d, p, rm, n, coord)
	default:
		return encodeRegularOp(d, p, rm, n, coord)
	}
}

// operandSource resolves operandOrder's source for consumer n placed
// at coord: a live-in register, an immediate constant, or a direction
// to its producer's PE (spec §4.7's LMUX/RMUX computation).
func operandSource(d *dfg.DFG, p *place.Placement, rm *RegisterMap, n *dfg.Node, coord place.Coord, operandOrder int) (Mux, int32, byte, error) {
	a := findOperand(d, n.ID, operandOrder)
	if a == nil {
		// An operand slot with no incoming arc on a LiveIn-flagged node
		// is the live-in operand itself: the node reads its own
		// register rather than a producer's value (spec §4.7/§4.8's
		// single-node accumulator case, where the live-in/live-out
		// round trip happens outside this DFG instance entirely).
		if n.LiveIn {
			reg, _ := rm.Register(n.ID)
			return MuxRegister, 0, reg, nil
		}
		return MuxImmediate, 0, 0, nil
	}
	if a.Dep == dfg.LiveInDataDep {
		reg, _ := rm.Register(a.From)
		return MuxRegister, 0, reg, nil
	}
	producer, err := d.GetNode(a.From)
	if err != nil {
		return 0, 0, 0, err
	}
	if producer.Op == dfg.OpConst {
		imm := int32(producer.ConstValue)
		if int64(imm) != producer.ConstValue {
			return 0, 0, 0, fmt.Errorf("constant %d does not fit a 32-bit immediate: %w", producer.ConstValue, ErrBitWidthOverflow)
		}
		return MuxImmediate, imm, 0, nil
	}
	pc, ok := p.Coord(a.From)
	if !ok {
		return 0, 0, 0, fmt.Errorf("producer %d of node %d not placed", a.From, n.ID)
	}
	mux, err := Direction(pc.X, pc.Y, coord.X, coord.Y, p.X, p.Y)
	if err != nil {
		return 0, 0, 0, err
	}
	return mux, 0, 0, nil
}

func findOperand(d *dfg.DFG, consumerID, operandOrder int) *dfg.Arc {
	for _, a := range d.Predecessors(consumerID) {
		if a.Dep.IsMemory() {
			continue
		}
		if a.OperandOrder == operandOrder {
			return a
		}
	}
	return nil
}

func singlePredecessor(d *dfg.DFG, consumerID int) *dfg.Arc {
	arcs := d.NonMemoryPredecessors(consumerID)
	if len(arcs) == 0 {
		return nil
	}
	return arcs[0]
}

func liveOutRW(rm *RegisterMap, n *dfg.Node) byte {
	if !n.LiveOut {
		return 0
	}
	reg, _ := rm.Register(n.ID)
	return reg
}

var regularOpcodes = map[dfg.OpKind]OpCode{
	dfg.OpAdd:    OpAdd,
	dfg.OpSub:    OpSub,
	dfg.OpMul:    OpMult,
	dfg.OpDiv:    OpDiv,
	dfg.OpRem:    OpRem,
	dfg.OpAnd:    OpAND,
	dfg.OpOr:     OpOR,
	dfg.OpXor:    OpXOR,
	dfg.OpAsl:    OpASL,
	dfg.OpAsr:    OpASR,
	dfg.OpLshr:   OpLSHR,
	dfg.OpCmpEq:  OpEQ,
	dfg.OpCmpNeq: OpNEQ,
	dfg.OpCmpGt:  OpGT,
	dfg.OpCmpLt:  OpLT,
}

var condOpcodes = map[dfg.OpKind]CondOpCode{
	dfg.OpCmpEq:  CondCMPEQ,
	dfg.OpCmpNeq: CondCMPNEQ,
	dfg.OpCmpGt:  CondCMPGT,
	dfg.OpCmpLt:  CondCMPLT,
}

// encodeRegularOp handles ordinary arithmetic/logical/comparison ops
// not governing a branch (spec §4.7: "straightforward opcode table").
func encodeRegularOp(d *dfg.DFG, p *place.Placement, rm *RegisterMap, n *dfg.Node, coord place.Coord) (Word, error) {
	opcode, ok := regularOpcodes[n.Op]
	if !ok {
		return 0, ErrUnsupportedOp
	}
	lmux, limm, lreg, err := operandSource(d, p, rm, n, coord, 0)
	if err != nil {
		return 0, err
	}
	rmux, rimm, rreg, err := operandSource(d, p, rm, n, coord, 1)
	if err != nil {
		return 0, err
	}

	var imm int32
	var r1, r2 byte
	if lmux == MuxImmediate {
		imm = limm
	}
	if rmux == MuxImmediate {
		imm = rimm
	}
	if lmux == MuxRegister {
		r1 = lreg
	}
	if rmux == MuxRegister {
		r2 = rreg
	}

	return EncodeRegular(RegularFields{
		DT:   byte(n.Type),
		OP:   opcode,
		LMUX: lmux,
		RMUX: rmux,
		R1:   r1,
		R2:   r2,
		RW:   liveOutRW(rm, n),
		WE:   n.LiveOut,
		Imm:  imm,
	})
}

// encodeCondNode handles comparisons governing a split branch or the
// loop-exit test (spec §4.7's "Compare (C-type)").
func encodeCondNode(d *dfg.DFG, p *place.Placement, rm *RegisterMap, n *dfg.Node, coord place.Coord) (Word, error) {
	opcode, ok := condOpcodes[n.Op]
	if !ok {
		return 0, ErrUnsupportedOp
	}
	lmux, limm, lreg, err := operandSource(d, p, rm, n, coord, 0)
	if err != nil {
		return 0, err
	}
	rmux, rimm, rreg, err := operandSource(d, p, rm, n, coord, 1)
	if err != nil {
		return 0, err
	}

	var imm int32
	var r1, r2 byte
	if lmux == MuxImmediate {
		imm = limm
	}
	if rmux == MuxImmediate {
		imm = rimm
	}
	if lmux == MuxRegister {
		r1 = lreg
	}
	if rmux == MuxRegister {
		r2 = rreg
	}

	var brOffset uint16
	if n.LoopExit {
		brOffset = LoopExitBranchOffset
	}

	return EncodeCondition(ConditionFields{
		DT:       byte(n.Type),
		OP:       opcode,
		SP:       n.SplitCond,
		LE:       n.LoopExit,
		LMUX:     lmux,
		RMUX:     rmux,
		R1:       r1,
		R2:       r2,
		RW:       liveOutRW(rm, n),
		WE:       n.LiveOut,
		BrOffset: brOffset,
		Imm:      imm,
	})
}

// muxAddressBus is the fixed PMUX bit pattern an address-generator
// P-type word always carries (spec §4.7: "PMUX is the fixed bit
// pattern 0b010 routing to the address bus"). It happens to coincide
// with MuxRight's numeric value; that is a coincidence of the shared
// 3-bit encoding, not a directional meaning.
const muxAddressBus Mux = 0b010

// MuxAddressBus returns the fixed PMUX bit pattern every
// address-generator P-type word carries (spec §4.7).
func MuxAddressBus() Mux { return muxAddressBus }

// encodeAddressGen handles load-address and store-address nodes
// (spec §4.7's P-type "address_generator" case).
func encodeAddressGen(d *dfg.DFG, p *place.Placement, rm *RegisterMap, n *dfg.Node, coord place.Coord) (Word, error) {
	lmux, limm, lreg, err := operandSource(d, p, rm, n, coord, 0)
	if err != nil {
		return 0, err
	}
	var r1 byte
	var imm int32
	if lmux == MuxRegister {
		r1 = lreg
	}
	if lmux == MuxImmediate {
		imm = limm
	}
	_ = imm // address value never arrives as a bare immediate in this model

	return EncodePredicate(PredicateFields{
		DT:   byte(n.Type),
		OP:   PredAddressGenerator,
		LMUX: lmux,
		R1:   r1,
		PMUX: muxAddressBus,
		Imm:  int32(n.Alignment),
	})
}

// encodeSignExtend handles sign-extension nodes: operand 0 is the
// value, operand 1 a constant bit-width (spec §4.7's "sext" case).
func encodeSignExtend(d *dfg.DFG, p *place.Placement, rm *RegisterMap, n *dfg.Node, coord place.Coord) (Word, error) {
	lmux, _, lreg, err := operandSource(d, p, rm, n, coord, 0)
	if err != nil {
		return 0, err
	}
	var r1 byte
	if lmux == MuxRegister {
		r1 = lreg
	}

	var width int32
	if a := findOperand(d, n.ID, 1); a != nil {
		if wn, err := d.GetNode(a.From); err == nil && wn.Op == dfg.OpConst {
			width = int32(wn.ConstValue)
		}
	}

	return EncodePredicate(PredicateFields{
		DT:   byte(n.Type),
		OP:   PredSignExtend,
		LMUX: lmux,
		R1:   r1,
		Imm:  width,
	})
}

// encodeLoadData handles the data-bus half of a load pair: a regular
// OR-with-zero sourcing from the data bus (spec §4.7).
func encodeLoadData(n *dfg.Node, rm *RegisterMap) (Word, error) {
	return EncodeRegular(RegularFields{
		DT:   byte(n.Type),
		OP:   OpOR,
		LMUX: MuxDataBus,
		RMUX: MuxImmediate,
		RW:   liveOutRW(rm, n),
		WE:   n.LiveOut,
		DB:   true,
	})
}

// encodeStoreData handles the data-bus half of a store pair: a
// regular OR-with-zero, DBUS=1, sourcing from the stored value's
// direction (spec §4.7).
func encodeStoreData(d *dfg.DFG, p *place.Placement, n *dfg.Node, coord place.Coord) (Word, error) {
	a := singlePredecessor(d, n.ID)
	if a == nil {
		return 0, ErrUnsupportedOp
	}
	pc, ok := p.Coord(a.From)
	if !ok {
		return 0, fmt.Errorf("producer %d of node %d not placed", a.From, n.ID)
	}
	mux, err := Direction(pc.X, pc.Y, coord.X, coord.Y, p.X, p.Y)
	if err != nil {
		return 0, err
	}
	return EncodeRegular(RegularFields{
		DT:   byte(n.Type),
		OP:   OpOR,
		LMUX: mux,
		RMUX: MuxImmediate,
		DB:   true,
	})
}

// encodeRoute handles synthetic relay nodes: a regular OR-with-zero
// carrying input from the single upstream direction (spec §4.7).
func encodeRoute(d *dfg.DFG, p *place.Placement, n *dfg.Node, coord place.Coord) (Word, error) {
	a := singlePredecessor(d, n.ID)
	if a == nil {
		return 0, ErrUnsupportedOp
	}
	pc, ok := p.Coord(a.From)
	if !ok {
		return 0, fmt.Errorf("producer %d of node %d not placed", a.From, n.ID)
	}
	mux, err := Direction(pc.X, pc.Y, coord.X, coord.Y, p.X, p.Y)
	if err != nil {
		return 0, err
	}
	return EncodeRegular(RegularFields{
		DT:   byte(n.Type),
		OP:   OpOR,
		LMUX: mux,
		RMUX: MuxImmediate,
	})
}

// phiSources splits a phi's predecessor arcs into the in-loop source
// (neither a constant nor a live-in) and the out-of-loop source
// (whichever is a constant or a live-in), per spec §4.7.
func phiSources(d *dfg.DFG, n *dfg.Node) (inLoop, outLoop *dfg.Arc, err error) {
	for _, a := range d.NonMemoryPredecessors(n.ID) {
		if a.Dep == dfg.LiveInDataDep {
			outLoop = a
			continue
		}
		producer, gerr := d.GetNode(a.From)
		if gerr != nil {
			return nil, nil, gerr
		}
		if producer.Op == dfg.OpConst {
			outLoop = a
		} else {
			inLoop = a
		}
	}
	if inLoop == nil || outLoop == nil {
		return nil, nil, fmt.Errorf("instr: phi node %d lacks a distinguishable in-loop/out-of-loop source pair: %w", n.ID, ErrUnsupportedOp)
	}
	return inLoop, outLoop, nil
}

// encodePhiKernel builds a phi's kernel-body word: a regular
// OR-with-zero from its in-loop source (spec §4.7).
func encodePhiKernel(d *dfg.DFG, p *place.Placement, rm *RegisterMap, n *dfg.Node, coord place.Coord) (Word, error) {
	inLoop, _, err := phiSources(d, n)
	if err != nil {
		return 0, err
	}
	pc, ok := p.Coord(inLoop.From)
	if !ok {
		return 0, fmt.Errorf("producer %d of phi %d not placed", inLoop.From, n.ID)
	}
	mux, err := Direction(pc.X, pc.Y, coord.X, coord.Y, p.X, p.Y)
	if err != nil {
		return 0, err
	}
	return EncodeRegular(RegularFields{
		DT:   byte(n.Type),
		OP:   OpOR,
		LMUX: mux,
		RMUX: MuxImmediate,
		RW:   liveOutRW(rm, n),
		WE:   n.LiveOut,
	})
}

// encodePhiPrologue builds a phi's prologue word: a regular
// OR-with-zero from its out-of-loop source, a live-in register or an
// immediate constant (spec §4.7).
func encodePhiPrologue(d *dfg.DFG, rm *RegisterMap, n *dfg.Node) (Word, error) {
	_, outLoop, err := phiSources(d, n)
	if err != nil {
		return 0, err
	}

	f := RegularFields{DT: byte(n.Type), OP: OpOR, RMUX: MuxImmediate}
	if outLoop.Dep == dfg.LiveInDataDep {
		reg, _ := rm.Register(outLoop.From)
		f.LMUX = MuxRegister
		f.R1 = reg
	} else {
		producer, err := d.GetNode(outLoop.From)
		if err != nil {
			return 0, err
		}
		f.LMUX = MuxImmediate
		f.Imm = int32(producer.ConstValue)
		if int64(f.Imm) != producer.ConstValue {
			return 0, fmt.Errorf("constant %d does not fit a 32-bit immediate: %w", producer.ConstValue, ErrBitWidthOverflow)
		}
	}
	return EncodeRegular(f)
}
