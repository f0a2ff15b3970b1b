// File: preamble.go
// Role: live-in preamble / live-out postamble instruction sequencing
// (spec §4.8).
package emit

import (
	"fmt"

	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/instr"
)

// originRow is the physical row within a column every preamble/
// postamble sequence executes at. Live-in/live-out registers are a
// per-column resource (spec §4.7's register assignment), so any row
// serves as the setup sequence's physical home; row 0 is the fixed,
// arbitrary choice (an Open Question spec.md leaves to the original).
const originRow = 0

// buildLiveIn returns the flat `live_in.bin` instruction stream: for
// every live-in register, in column-then-register order, a 3-word
// cycle triple (OR-immediate address, address-generator Self-read,
// OR-with-zero DataBus write) per spec §4.8's preamble recipe.
//
// Triples across columns may interleave freely (spec §4.8); this
// implementation simply concatenates them column by column, which
// trivially preserves every column's internal ordering.
func buildLiveIn(d *dfg.DFG, rm *instr.RegisterMap) ([]instr.Word, error) {
	var words []instr.Word
	for _, col := range rm.LiveInColumns() {
		for _, id := range rm.LiveInsForColumn(col) {
			n, err := d.GetNode(id)
			if err != nil {
				return nil, fmt.Errorf("%w: live-in node %d", ErrNoAlignment, id)
			}
			reg, _ := rm.Register(id)
			dt := byte(n.Type)

			addrWord, err := instr.EncodeRegular(instr.RegularFields{
				DT:   dt,
				OP:   instr.OpOR,
				LMUX: instr.MuxImmediate,
				RMUX: instr.MuxImmediate,
			})
			if err != nil {
				return nil, err
			}

			genWord, err := instr.EncodePredicate(instr.PredicateFields{
				DT:   dt,
				OP:   instr.PredAddressGenerator,
				LMUX: instr.MuxSelf,
				PMUX: instr.MuxAddressBus(),
				Imm:  int32(n.Alignment),
			})
			if err != nil {
				return nil, err
			}

			loadWord, err := instr.EncodeRegular(instr.RegularFields{
				DT:   dt,
				OP:   instr.OpOR,
				LMUX: instr.MuxDataBus,
				RMUX: instr.MuxImmediate,
				RW:   reg,
				WE:   true,
			})
			if err != nil {
				return nil, err
			}

			words = append(words, addrWord, genWord, loadWord)
		}
	}
	return words, nil
}

// buildLiveOut returns the flat `live_out.bin` instruction stream: for
// every live-out register, in column-then-register order, the
// origin-PE OR-immediate, the address-generator on the neighbor row
// of the same column (row originRow+1 mod Y), and
// the origin-PE OR-with-zero DataBus-write that together realize
// spec §4.8's two-cycle (t, t+1) postamble — three words because the
// t+1 step runs concurrently on two distinct physical PEs.
func buildLiveOut(d *dfg.DFG, rm *instr.RegisterMap, X, Y int) ([]instr.Word, error) {
	var words []instr.Word
	for _, col := range rm.LiveOutColumns() {
		for _, id := range rm.LiveOutsForColumn(col) {
			n, err := d.GetNode(id)
			if err != nil {
				return nil, fmt.Errorf("%w: live-out node %d", ErrNoAlignment, id)
			}
			reg, _ := rm.Register(id)
			dt := byte(n.Type)
			neighborRow := (originRow + 1) % Y

			addrWord, err := instr.EncodeRegular(instr.RegularFields{
				DT:   dt,
				OP:   instr.OpOR,
				LMUX: instr.MuxImmediate,
				RMUX: instr.MuxImmediate,
			})
			if err != nil {
				return nil, err
			}

			dir, err := instr.Direction(col, originRow, col, neighborRow, X, Y)
			if err != nil {
				return nil, err
			}
			genWord, err := instr.EncodePredicate(instr.PredicateFields{
				DT:   dt,
				OP:   instr.PredAddressGenerator,
				LMUX: dir,
				PMUX: instr.MuxAddressBus(),
				Imm:  int32(n.Alignment),
			})
			if err != nil {
				return nil, err
			}

			storeWord, err := instr.EncodeRegular(instr.RegularFields{
				DT:   dt,
				OP:   instr.OpOR,
				LMUX: instr.MuxRegister,
				RMUX: instr.MuxImmediate,
				R1:   reg,
				DB:   true,
			})
			if err != nil {
				return nil, err
			}

			words = append(words, addrWord, genWord, storeWord)
		}
	}
	return words, nil
}
