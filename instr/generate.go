// File: generate.go
// Role: per-node instruction-variant selection and kernel-word
// generation, walking a committed placement (spec §4.7).
package instr

import (
	"fmt"
	"sort"

	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/place"
	"github.com/cgra-tc/cgrac/schedule"
)

// Triple is the (true, false, prologue) word group `kernel.bin` stores
// for one (t, x, y) grid slot (spec §6).
type Triple struct {
	True, False, Prologue Word
}

// noopWord is the fixed NOOP-opcode regular word every unoccupied
// kernel/prologue slot defaults to.
var noopWord = mustEncodeNOOP()

func mustEncodeNOOP() Word {
	w, err := EncodeRegular(RegularFields{OP: OpNOOP})
	if err != nil {
		panic(err) // the all-zero NOOP encoding can never overflow its fields
	}
	return w
}

// Program is the Instruction Generator's full output for one loop:
// the time-extended kernel grid, per-slot iteration indices, and the
// register assignment `emit` needs to build the live-in/live-out
// preamble and postamble (spec §4.7, §4.8).
type Program struct {
	X, Y, II int
	Kernel   [][][]Triple // [t][x][y]
	IterIdx  [][][]int32  // [t][x][y]
	MaxIter  int32
	Regs     *RegisterMap
}

// Generate walks every node sched has committed a cycle for and
// produces the kernel instruction grid (spec §4.7).
func Generate(d *dfg.DFG, p *place.Placement, sched *schedule.Schedule) (*Program, error) {
	ids := make([]int, 0, len(sched.Time))
	for id := range sched.Time {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rm := AssignRegisters(d, p, ids)

	prog := &Program{X: p.X, Y: p.Y, II: sched.II, Regs: rm}
	prog.Kernel = make([][][]Triple, prog.II)
	prog.IterIdx = make([][][]int32, prog.II)
	for t := 0; t < prog.II; t++ {
		prog.Kernel[t] = make([][]Triple, prog.X)
		prog.IterIdx[t] = make([][]int32, prog.X)
		for x := 0; x < prog.X; x++ {
			prog.Kernel[t][x] = make([]Triple, prog.Y)
			prog.IterIdx[t][x] = make([]int32, prog.Y)
			for y := 0; y < prog.Y; y++ {
				prog.Kernel[t][x][y] = Triple{True: noopWord, False: noopWord, Prologue: noopWord}
			}
		}
	}

	for _, id := range ids {
		n, err := d.GetNode(id)
		if err != nil {
			return nil, err
		}
		c, ok := p.Coord(id)
		if !ok {
			continue // never placed (e.g. a constant folded as an immediate)
		}
		t, _ := sched.Modulo(id)

		w, err := encodeNode(d, p, sched, rm, n, c, t)
		if err != nil {
			return nil, fmt.Errorf("instr: node %d: %w", id, err)
		}

		tri := &prog.Kernel[t][c.X][c.Y]
		switch n.Path {
		case dfg.PathTrue:
			tri.True = w
		case dfg.PathFalse:
			tri.False = w
		default:
			tri.True = w
			tri.False = w
		}

		if n.Op == dfg.OpPhi {
			prologue, err := encodePhiPrologue(d, rm, n)
			if err != nil {
				return nil, fmt.Errorf("instr: node %d prologue: %w", id, err)
			}
			tri.Prologue = prologue
		}

		iter := iterationIndex(d, n)
		if iter > prog.IterIdx[t][c.X][c.Y] {
			prog.IterIdx[t][c.X][c.Y] = iter
		}
		if iter > prog.MaxIter {
			prog.MaxIter = iter
		}
	}

	return prog, nil
}

// iterationIndex approximates which relative loop iteration a node's
// value belongs to: 0 unless the node directly consumes a
// next-iteration (carried) value, in which case it is the largest
// such arc's distance (spec §6's iter.bin; §9 leaves the exact
// runtime bookkeeping scheme to the original, undocumented here in
// more than this one field — see DESIGN.md).
func iterationIndex(d *dfg.DFG, n *dfg.Node) int32 {
	var max int32
	for _, a := range d.NextIterPredecessors(n.ID) {
		if int32(a.Distance) > max {
			max = int32(a.Distance)
		}
	}
	return max
}
