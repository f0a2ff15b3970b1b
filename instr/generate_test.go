package instr

import (
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/place"
	"github.com/cgra-tc/cgrac/schedule"
)

// Scenario 1: a live-in value added to a constant, result live-out, the
// only occupied PE on a 2x2xII=1 grid — every other slot stays NOOP.
func TestGenerate_SingleAddWithConstantAndLiveOut(t *testing.T) {
	d := dfg.New()
	mustInsert(t, d, dfg.NewNode(0, dfg.OpConst))
	c, _ := d.GetNode(0)
	c.ConstValue = 7

	mustInsert(t, d, dfg.NewNode(1, dfg.OpAdd))
	liveIn, _ := d.GetNode(1)
	_ = liveIn

	mustInsert(t, d, dfg.NewNode(2, dfg.OpAdd))
	sum, _ := d.GetNode(2)
	sum.LiveOut = true

	liveInNode, _ := d.GetNode(1)
	liveInNode.LiveIn = true

	if _, err := d.MakeArc(1, 2, 0, dfg.LiveInDataDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc live-in: %v", err)
	}
	if _, err := d.MakeArc(0, 2, 0, dfg.TrueDep, 1, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc const: %v", err)
	}

	p := place.NewPlacement(2, 2, 1, 1)
	p.Place(2, 0, 0, 0, dfg.PathNone)

	sched := &schedule.Schedule{Time: map[int]int{2: 0}, II: 1}

	prog, err := Generate(d, p, sched)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if prog.X != 2 || prog.Y != 2 || prog.II != 1 {
		t.Fatalf("program dims = %dx%dx%d, want 2x2x1", prog.X, prog.Y, prog.II)
	}

	w := prog.Kernel[0][0][0].True
	if VariantOf(w) != VariantRegular {
		t.Fatalf("variant = %v, want VariantRegular", VariantOf(w))
	}
	fields := DecodeRegular(w)
	if fields.OP != OpAdd {
		t.Fatalf("OP = %v, want OpAdd", fields.OP)
	}
	if fields.LMUX != MuxRegister {
		t.Fatalf("LMUX = %v, want MuxRegister (live-in operand)", fields.LMUX)
	}
	if fields.RMUX != MuxImmediate || fields.Imm != 7 {
		t.Fatalf("RMUX/Imm = %v/%d, want MuxImmediate/7", fields.RMUX, fields.Imm)
	}
	if !fields.WE {
		t.Fatalf("WE = false, want true (node is live-out)")
	}

	// every other slot on the 2x2 grid must remain the NOOP default.
	other := prog.Kernel[0][1][1].True
	if DecodeRegular(other).OP != OpNOOP {
		t.Fatalf("unoccupied slot OP = %v, want OpNOOP", DecodeRegular(other).OP)
	}
}

// Scenario 2: a self-loop accumulator s <- s + 1 placed at its own PE;
// the carried operand's direction must be MuxSelf.
func TestGenerate_SelfLoopAccumulatorUsesSelfDirection(t *testing.T) {
	d := dfg.New()
	mustInsert(t, d, dfg.NewNode(0, dfg.OpConst))
	one, _ := d.GetNode(0)
	one.ConstValue = 1

	mustInsert(t, d, dfg.NewNode(1, dfg.OpAdd))

	if _, err := d.MakeArc(1, 1, 1, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc self-carry: %v", err)
	}
	if _, err := d.MakeArc(0, 1, 0, dfg.TrueDep, 1, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc const: %v", err)
	}

	p := place.NewPlacement(2, 2, 1, 1)
	p.Place(1, 0, 0, 0, dfg.PathNone)

	sched := &schedule.Schedule{Time: map[int]int{1: 0}, II: 1}

	prog, err := Generate(d, p, sched)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	fields := DecodeRegular(prog.Kernel[0][0][0].True)
	if fields.LMUX != MuxSelf {
		t.Fatalf("LMUX = %v, want MuxSelf", fields.LMUX)
	}
	if fields.RMUX != MuxImmediate || fields.Imm != 1 {
		t.Fatalf("RMUX/Imm = %v/%d, want MuxImmediate/1", fields.RMUX, fields.Imm)
	}
}
