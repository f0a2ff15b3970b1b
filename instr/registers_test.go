package instr

import (
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/place"
)

// Two live-in pseudo-nodes reaching consumers placed in the same
// column get distinct dense register indices; a live-out producer in
// that column continues numbering from where the live-ins left off.
func TestAssignRegisters_DenseByColumnLiveInThenLiveOut(t *testing.T) {
	d := dfg.New()
	mustInsert(t, d, dfg.NewNode(10, dfg.OpConst)) // live-in pseudo-node, never placed
	mustInsert(t, d, dfg.NewNode(11, dfg.OpConst)) // live-in pseudo-node, never placed
	mustInsert(t, d, dfg.NewNode(0, dfg.OpAdd))
	mustInsert(t, d, dfg.NewNode(1, dfg.OpAdd))
	mustInsert(t, d, dfg.NewNode(2, dfg.OpAdd))

	n10, _ := d.GetNode(10)
	n10.LiveIn = true
	n11, _ := d.GetNode(11)
	n11.LiveIn = true
	n2, _ := d.GetNode(2)
	n2.LiveOut = true

	if _, err := d.MakeArc(10, 0, 0, dfg.LiveInDataDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}
	if _, err := d.MakeArc(11, 1, 0, dfg.LiveInDataDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	p := place.NewPlacement(4, 4, 1, 1)
	p.Place(0, 0, 0, 0, dfg.PathNone)
	p.Place(1, 0, 0, 1, dfg.PathNone) // same column as node 0
	p.Place(2, 0, 0, 2, dfg.PathNone) // same column again

	rm := AssignRegisters(d, p, []int{0, 1, 2})

	r10, ok10 := rm.Register(10)
	r11, ok11 := rm.Register(11)
	r2, ok2 := rm.Register(2)
	if !ok10 || !ok11 || !ok2 {
		t.Fatalf("expected registers for both live-ins and the live-out: %v %v %v", ok10, ok11, ok2)
	}
	if r10 == r11 {
		t.Fatalf("two distinct live-ins reaching column 0 must get distinct registers, both got %d", r10)
	}
	if r2 != 2 {
		t.Fatalf("live-out register = %d, want 2 (continuing after 2 live-in registers in the column)", r2)
	}
}

func mustInsert(t *testing.T, d *dfg.DFG, n *dfg.Node) {
	t.Helper()
	if err := d.InsertNode(n); err != nil {
		t.Fatalf("InsertNode: %v", err)
	}
}
