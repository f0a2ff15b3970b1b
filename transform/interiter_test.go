package transform

import (
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
)

// A node with two next-iteration successors of differing distance gets
// a single route node inserted, carrying the minimum distance, with
// both successors redirected and rebased (spec §4.3b).
func TestInsertInterIterationRouting_SplitsMultipleCarried(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	must(t, d.InsertNode(dfg.NewNode(1, dfg.OpAdd)))
	must(t, d.InsertNode(dfg.NewNode(2, dfg.OpAdd)))

	if _, err := d.MakeArc(0, 1, 2, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc 0->1: %v", err)
	}
	if _, err := d.MakeArc(0, 2, 3, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc 0->2: %v", err)
	}

	if err := InsertInterIterationRouting(d); err != nil {
		t.Fatalf("InsertInterIterationRouting: %v", err)
	}

	succs := d.NextIterSuccessors(0)
	if len(succs) != 1 {
		t.Fatalf("N's next-iter successors = %d, want 1", len(succs))
	}
	if succs[0].Distance != 2 {
		t.Fatalf("N->R distance = %d, want 2 (the minimum)", succs[0].Distance)
	}
	route := succs[0].To

	r, err := d.GetNode(route)
	must(t, err)
	if r.Op != dfg.OpRoute {
		t.Fatalf("inserted node op = %v, want OpRoute", r.Op)
	}

	var d1, d2 *dfg.Arc
	for _, a := range d.Successors(route) {
		switch a.To {
		case 1:
			d1 = a
		case 2:
			d2 = a
		}
	}
	if d1 == nil || d2 == nil {
		t.Fatalf("route node should reach both original successors")
	}
	if d1.Distance != 0 {
		t.Fatalf("R->1 distance = %d, want 0", d1.Distance)
	}
	if d2.Distance != 1 {
		t.Fatalf("R->2 distance = %d, want 1", d2.Distance)
	}
}

// A node with a single next-iteration successor is left untouched.
func TestInsertInterIterationRouting_NoopSingleSuccessor(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	must(t, d.InsertNode(dfg.NewNode(1, dfg.OpAdd)))
	if _, err := d.MakeArc(0, 1, 1, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	if err := InsertInterIterationRouting(d); err != nil {
		t.Fatalf("InsertInterIterationRouting: %v", err)
	}
	if len(d.Nodes()) != 2 {
		t.Fatalf("node count = %d, want 2 (no route inserted)", len(d.Nodes()))
	}
}
