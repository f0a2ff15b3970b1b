package transform

import (
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
)

// Split-path diamond (spec §8 scenario 5): a true-path producer and a
// false-path producer both feed a join phi that in turn feeds a single
// downstream consumer. SplitPaths must delete the phi and connect both
// producers directly to the consumer with path-tagged arcs.
func TestSplitPaths_CollapsesJoinPhi(t *testing.T) {
	d := dfg.New()
	d.PathCount = 2

	pt := dfg.NewNode(0, dfg.OpAdd)
	pt.Path = dfg.PathTrue
	pf := dfg.NewNode(1, dfg.OpSub)
	pf.Path = dfg.PathFalse
	phi := dfg.NewNode(2, dfg.OpPhi)
	c := dfg.NewNode(3, dfg.OpMul)

	must(t, d.InsertNode(pt))
	must(t, d.InsertNode(pf))
	must(t, d.InsertNode(phi))
	must(t, d.InsertNode(c))

	if _, err := d.MakeArc(0, 2, 0, dfg.TrueDep, 0, dfg.PathTrue); err != nil {
		t.Fatalf("MakeArc pt->phi: %v", err)
	}
	if _, err := d.MakeArc(1, 2, 0, dfg.TrueDep, 0, dfg.PathFalse); err != nil {
		t.Fatalf("MakeArc pf->phi: %v", err)
	}
	if _, err := d.MakeArc(2, 3, 0, dfg.TrueDep, 1, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc phi->c: %v", err)
	}

	if err := SplitPaths(d); err != nil {
		t.Fatalf("SplitPaths: %v", err)
	}

	if _, err := d.GetNode(2); err == nil {
		t.Fatalf("phi node 2 should have been deleted")
	}

	preds := d.Predecessors(3)
	if len(preds) != 2 {
		t.Fatalf("consumer preds = %d, want 2", len(preds))
	}
	seen := map[dfg.PathTag]int{}
	for _, a := range preds {
		if a.OperandOrder != 1 {
			t.Fatalf("arc operand order = %d, want 1 (preserved from phi->c)", a.OperandOrder)
		}
		seen[a.Path] = a.From
	}
	if seen[dfg.PathTrue] != 0 || seen[dfg.PathFalse] != 1 {
		t.Fatalf("reconnected producers = %+v, want {true:0, false:1}", seen)
	}
}

// A phi node feeding two downstream consumers is left untouched as a
// standing conditional-select (spec §4.3d: "all other phi nodes... remain").
func TestSplitPaths_KeepsMultiConsumerPhi(t *testing.T) {
	d := dfg.New()
	d.PathCount = 2

	pt := dfg.NewNode(0, dfg.OpAdd)
	pt.Path = dfg.PathTrue
	pf := dfg.NewNode(1, dfg.OpSub)
	pf.Path = dfg.PathFalse
	phi := dfg.NewNode(2, dfg.OpPhi)
	c1 := dfg.NewNode(3, dfg.OpMul)
	c2 := dfg.NewNode(4, dfg.OpDiv)

	must(t, d.InsertNode(pt))
	must(t, d.InsertNode(pf))
	must(t, d.InsertNode(phi))
	must(t, d.InsertNode(c1))
	must(t, d.InsertNode(c2))

	if _, err := d.MakeArc(0, 2, 0, dfg.TrueDep, 0, dfg.PathTrue); err != nil {
		t.Fatalf("MakeArc pt->phi: %v", err)
	}
	if _, err := d.MakeArc(1, 2, 0, dfg.TrueDep, 0, dfg.PathFalse); err != nil {
		t.Fatalf("MakeArc pf->phi: %v", err)
	}
	if _, err := d.MakeArc(2, 3, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc phi->c1: %v", err)
	}
	if _, err := d.MakeArc(2, 4, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc phi->c2: %v", err)
	}

	if err := SplitPaths(d); err != nil {
		t.Fatalf("SplitPaths: %v", err)
	}
	if _, err := d.GetNode(2); err != nil {
		t.Fatalf("phi node 2 should survive with two consumers: %v", err)
	}
}
