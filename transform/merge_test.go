package transform

import (
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
)

// Two producers of opposite paths feeding the same consumer at the
// same operand order become merged peers (spec §4.3f).
func TestMergePeers_MarksReciprocalPeers(t *testing.T) {
	d := dfg.New()
	d.PathCount = 2

	pt := dfg.NewNode(0, dfg.OpAdd)
	pt.Path = dfg.PathTrue
	pf := dfg.NewNode(1, dfg.OpSub)
	pf.Path = dfg.PathFalse
	c := dfg.NewNode(2, dfg.OpPhi)

	must(t, d.InsertNode(pt))
	must(t, d.InsertNode(pf))
	must(t, d.InsertNode(c))

	if _, err := d.MakeArc(0, 2, 0, dfg.TrueDep, 0, dfg.PathTrue); err != nil {
		t.Fatalf("MakeArc pt->c: %v", err)
	}
	if _, err := d.MakeArc(1, 2, 0, dfg.TrueDep, 0, dfg.PathFalse); err != nil {
		t.Fatalf("MakeArc pf->c: %v", err)
	}

	if err := MergePeers(d); err != nil {
		t.Fatalf("MergePeers: %v", err)
	}

	got0, err := d.GetNode(0)
	must(t, err)
	got1, err := d.GetNode(1)
	must(t, err)
	if got0.MergedWith != 1 {
		t.Fatalf("node 0 MergedWith = %d, want 1", got0.MergedWith)
	}
	if got1.MergedWith != 0 {
		t.Fatalf("node 1 MergedWith = %d, want 0", got1.MergedWith)
	}
}

// Different operand orders must not be merged.
func TestMergePeers_IgnoresMismatchedOperandOrder(t *testing.T) {
	d := dfg.New()
	d.PathCount = 2

	pt := dfg.NewNode(0, dfg.OpAdd)
	pt.Path = dfg.PathTrue
	pf := dfg.NewNode(1, dfg.OpSub)
	pf.Path = dfg.PathFalse
	c := dfg.NewNode(2, dfg.OpPhi)

	must(t, d.InsertNode(pt))
	must(t, d.InsertNode(pf))
	must(t, d.InsertNode(c))

	if _, err := d.MakeArc(0, 2, 0, dfg.TrueDep, 0, dfg.PathTrue); err != nil {
		t.Fatalf("MakeArc pt->c: %v", err)
	}
	if _, err := d.MakeArc(1, 2, 0, dfg.TrueDep, 1, dfg.PathFalse); err != nil {
		t.Fatalf("MakeArc pf->c: %v", err)
	}

	if err := MergePeers(d); err != nil {
		t.Fatalf("MergePeers: %v", err)
	}

	got0, err := d.GetNode(0)
	must(t, err)
	got1, err := d.GetNode(1)
	must(t, err)
	if got0.MergedWith != -1 || got1.MergedWith != -1 {
		t.Fatalf("nodes should not be merged: got0=%d got1=%d", got0.MergedWith, got1.MergedWith)
	}
}
