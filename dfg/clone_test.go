package dfg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Clone must reproduce every node and arc field-for-field, including
// the self-loop back-reference, so a failed schedule/route/place
// attempt can restart from an identical starting point (spec §2, §7).
func TestClone_DeepCopyMatchesOriginal(t *testing.T) {
	d := New()
	a := NewNode(0, OpAdd)
	a.Latency = 1
	if err := d.InsertNode(a); err != nil {
		t.Fatalf("InsertNode: %v", err)
	}
	b := NewNode(1, OpSub)
	if err := d.InsertNode(b); err != nil {
		t.Fatalf("InsertNode: %v", err)
	}
	if _, err := d.MakeArc(0, 0, 1, TrueDep, 0, PathNone); err != nil {
		t.Fatalf("MakeArc self-loop: %v", err)
	}
	if _, err := d.MakeArc(0, 1, 0, TrueDep, 1, PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	c := d.Clone()

	for _, id := range d.Nodes() {
		orig, err := d.GetNode(id)
		if err != nil {
			t.Fatalf("GetNode(%d) on original: %v", id, err)
		}
		cloned, err := c.GetNode(id)
		if err != nil {
			t.Fatalf("GetNode(%d) on clone: %v", id, err)
		}
		if diff := cmp.Diff(orig, cloned); diff != "" {
			t.Errorf("node %d mismatch (-original +clone):\n%s", id, diff)
		}
	}
}

// Mutating the clone (as schedule/route/place all do in place) must
// never be visible through the original, and vice versa.
func TestClone_MutationIsIndependent(t *testing.T) {
	d := New()
	n := NewNode(0, OpAdd)
	if err := d.InsertNode(n); err != nil {
		t.Fatalf("InsertNode: %v", err)
	}

	c := d.Clone()

	cn, err := c.GetNode(0)
	if err != nil {
		t.Fatalf("GetNode on clone: %v", err)
	}
	cn.LiveIn = true

	on, err := d.GetNode(0)
	if err != nil {
		t.Fatalf("GetNode on original: %v", err)
	}
	if on.LiveIn {
		t.Fatal("mutating the clone's node leaked into the original")
	}

	m := NewNode(1, OpSub)
	if err := c.InsertNode(m); err != nil {
		t.Fatalf("InsertNode on clone: %v", err)
	}
	if _, err := d.GetNode(1); err == nil {
		t.Fatal("inserting into the clone leaked into the original")
	}
}
