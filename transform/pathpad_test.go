package transform

import (
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
)

// A path-tagged arc whose producer is path=none gets a path-tagged
// route node spliced in (spec §4.3e).
func TestPadPaths_SplicesRouteOnNonePathProducer(t *testing.T) {
	d := dfg.New()
	d.PathCount = 2

	n := dfg.NewNode(0, dfg.OpAdd) // path none
	c := dfg.NewNode(1, dfg.OpMul)
	c.Path = dfg.PathTrue
	must(t, d.InsertNode(n))
	must(t, d.InsertNode(c))

	if _, err := d.MakeArc(0, 1, 0, dfg.TrueDep, 0, dfg.PathTrue); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	if err := PadPaths(d); err != nil {
		t.Fatalf("PadPaths: %v", err)
	}

	succs := d.SameIterSuccessors(0)
	if len(succs) != 1 {
		t.Fatalf("N successors = %d, want 1", len(succs))
	}
	route := succs[0].To
	r, err := d.GetNode(route)
	must(t, err)
	if r.Op != dfg.OpRoute || r.Path != dfg.PathTrue {
		t.Fatalf("spliced node = %+v, want path-true route", r)
	}

	preds := d.Predecessors(1)
	if len(preds) != 1 || preds[0].From != route {
		t.Fatalf("consumer's producer = %+v, want route node", preds)
	}
}

// An already path-tagged producer needs no padding.
func TestPadPaths_NoopWhenProducerAlreadyTagged(t *testing.T) {
	d := dfg.New()
	d.PathCount = 2

	n := dfg.NewNode(0, dfg.OpAdd)
	n.Path = dfg.PathTrue
	c := dfg.NewNode(1, dfg.OpMul)
	c.Path = dfg.PathTrue
	must(t, d.InsertNode(n))
	must(t, d.InsertNode(c))

	if _, err := d.MakeArc(0, 1, 0, dfg.TrueDep, 0, dfg.PathTrue); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	if err := PadPaths(d); err != nil {
		t.Fatalf("PadPaths: %v", err)
	}
	if len(d.Nodes()) != 2 {
		t.Fatalf("node count = %d, want 2 (no route inserted)", len(d.Nodes()))
	}
}
