package transform

import (
	"math/rand"
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
)

// Fan-out = 8, MAX_OUT_DEGREE = 5 (spec §8 scenario 6). Expect exactly
// one route node inserted, and N's direct fan-out plus the route
// node's fan-out both within the cap.
func TestCapOutDegree_FanOutExhaustion(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	for i := 1; i <= 8; i++ {
		must(t, d.InsertNode(dfg.NewNode(i, dfg.OpAdd)))
		if _, err := d.MakeArc(0, i, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
			t.Fatalf("MakeArc 0->%d: %v", i, err)
		}
	}

	rng := rand.New(rand.NewSource(1))
	if err := CapOutDegree(d, 5, rng); err != nil {
		t.Fatalf("CapOutDegree: %v", err)
	}

	direct := len(d.SameIterSuccessors(0))
	if direct > 5 {
		t.Fatalf("N direct fan-out = %d, want <= 5", direct)
	}

	var routeCount, routedFanOut int
	for _, nid := range d.Nodes() {
		n, err := d.GetNode(nid)
		must(t, err)
		if n.Op == dfg.OpRoute {
			routeCount++
			routedFanOut = len(d.SameIterSuccessors(nid))
		}
	}
	if routeCount != 1 {
		t.Fatalf("route node count = %d, want exactly 1", routeCount)
	}
	if routedFanOut > 5 {
		t.Fatalf("route node fan-out = %d, want <= 5", routedFanOut)
	}
	if direct+routedFanOut != 9 {
		t.Fatalf("total fan-out after split = %d, want 9 (8 originals plus N->route)", direct+routedFanOut)
	}
}

// Fan-out within the cap: no route node inserted.
func TestCapOutDegree_WithinCap(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	for i := 1; i <= 3; i++ {
		must(t, d.InsertNode(dfg.NewNode(i, dfg.OpAdd)))
		if _, err := d.MakeArc(0, i, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
			t.Fatalf("MakeArc: %v", err)
		}
	}

	rng := rand.New(rand.NewSource(1))
	if err := CapOutDegree(d, 5, rng); err != nil {
		t.Fatalf("CapOutDegree: %v", err)
	}
	if len(d.Nodes()) != 4 {
		t.Fatalf("node count = %d, want 4 (no routes inserted)", len(d.Nodes()))
	}
}
