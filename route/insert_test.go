package route

import (
	"testing"

	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/schedule"
)

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// A producer ready at cycle 1 feeding a consumer that needs the value
// at cycle 4 gets a 3-node route chain (spec §4.5).
func TestInsert_BuildsChainForCycleGap(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	must(t, d.InsertNode(dfg.NewNode(1, dfg.OpAdd)))
	if _, err := d.MakeArc(0, 1, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	sched := &schedule.Schedule{Time: map[int]int{0: 0, 1: 4}, II: 8}
	cfg := config.New(4, 4)

	if err := Insert(d, sched, cfg); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var routeCount int
	for _, id := range d.Nodes() {
		n, err := d.GetNode(id)
		must(t, err)
		if n.Op == dfg.OpRoute {
			routeCount++
		}
	}
	if routeCount != 3 {
		t.Fatalf("route node count = %d, want 3 (gap = needTime 4 - readyTime 1)", routeCount)
	}

	preds := d.Predecessors(1)
	if len(preds) != 1 {
		t.Fatalf("consumer preds = %d, want 1", len(preds))
	}
	last, err := d.GetNode(preds[0].From)
	must(t, err)
	if last.Op != dfg.OpRoute {
		t.Fatalf("consumer's direct producer should be the last route node")
	}
	lastTime, ok := sched.At(last.ID)
	if !ok || lastTime != 3 {
		t.Fatalf("last route node time = %d (ok=%v), want 3", lastTime, ok)
	}
}

// No gap: producer ready exactly when consumer needs the value, so no
// route node is inserted.
func TestInsert_NoopWhenNoGap(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	must(t, d.InsertNode(dfg.NewNode(1, dfg.OpAdd)))
	if _, err := d.MakeArc(0, 1, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	sched := &schedule.Schedule{Time: map[int]int{0: 0, 1: 1}, II: 8}
	cfg := config.New(4, 4)

	if err := Insert(d, sched, cfg); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(d.Nodes()) != 2 {
		t.Fatalf("node count = %d, want 2 (no route inserted)", len(d.Nodes()))
	}
}
