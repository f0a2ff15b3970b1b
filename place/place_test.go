package place

import (
	"math/rand"
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

// A two-node chain on a 2x2 grid places both nodes on distinct, or the
// same, PE as long as the grid adjacency relation is respected.
func TestPlace_SimpleChainSucceeds(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	must(t, d.InsertNode(dfg.NewNode(1, dfg.OpAdd)))
	if _, err := d.MakeArc(0, 1, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	sched := &schedule.Schedule{Time: map[int]int{0: 0, 1: 1}, II: 2}
	cfg := config.New(2, 2)
	rng := rand.New(rand.NewSource(1))

	p, err := Place(d, sched, cfg, rng)
	must(t, err)

	c0, ok0 := p.Coord(0)
	c1, ok1 := p.Coord(1)
	if !ok0 || !ok1 {
		t.Fatalf("both nodes should be placed: ok0=%v ok1=%v", ok0, ok1)
	}

	found := false
	for _, n := range p.neighbors(c0.X, c0.Y) {
		if n == c1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("consumer PE %v not reachable from producer PE %v", c1, c0)
	}
}

// A fan-out that cannot possibly fit a single-PE grid at the same
// cycle forces placement failure.
func TestPlace_FailsWhenGridTooSmall(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	must(t, d.InsertNode(dfg.NewNode(1, dfg.OpAdd)))
	must(t, d.InsertNode(dfg.NewNode(2, dfg.OpAdd)))
	if _, err := d.MakeArc(0, 1, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}
	if _, err := d.MakeArc(0, 2, 0, dfg.TrueDep, 1, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	// Nodes 1 and 2 both need the same single cycle slot 1, but the
	// grid holds only one PE, so both contend for the same (t,x,y).
	sched := &schedule.Schedule{Time: map[int]int{0: 0, 1: 1, 2: 1}, II: 1}
	cfg := config.New(1, 1)
	cfg.MaxMappingAttempts = 2
	rng := rand.New(rand.NewSource(1))

	if _, err := Place(d, sched, cfg, rng); err == nil {
		t.Fatalf("expected placement failure on an over-subscribed single-PE grid")
	}
}
