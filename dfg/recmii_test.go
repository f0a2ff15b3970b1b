package dfg

import "testing"

// Self-loop accumulator: s <- s + 1, distance 1, latency 1 (spec §8
// scenario 2). recMII must equal 1.
func TestCalculateRecMII_SelfLoop(t *testing.T) {
	d := New()
	n := NewNode(0, OpAdd)
	n.Latency = 1
	if err := d.InsertNode(n); err != nil {
		t.Fatalf("InsertNode: %v", err)
	}
	if _, err := d.MakeArc(0, 0, 1, TrueDep, 0, PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	recMII, cycles := d.CalculateRecMII()
	if recMII != 1 {
		t.Fatalf("recMII = %d, want 1", recMII)
	}
	if len(cycles) != 1 || cycles[0].II != 1 {
		t.Fatalf("cycles = %+v, want one cycle with II=1", cycles)
	}
}

// A self-loop with latency 3 and distance 1 must report recMII == 3,
// per spec §8's testable property "recMII of a single-cycle self-loop
// with latency L and distance 1 equals L".
func TestCalculateRecMII_SelfLoopHigherLatency(t *testing.T) {
	d := New()
	n := NewNode(0, OpMul)
	n.Latency = 3
	if err := d.InsertNode(n); err != nil {
		t.Fatalf("InsertNode: %v", err)
	}
	if _, err := d.MakeArc(0, 0, 1, TrueDep, 0, PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	recMII, _ := d.CalculateRecMII()
	if recMII != 3 {
		t.Fatalf("recMII = %d, want 3", recMII)
	}
}

// Two-node recurrence: a -> b (distance 0, latency 1 each), b -> a
// (distance 2). Cycle latency sum = 2, distance sum = 2, recMII = 1.
func TestCalculateRecMII_TwoNodeCycle(t *testing.T) {
	d := New()
	a := NewNode(0, OpAdd)
	b := NewNode(1, OpAdd)
	a.Latency, b.Latency = 1, 1
	must(t, d.InsertNode(a))
	must(t, d.InsertNode(b))
	if _, err := d.MakeArc(0, 1, 0, TrueDep, 0, PathNone); err != nil {
		t.Fatalf("MakeArc a->b: %v", err)
	}
	if _, err := d.MakeArc(1, 0, 2, TrueDep, 0, PathNone); err != nil {
		t.Fatalf("MakeArc b->a: %v", err)
	}

	recMII, cycles := d.CalculateRecMII()
	if recMII != 1 {
		t.Fatalf("recMII = %d, want 1", recMII)
	}
	if len(cycles) != 1 {
		t.Fatalf("cycles = %+v, want exactly one", cycles)
	}
}

// No back-arcs at all: recMII is 0 (no recurrence constraint).
func TestCalculateRecMII_Acyclic(t *testing.T) {
	d := New()
	must(t, d.InsertNode(NewNode(0, OpAdd)))
	must(t, d.InsertNode(NewNode(1, OpAdd)))
	if _, err := d.MakeArc(0, 1, 0, TrueDep, 0, PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	recMII, cycles := d.CalculateRecMII()
	if recMII != 0 || len(cycles) != 0 {
		t.Fatalf("recMII = %d, cycles = %+v, want 0/none", recMII, cycles)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
