package schedule

import (
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
)

func mustD(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Two-node chain a->b: ASAP(a)=0, ASAP(b)=1 (a's latency 1).
func TestASAP_Chain(t *testing.T) {
	d := dfg.New()
	mustD(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	mustD(t, d.InsertNode(dfg.NewNode(1, dfg.OpAdd)))
	if _, err := d.MakeArc(0, 1, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
		t.Fatalf("MakeArc: %v", err)
	}

	asap, err := ASAP(d)
	if err != nil {
		t.Fatalf("ASAP: %v", err)
	}
	if asap[0] != 0 || asap[1] != 1 {
		t.Fatalf("asap = %+v, want {0:0, 1:1}", asap)
	}

	alap, err := ALAP(d, asap)
	if err != nil {
		t.Fatalf("ALAP: %v", err)
	}
	if alap[1] != 1 {
		t.Fatalf("alap[1] = %d, want 1", alap[1])
	}
}
