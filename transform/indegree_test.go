package transform

import (
	"errors"
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
)

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestCheckInDegree_FailsOverLimit(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	for i := 1; i <= 4; i++ {
		must(t, d.InsertNode(dfg.NewNode(i, dfg.OpAdd)))
		if _, err := d.MakeArc(i, 0, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
			t.Fatalf("MakeArc: %v", err)
		}
	}

	err := CheckInDegree(d, 3)
	if !errors.Is(err, ErrExceedingInDegree) {
		t.Fatalf("err = %v, want ErrExceedingInDegree", err)
	}
}

func TestCheckInDegree_PassesWithinLimit(t *testing.T) {
	d := dfg.New()
	must(t, d.InsertNode(dfg.NewNode(0, dfg.OpAdd)))
	for i := 1; i <= 3; i++ {
		must(t, d.InsertNode(dfg.NewNode(i, dfg.OpAdd)))
		if _, err := d.MakeArc(i, 0, 0, dfg.TrueDep, 0, dfg.PathNone); err != nil {
			t.Fatalf("MakeArc: %v", err)
		}
	}

	if err := CheckInDegree(d, 3); err != nil {
		t.Fatalf("CheckInDegree: %v", err)
	}
}
