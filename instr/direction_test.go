package instr

import (
	"errors"
	"testing"
)

func TestDirection_AllFiveOffsets(t *testing.T) {
	const X, Y = 4, 4
	cases := []struct {
		name       string
		px, py     int
		cx, cy     int
		want       Mux
	}{
		{"self", 1, 1, 1, 1, MuxSelf},
		{"up", 1, 0, 1, 1, MuxUp},       // producer one row above (wrapping up)
		{"down", 1, 2, 1, 1, MuxDown},
		{"left", 0, 1, 1, 1, MuxLeft},
		{"right", 2, 1, 1, 1, MuxRight},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Direction(c.px, c.py, c.cx, c.cy, X, Y)
			if err != nil {
				t.Fatalf("Direction: %v", err)
			}
			if got != c.want {
				t.Fatalf("Direction = %v, want %v", got, c.want)
			}
		})
	}
}

func TestDirection_WrapsAcrossGridEdge(t *testing.T) {
	// Consumer at column 0, producer at column X-1: one toroidal step left.
	got, err := Direction(3, 0, 0, 0, 4, 4)
	if err != nil {
		t.Fatalf("Direction: %v", err)
	}
	if got != MuxLeft {
		t.Fatalf("Direction = %v, want MuxLeft (toroidal wrap)", got)
	}
}

func TestDirection_NonAdjacentReturnsError(t *testing.T) {
	_, err := Direction(0, 0, 2, 2, 4, 4)
	if !errors.Is(err, ErrNoDirection) {
		t.Fatalf("err = %v, want ErrNoDirection", err)
	}
}

func TestDirection_SizeTwoGridOnlyHasOneNeighborPerAxis(t *testing.T) {
	got, err := Direction(1, 0, 0, 0, 2, 2)
	if err != nil {
		t.Fatalf("Direction: %v", err)
	}
	if got != MuxRight {
		t.Fatalf("Direction = %v, want MuxRight", got)
	}
}
