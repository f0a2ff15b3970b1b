// File: direction.go
// Role: source-direction computation between a producer PE and a
// consumer PE one cycle later (spec §4.7).
package instr

// wrapOffset reduces a raw coordinate delta into {-1, 0, 1} under
// modulus m, the only offsets the toroidal one-hop relation permits.
// It returns 2 as a sentinel when raw is not a single toroidal step.
func wrapOffset(raw, m int) int {
	r := ((raw % m) + m) % m
	switch {
	case r == 0:
		return 0
	case m == 2:
		return 1 // only one nontrivial neighbor exists when m==2
	case r == 1:
		return 1
	case r == m-1:
		return -1
	default:
		return 2
	}
}

// Direction computes the Mux identifying where, relative to the
// consumer PE (cx, cy), the producer PE (px, py) lies on an X×Y
// toroidal grid (spec §4.6's neighbor relation, §4.7's "Self/Up/Down/
// Left/Right... derived from the toroidal offset"). Returns
// ErrNoDirection if the two PEs are not one toroidal step apart.
func Direction(px, py, cx, cy, X, Y int) (Mux, error) {
	dx := wrapOffset(px-cx, X)
	dy := wrapOffset(py-cy, Y)

	switch {
	case dx == 0 && dy == 0:
		return MuxSelf, nil
	case dx == 0 && dy == -1:
		return MuxUp, nil
	case dx == 0 && dy == 1:
		return MuxDown, nil
	case dy == 0 && dx == -1:
		return MuxLeft, nil
	case dy == 0 && dx == 1:
		return MuxRight, nil
	default:
		return 0, ErrNoDirection
	}
}
