// File: registers.go
// Role: live-in/live-out register assignment (spec §4.7: "for each
// physical (x, y), collect the union over t of live-in ids reaching
// that column; assign dense register numbers starting at 0. Live-out
// ids use register numbers starting immediately after live-in").
package instr

import (
	"sort"

	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/place"
)

// RegisterMap assigns every live-in/live-out node a dense register
// index local to its physical column.
type RegisterMap struct {
	reg         map[int]byte // node id -> register index within its column
	liveInCount map[int]int  // column -> number of live-in registers
	liveInByCol map[int][]int
	liveOutByCol map[int][]int
}

// Register returns n's register index within its column, and whether
// n was assigned one (only live-in/live-out nodes are).
func (r *RegisterMap) Register(nodeID int) (byte, bool) {
	v, ok := r.reg[nodeID]
	return v, ok
}

// LiveInColumns returns, in ascending order, every physical column
// that has at least one live-in register.
func (r *RegisterMap) LiveInColumns() []int {
	return sortedKeys(r.liveInByCol)
}

// LiveInsForColumn returns col's live-in node ids in assigned register
// order (spec §4.8's preamble iterates them per column).
func (r *RegisterMap) LiveInsForColumn(col int) []int {
	return r.liveInByCol[col]
}

// LiveOutColumns returns, in ascending order, every physical column
// that has at least one live-out register.
func (r *RegisterMap) LiveOutColumns() []int {
	return sortedKeys(r.liveOutByCol)
}

// LiveOutsForColumn returns col's live-out node ids in assigned
// register order (spec §4.8's postamble iterates them per column).
func (r *RegisterMap) LiveOutsForColumn(col int) []int {
	return r.liveOutByCol[col]
}

func sortedKeys(m map[int][]int) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// AssignRegisters walks every placed node and assigns dense,
// per-column register numbers: live-in nodes first (0-based), then
// live-out nodes continuing from where live-in left off.
//
// A live-in value reaches a column in one of two ways dfgparse can
// produce (spec §4.2/§4.7): a dedicated producer node, never itself
// placed, reached by a placed consumer over a LiveInDataDep arc — in
// which case the producer is registered under the consumer's column;
// or a single node that is its own live-in source (no incoming arc on
// the live-in operand slot, e.g. the single-node accumulator of spec
// §8 scenario 1), registered under its own placed column. The same
// logical live-in id legitimately gets a distinct register in every
// column it reaches, since each column's register file is local
// hardware — dedup keys on (column, id), not bare id.
func AssignRegisters(d *dfg.DFG, p *place.Placement, ids []int) *RegisterMap {
	liveInByCol := map[int][]int{}
	liveOutByCol := map[int][]int{}
	seenLiveIn := map[[2]int]bool{}

	addLiveIn := func(col, id int) {
		key := [2]int{col, id}
		if seenLiveIn[key] {
			return
		}
		seenLiveIn[key] = true
		liveInByCol[col] = append(liveInByCol[col], id)
	}

	sortedIDs := append([]int(nil), ids...)
	sort.Ints(sortedIDs)

	for _, id := range sortedIDs {
		n, err := d.GetNode(id)
		if err != nil {
			continue
		}
		c, ok := p.Coord(id)
		if !ok {
			continue
		}
		if n.LiveOut {
			liveOutByCol[c.X] = append(liveOutByCol[c.X], id)
		}
		if n.LiveIn {
			addLiveIn(c.X, id)
		}
		for _, a := range d.Predecessors(id) {
			if a.Dep != dfg.LiveInDataDep {
				continue
			}
			addLiveIn(c.X, a.From)
		}
	}

	rm := &RegisterMap{
		reg:          map[int]byte{},
		liveInCount:  map[int]int{},
		liveInByCol:  liveInByCol,
		liveOutByCol: liveOutByCol,
	}
	for col, liveIns := range liveInByCol {
		sort.Ints(liveIns)
		for i, id := range liveIns {
			rm.reg[id] = byte(i)
		}
		rm.liveInCount[col] = len(liveIns)
	}
	for col, liveOuts := range liveOutByCol {
		sort.Ints(liveOuts)
		base := rm.liveInCount[col]
		for i, id := range liveOuts {
			rm.reg[id] = byte(base + i)
		}
	}
	return rm
}
