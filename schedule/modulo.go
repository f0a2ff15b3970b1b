// File: modulo.go
// Role: the modulo scheduler (spec §4.4): given an initiation interval
// II, find a per-node cycle respecting both data dependencies (mod II)
// and PE/bus resource capacity, or report ErrModuloScheduleFailed so
// the caller can retry at a larger II.
package schedule

import (
	"math/rand"

	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
)

// ModuloSchedule attempts one modulo-scheduling pass at the given II.
// rng drives the randomized candidate-cycle search within each node's
// valid window (spec §4.4's "randomize candidate cycles inside the window").
func ModuloSchedule(d *dfg.DFG, cfg *config.Config, ii int, rng *rand.Rand) (*Schedule, error) {
	asapFeasible, err := ResourceFeasibleASAP(d, cfg)
	if err != nil {
		return nil, err
	}
	alapFeasible, err := ResourceFeasibleALAP(d, cfg)
	if err != nil {
		return nil, err
	}

	order := priorityOrder(d, asapFeasible)
	rank := make(map[int]int, len(order))
	for i, id := range order {
		rank[id] = i
	}

	sched := newSchedule(ii)
	rs := NewResourceState()
	peCap := peCapacity(cfg)
	busCap := busCapacity(cfg)

	scheduled := map[int]bool{}
	for _, id := range d.Nodes() {
		if d.IsConstant(id) {
			scheduled[id] = true // constants are never scheduled (spec §3)
		}
	}
	// Load/store address-gen nodes are committed jointly with their
	// data partner; remove them from the independently-picked pool.
	pending := map[int]bool{}
	for _, id := range order {
		if scheduled[id] {
			continue
		}
		n, err := d.GetNode(id)
		if err != nil {
			return nil, err
		}
		if n.MemRole == dfg.MemRoleLoadAddr || n.MemRole == dfg.MemRoleStoreAddr {
			continue
		}
		pending[id] = true
	}

	for len(pending) > 0 {
		best := -1
		bestSlack := 0
		for id := range pending {
			if !isReady(d, id, scheduled) {
				continue
			}
			ub, err := upperBound(d, sched, alapFeasible, id, scheduled)
			if err != nil {
				return nil, err
			}
			af, _ := asapFeasible.At(id)
			slack := ub - af
			if best == -1 || slack < bestSlack || (slack == bestSlack && rank[id] < rank[best]) {
				best, bestSlack = id, slack
			}
		}
		if best == -1 {
			return nil, ErrModuloScheduleFailed // no ready node: a cyclic readiness deadlock
		}

		if err := scheduleOne(d, sched, rs, cfg, peCap, busCap, asapFeasible, alapFeasible, scheduled, best, rng); err != nil {
			return nil, err
		}
		delete(pending, best)
	}
	return sched, nil
}

// isReady reports whether every same-iteration non-memory successor of
// id has already been modulo-scheduled (spec §4.4's readiness
// definition). Next-iteration (loop-carried) successors are excluded:
// a recurrence's own node is its next-iteration successor, so
// requiring it scheduled first would deadlock every cycle before it
// starts. Loop-carried edges are instead bounded by lowerBound's
// carried term below.
func isReady(d *dfg.DFG, id int, scheduled map[int]bool) bool {
	for _, a := range d.SameIterNonMemorySuccessors(id) {
		if !scheduled[a.To] {
			return false
		}
	}
	return true
}

func upperBound(d *dfg.DFG, sched *Schedule, alapFeasible *Schedule, id int, scheduled map[int]bool) (int, error) {
	n, err := d.GetNode(id)
	if err != nil {
		return 0, err
	}
	ub := 0
	have := false
	for _, a := range d.SameIterNonMemorySuccessors(id) {
		if !scheduled[a.To] {
			continue
		}
		st, ok := sched.At(a.To)
		if !ok {
			continue
		}
		cand := st - n.Latency
		if !have || cand < ub {
			ub, have = cand, true
		}
	}
	if !have {
		af, _ := alapFeasible.At(id)
		return af, nil
	}
	return ub, nil
}

func lowerBound(d *dfg.DFG, sched *Schedule, asapFeasible *Schedule, id, ii int, scheduled map[int]bool) (int, error) {
	if _, err := d.GetNode(id); err != nil {
		return 0, err
	}
	lb := 0
	have := false
	for _, a := range d.SameIterPredecessors(id) {
		if !a.Dep.IsDataDep() || !scheduled[a.From] {
			continue
		}
		pn, err := d.GetNode(a.From)
		if err != nil {
			return 0, err
		}
		pt, _ := sched.At(a.From)
		if cand := pt + pn.Latency; !have || cand > lb {
			lb, have = cand, true
		}
	}
	if !have {
		lb, _ = asapFeasible.At(id)
	}
	for _, a := range d.NextIterPredecessors(id) {
		if !a.Dep.IsDataDep() || !scheduled[a.From] {
			continue
		}
		pn, err := d.GetNode(a.From)
		if err != nil {
			return 0, err
		}
		pt, _ := sched.At(a.From)
		if cand := pt + pn.Latency - a.Distance*ii; cand > lb {
			lb = cand
		}
	}
	return lb, nil
}

func modOf(t, ii int) int {
	m := t % ii
	if m < 0 {
		m += ii
	}
	return m
}

// scheduleOne finds a valid cycle for id within its window and commits
// it (plus its memory-pair partner, if any) to sched and rs.
func scheduleOne(d *dfg.DFG, sched *Schedule, rs *ResourceState, cfg *config.Config, peCap, busCap int,
	asapFeasible, alapFeasible *Schedule, scheduled map[int]bool, id int, rng *rand.Rand) error {

	n, err := d.GetNode(id)
	if err != nil {
		return err
	}
	ii := sched.II
	lb, err := lowerBound(d, sched, asapFeasible, id, ii, scheduled)
	if err != nil {
		return err
	}
	ub, err := upperBound(d, sched, alapFeasible, id, scheduled)
	if err != nil {
		return err
	}
	if lb > ub {
		return ErrModuloScheduleFailed
	}

	candidates := candidateOrder(lb, ub, n.SplitCond, rng)

	for _, t := range candidates {
		switch n.MemRole {
		case dfg.MemRoleLoadData:
			addrID := n.MemPeer
			addrLatest, _ := alapFeasible.At(addrID)
			if addrLatest < t-1 {
				continue
			}
			addrN, err := d.GetNode(addrID)
			if err != nil {
				return err
			}
			ta, td := modOf(t-1, ii), modOf(t, ii)
			if rs.PEOccupancy(addrN.Path, ta)+1 <= peCap &&
				rs.PEOccupancy(n.Path, td)+1 <= peCap &&
				busAvailable(rs.addrBus, ta, busCap, 1) &&
				busAvailable(rs.dataBus, td, busCap, 1) {
				rs.ReservePE(addrN.Path, ta, 1)
				rs.ReservePE(n.Path, td, 1)
				rs.ReserveAddrBus(ta, 1)
				rs.ReserveDataBus(td, 1)
				sched.Time[addrID] = t - 1
				sched.Time[id] = t
				scheduled[addrID] = true
				scheduled[id] = true
				return nil
			}
		case dfg.MemRoleStoreData:
			addrID := n.MemPeer
			addrLatest, _ := alapFeasible.At(addrID)
			if addrLatest < t {
				continue
			}
			addrN, err := d.GetNode(addrID)
			if err != nil {
				return err
			}
			tt := modOf(t, ii)
			if rs.PEOccupancy(addrN.Path, tt)+2 <= peCap &&
				busAvailable(rs.addrBus, tt, busCap, 1) &&
				busAvailable(rs.dataBus, tt, busCap, 1) {
				rs.ReservePE(addrN.Path, tt, 2)
				rs.ReserveAddrBus(tt, 1)
				rs.ReserveDataBus(tt, 1)
				sched.Time[addrID] = t
				sched.Time[id] = t
				scheduled[addrID] = true
				scheduled[id] = true
				return nil
			}
		default:
			tt := modOf(t, ii)
			if rs.PEOccupancy(n.Path, tt)+1 <= peCap {
				rs.ReservePE(n.Path, tt, 1)
				sched.Time[id] = t
				scheduled[id] = true
				return nil
			}
		}
	}
	return ErrModuloScheduleFailed
}

// candidateOrder returns the window's cycles in randomized order,
// except the split-condition node is forced to its lower bound first
// to minimize the dual-path speculation window (spec §4.4).
func candidateOrder(lb, ub int, forced bool, rng *rand.Rand) []int {
	n := ub - lb + 1
	if n <= 0 {
		return nil
	}
	cand := make([]int, n)
	for i := range cand {
		cand[i] = lb + i
	}
	if forced {
		return cand
	}
	rng.Shuffle(len(cand), func(i, j int) { cand[i], cand[j] = cand[j], cand[i] })
	return cand
}
