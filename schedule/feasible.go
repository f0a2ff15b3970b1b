// File: feasible.go
// Role: resource-feasible ASAP/ALAP (spec §4.4). Stores are emitted
// first, then regular ops, then loads (address at t, data at t+1), and
// live-out nodes are held strictly after the loop-control node.
package schedule

import (
	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
)

// ResourceFeasibleASAP schedules every node at the earliest cycle that
// both its dependency lower bound and the grid's resource capacity allow.
func ResourceFeasibleASAP(d *dfg.DFG, cfg *config.Config) (*Schedule, error) {
	return resourceFeasible(d, cfg, false)
}

// ResourceFeasibleALAP is symmetric to ResourceFeasibleASAP, walking
// successors instead of predecessors and additionally requiring
// loop-control to precede every live-out.
func ResourceFeasibleALAP(d *dfg.DFG, cfg *config.Config) (*Schedule, error) {
	asap, err := resourceFeasible(d, cfg, false)
	if err != nil {
		return nil, err
	}
	alap, err := resourceFeasible(d, cfg, true)
	if err != nil {
		return nil, err
	}
	// The backward walk anchors its sinks at cycle 0; shift it later
	// until no node's ALAP cycle precedes its ASAP cycle.
	shift := 0
	for id, t := range alap.Time {
		shift = max(shift, asap.Time[id]-t)
	}
	for id := range alap.Time {
		alap.Time[id] += shift
	}
	return alap, nil
}

func resourceFeasible(d *dfg.DFG, cfg *config.Config, alap bool) (*Schedule, error) {
	sched := newSchedule(1)
	rs := NewResourceState()
	peCap := peCapacity(cfg)
	busCap := busCapacity(cfg)

	loopControl := -1
	for _, id := range d.Nodes() {
		n, err := d.GetNode(id)
		if err != nil {
			return nil, err
		}
		if n.LoopControl {
			loopControl = id
		}
	}

	order, err := feasibleOrder(d)
	if err != nil {
		return nil, err
	}
	if alap {
		reverse(order)
	}

	done := map[int]bool{}
	for _, id := range order {
		if done[id] {
			continue
		}
		n, err := d.GetNode(id)
		if err != nil {
			return nil, err
		}
		if peer := d.MemoryPeerArc(id); peer != nil && n.MemRole == dfg.MemRoleLoadData {
			continue // scheduled alongside its address-gen node below
		}
		if peer := d.MemoryPeerArc(id); peer != nil && n.MemRole == dfg.MemRoleStoreData {
			continue // scheduled alongside its address-gen node below
		}

		switch n.MemRole {
		case dfg.MemRoleLoadAddr:
			dataID := peerOf(d, id)
			if err := scheduleLoad(d, sched, rs, cfg, peCap, busCap, id, dataID, alap, loopControl); err != nil {
				return nil, err
			}
			done[dataID] = true
		case dfg.MemRoleStoreAddr:
			dataID := peerOf(d, id)
			if err := scheduleStore(d, sched, rs, cfg, peCap, busCap, id, dataID, alap, loopControl); err != nil {
				return nil, err
			}
			done[dataID] = true
		default:
			if err := scheduleRegular(d, sched, rs, peCap, id, alap, loopControl); err != nil {
				return nil, err
			}
		}
		done[id] = true
	}
	return sched, nil
}

// feasibleOrder returns node ids grouped stores-first, then regular
// ops, then loads, within each group sorted by id for determinism.
// Memory-pair data nodes are listed alongside their address-gen peer
// and skipped individually by the caller.
func feasibleOrder(d *dfg.DFG) ([]int, error) {
	var stores, loads, regular []int
	for _, id := range d.Nodes() {
		n, err := d.GetNode(id)
		if err != nil {
			return nil, err
		}
		switch n.MemRole {
		case dfg.MemRoleStoreAddr, dfg.MemRoleStoreData:
			stores = append(stores, id)
		case dfg.MemRoleLoadAddr, dfg.MemRoleLoadData:
			loads = append(loads, id)
		default:
			regular = append(regular, id)
		}
	}
	out := make([]int, 0, len(stores)+len(regular)+len(loads))
	out = append(out, stores...)
	out = append(out, regular...)
	out = append(out, loads...)
	return out, nil
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func peerOf(d *dfg.DFG, id int) int {
	n, err := d.GetNode(id)
	if err != nil {
		return -1
	}
	return n.MemPeer
}

// dependencyBound returns the lower (ASAP) or upper-anchored (ALAP)
// bound cycle for id from its already-scheduled same-iteration
// True/Pred neighbors, plus the loop-control/live-out ordering
// constraint (spec §3, §4.4).
func dependencyBound(d *dfg.DFG, sched *Schedule, id int, alap bool, loopControl int) (int, error) {
	n, err := d.GetNode(id)
	if err != nil {
		return 0, err
	}
	bound := 0
	var neighbors []*dfg.Arc
	if alap {
		neighbors = dataSuccs(d, id)
	} else {
		neighbors = dataPreds(d, id)
	}
	for _, a := range neighbors {
		otherID := a.From
		if alap {
			otherID = a.To
		}
		t, ok := sched.At(otherID)
		if !ok {
			continue
		}
		on, err := d.GetNode(otherID)
		if err != nil {
			return 0, err
		}
		var cand int
		if alap {
			cand = t - n.Latency
		} else {
			cand = t + on.Latency
		}
		if !alap && cand > bound {
			bound = cand
		}
		if alap && (bound == 0 || cand < bound) {
			bound = cand
		}
	}

	if loopControl >= 0 && loopControl != id {
		lt, ok := sched.At(loopControl)
		if ok {
			if n.LiveOut && !alap {
				if bound <= lt {
					bound = lt + 1
				}
			}
		}
	}
	if alap && id == loopControl {
		for _, oid := range d.Nodes() {
			on, err := d.GetNode(oid)
			if err != nil {
				return 0, err
			}
			if ot, ok := sched.At(oid); ok && on.LiveOut && ot-1 < bound {
				bound = ot - 1
			}
		}
	}
	return bound, nil
}

func scheduleRegular(d *dfg.DFG, sched *Schedule, rs *ResourceState, peCap, id int, alap bool, loopControl int) error {
	n, err := d.GetNode(id)
	if err != nil {
		return err
	}
	bound, err := dependencyBound(d, sched, id, alap, loopControl)
	if err != nil {
		return err
	}
	for t := bound; ; t = step(t, alap) {
		if rs.PEOccupancy(n.Path, t)+1 <= peCap {
			rs.ReservePE(n.Path, t, 1)
			sched.Time[id] = t
			return nil
		}
	}
}

func scheduleLoad(d *dfg.DFG, sched *Schedule, rs *ResourceState, cfg *config.Config, peCap, busCap, addrID, dataID int, alap bool, loopControl int) error {
	addrN, err := d.GetNode(addrID)
	if err != nil {
		return err
	}
	dataN, err := d.GetNode(dataID)
	if err != nil {
		return err
	}
	boundAddr, err := dependencyBound(d, sched, addrID, alap, loopControl)
	if err != nil {
		return err
	}
	boundData, err := dependencyBound(d, sched, dataID, alap, loopControl)
	if err != nil {
		return err
	}
	bound := boundAddr
	if !alap && boundData-1 > bound {
		bound = boundData - 1
	}
	if alap && boundData-1 < bound {
		bound = boundData - 1
	}

	for t := bound; ; t = step(t, alap) {
		if rs.PEOccupancy(addrN.Path, t)+1 <= peCap &&
			rs.PEOccupancy(dataN.Path, t+1)+1 <= peCap &&
			busAvailable(rs.addrBus, t, busCap, 1) &&
			busAvailable(rs.dataBus, t+1, busCap, 1) {
			rs.ReservePE(addrN.Path, t, 1)
			rs.ReservePE(dataN.Path, t+1, 1)
			rs.ReserveAddrBus(t, 1)
			rs.ReserveDataBus(t+1, 1)
			sched.Time[addrID] = t
			sched.Time[dataID] = t + 1
			return nil
		}
	}
}

func scheduleStore(d *dfg.DFG, sched *Schedule, rs *ResourceState, cfg *config.Config, peCap, busCap, addrID, dataID int, alap bool, loopControl int) error {
	addrN, err := d.GetNode(addrID)
	if err != nil {
		return err
	}
	boundAddr, err := dependencyBound(d, sched, addrID, alap, loopControl)
	if err != nil {
		return err
	}
	boundData, err := dependencyBound(d, sched, dataID, alap, loopControl)
	if err != nil {
		return err
	}
	bound := boundAddr
	if !alap && boundData > bound {
		bound = boundData
	}
	if alap && boundData < bound {
		bound = boundData
	}

	for t := bound; ; t = step(t, alap) {
		if rs.PEOccupancy(addrN.Path, t)+2 <= peCap &&
			busAvailable(rs.addrBus, t, busCap, 1) &&
			busAvailable(rs.dataBus, t, busCap, 1) {
			rs.ReservePE(addrN.Path, t, 2)
			rs.ReserveAddrBus(t, 1)
			rs.ReserveDataBus(t, 1)
			sched.Time[addrID] = t
			sched.Time[dataID] = t
			return nil
		}
	}
}

// step advances the search cycle away from bound: forward for ASAP,
// backward for ALAP. ALAP's search is bounded implicitly since
// dependencyBound never exceeds the node's true ALAP ceiling once all
// successors are scheduled in reverse topological order.
func step(t int, alap bool) int {
	if alap {
		return t - 1
	}
	return t + 1
}
