// File: insert.go
// Role: route insertion after a successful modulo schedule (spec §4.5).
package route

import (
	"sort"

	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/schedule"
)

// succInfo pairs a producer's outgoing non-memory arc with the cycle
// gap route insertion must bridge before its consumer can read the
// value (spec §4.5).
type succInfo struct {
	arc      *dfg.Arc
	needTime int
	gap      int
}

// Insert runs stage §4.5 against d using the already-committed modulo
// schedule sched, extending both as it inserts route chains. On
// failure it returns ErrRouteInsertionFailed; the caller should discard
// both d and sched (they may be partially mutated) and retry from a
// fresh DFG/schedule pair.
func Insert(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config) error {
	rs, err := schedule.RebuildResourceState(d, sched)
	if err != nil {
		return err
	}
	peCap := schedule.PECapacity(cfg)
	busCap := schedule.BusCapacity(cfg)
	ii := sched.II

	for _, id := range d.Nodes() {
		rt, ok := sched.At(id)
		if !ok {
			continue // constants and other never-scheduled nodes
		}
		n, err := d.GetNode(id)
		if err != nil {
			return err
		}
		readyTime := rt + n.Latency

		succArcs := d.NonMemorySuccessors(id)
		if len(succArcs) == 0 {
			continue
		}
		infos := make([]succInfo, 0, len(succArcs))
		maxGap := 0
		for _, a := range succArcs {
			st, ok := sched.At(a.To)
			if !ok {
				continue
			}
			nt := st + a.Distance*ii
			gap := nt - readyTime
			infos = append(infos, succInfo{arc: a, needTime: nt, gap: gap})
			if gap > maxGap {
				maxGap = gap
			}
		}
		sort.SliceStable(infos, func(i, j int) bool { return infos[i].needTime < infos[j].needTime })
		if maxGap <= 0 {
			continue // every consumer already reachable at producer's ready time
		}

		chain, err := buildChain(d, sched, rs, cfg, peCap, busCap, id, n.Path, readyTime, maxGap, infos)
		if err != nil {
			return err
		}

		for _, info := range infos {
			if info.gap <= 0 {
				continue
			}
			from := chain[info.gap-1]
			a := info.arc
			to, dist, dep, operand := a.To, a.Distance, a.Dep, a.OperandOrder
			if err := d.RemoveArc(a.ID); err != nil {
				return err
			}
			if _, err := d.MakeArc(from, to, dist, dep, operand, dfg.PathNone); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildChain lays down maxGap route nodes from producer id, one per
// cycle of the gap, each checked against rs at its modulo-reduced
// cycle. infos is used only to compute each position's path tag from
// its still-active consumers (spec §4.5's per-step path-tag rule).
func buildChain(d *dfg.DFG, sched *schedule.Schedule, rs *schedule.ResourceState, cfg *config.Config, peCap, busCap, id int, producerPath dfg.PathTag, readyTime, maxGap int, infos []succInfo) ([]int, error) {
	chain := make([]int, 0, maxGap)
	tail := id
	ii := sched.II

	for k := 0; k < maxGap; k++ {
		cycle := readyTime + k
		path := chainPath(producerPath, infos, k)

		mc := cycle
		if ii > 0 {
			mc = modOf(cycle, ii)
		}
		if rs.PEOccupancy(path, mc)+1 > peCap {
			return nil, ErrRouteInsertionFailed
		}
		rs.ReservePE(path, mc, 1)

		r := dfg.NewNode(d.NextNodeID(), dfg.OpRoute)
		r.Path = path
		r.Latency = 1
		r.RouteOrigin = id
		if err := d.InsertNode(r); err != nil {
			return nil, err
		}
		if _, err := d.MakeArc(tail, r.ID, 0, dfg.TrueDep, 0, path); err != nil {
			return nil, err
		}
		sched.Time[r.ID] = cycle
		chain = append(chain, r.ID)
		tail = r.ID
	}
	return chain, nil
}

// chainPath picks the path tag for the route node at chain position k
// (0-indexed): the producer's own path if it is path-tagged, else the
// common path of every consumer still active through this node, else
// none when consumers span both paths (spec §4.5).
func chainPath(producerPath dfg.PathTag, infos []succInfo, k int) dfg.PathTag {
	if producerPath != dfg.PathNone {
		return producerPath
	}
	seenTrue, seenFalse, seenNone := false, false, false
	for _, info := range infos {
		if info.gap <= k {
			continue // this consumer already branched off before position k
		}
		switch info.arc.Path {
		case dfg.PathTrue:
			seenTrue = true
		case dfg.PathFalse:
			seenFalse = true
		default:
			seenNone = true
		}
	}
	switch {
	case seenTrue && !seenFalse && !seenNone:
		return dfg.PathTrue
	case seenFalse && !seenTrue && !seenNone:
		return dfg.PathFalse
	default:
		return dfg.PathNone
	}
}

func modOf(t, ii int) int {
	m := t % ii
	if m < 0 {
		m += ii
	}
	return m
}
