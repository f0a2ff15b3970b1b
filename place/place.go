// File: place.go
// Role: top-level randomized-BFS placement driver (spec §4.6).
package place

import (
	"math/rand"
	"sort"

	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/schedule"
)

// Place assigns every scheduled node in d a physical PE, retrying up
// to cfg.MaxMappingAttempts times with a fresh random seed before
// giving up (spec §4.6). sched must already reflect a committed,
// route-inserted schedule.
func Place(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config, baseRNG *rand.Rand) (*Placement, error) {
	ids := scheduledIDs(d, sched)

	for attempt := 0; attempt < cfg.MaxMappingAttempts; attempt++ {
		rng := config.DeriveRNG(baseRNG, config.StreamPlace)
		p := NewPlacement(cfg.X, cfg.Y, sched.II, cfg.PerRowMem)
		if runAttempt(d, sched, cfg, p, rng, ids) {
			return p, nil
		}
	}
	return nil, ErrPlacementFailed
}

// scheduledIDs lists every node the scheduler assigned a cycle,
// excluding loop-control nodes: the scheduler keeps a loop-control
// node's cycle as an ordering anchor for live-outs (spec §4.4), but
// the node itself is builder metadata, never a physical PE operation
// (spec §2, §8 scenario 1's single nontrivial kernel word).
func scheduledIDs(d *dfg.DFG, sched *schedule.Schedule) []int {
	ids := make([]int, 0, len(sched.Time))
	for id := range sched.Time {
		if n, err := d.GetNode(id); err == nil && n.LoopControl {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// runAttempt drives one randomized-BFS placement pass over every
// scheduled node, seeding a new BFS from a random unplaced node
// whenever the current connected run empties (spec §4.6 steps 1-2).
func runAttempt(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config, p *Placement, rng *rand.Rand, ids []int) bool {
	unvisited := make(map[int]bool, len(ids))
	for _, id := range ids {
		unvisited[id] = true
	}
	inQueue := make(map[int]bool, len(ids))

	for len(unvisited) > 0 {
		s := pickRandomUnvisited(unvisited, rng)
		delete(unvisited, s)
		queue := []int{s}
		inQueue[s] = true

		for len(queue) > 0 {
			nid := queue[0]
			queue = queue[1:]
			inQueue[nid] = false

			n, err := d.GetNode(nid)
			if err != nil {
				return false
			}
			if p.IsPlaced(nid) {
				t, _ := sched.Modulo(nid)
				p.Unplace(n, t)
			}

			if !placeNode(d, sched, p, rng, nid) {
				if !remap(d, sched, cfg, p, rng, nid) {
					return false
				}
			}

			for _, other := range neighborIDs(d, nid) {
				if p.IsPlaced(other) || inQueue[other] || !unvisited[other] {
					continue
				}
				delete(unvisited, other)
				queue = append(queue, other)
				inQueue[other] = true
			}
		}
	}
	return true
}

func pickRandomUnvisited(unvisited map[int]bool, rng *rand.Rand) int {
	ids := make([]int, 0, len(unvisited))
	for id := range unvisited {
		ids = append(ids, id)
	}
	sort.Ints(ids) // deterministic ordering before the random draw
	return ids[rng.Intn(len(ids))]
}

// placeNode computes id's candidate PE set and, if non-empty, commits
// id to a randomly chosen candidate (spec §4.6 step 2's "Potential
// Position", §8's randomized selection among feasible slots).
func placeNode(d *dfg.DFG, sched *schedule.Schedule, p *Placement, rng *rand.Rand, id int) bool {
	n, err := d.GetNode(id)
	if err != nil {
		return false
	}
	tn, ok := sched.Modulo(id)
	if !ok {
		return true // never scheduled (e.g. a constant folded into an immediate)
	}

	cands := candidatePEs(d, n, tn, p)
	if len(cands) == 0 {
		return false
	}
	c := cands[rng.Intn(len(cands))]
	p.Place(id, tn, c.X, c.Y, n.Path)
	reserveMemBus(p, n, tn, c.X)
	return true
}

func reserveMemBus(p *Placement, n *dfg.Node, t, col int) {
	switch n.MemRole {
	case dfg.MemRoleLoadAddr, dfg.MemRoleStoreAddr:
		p.reserveAddrBus(t, col, 1)
	case dfg.MemRoleLoadData, dfg.MemRoleStoreData:
		p.reserveDataBus(t, col, 1)
	}
}

func releaseMemBus(p *Placement, n *dfg.Node, t, col int) {
	switch n.MemRole {
	case dfg.MemRoleLoadAddr, dfg.MemRoleStoreAddr:
		p.reserveAddrBus(t, col, -1)
	case dfg.MemRoleLoadData, dfg.MemRoleStoreData:
		p.reserveDataBus(t, col, -1)
	}
}
