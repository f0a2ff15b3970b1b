// File: remap.go
// Role: the three remap escalations the BFS placement loop falls back
// to when a node's candidate set is empty (spec §4.6 step 3).
package place

import (
	"math/rand"

	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/schedule"
)

// saved captures a node's placement so it can be restored if a remap
// attempt does not pan out.
type saved struct {
	id int
	n  *dfg.Node
	t  int
	c  Coord
}

func snapshot(d *dfg.DFG, sched *schedule.Schedule, p *Placement, ids []int) []saved {
	out := make([]saved, 0, len(ids))
	for _, id := range ids {
		if c, ok := p.Coord(id); ok {
			n, _ := d.GetNode(id)
			t, _ := sched.Modulo(id)
			out = append(out, saved{id: id, n: n, t: t, c: c})
		}
	}
	return out
}

func unplaceAll(p *Placement, snaps []saved) {
	for _, s := range snaps {
		p.Unplace(s.n, s.t)
	}
}

func restore(p *Placement, snaps []saved) {
	for _, s := range snaps {
		p.Place(s.id, s.t, s.c.X, s.c.Y, s.n.Path)
		reserveMemBus(p, s.n, s.t, s.c.X)
	}
}

// neighborIDs returns the non-memory predecessor and successor node
// ids of id (spec §4.6's dependency neighborhood used by every remap
// strategy).
func neighborIDs(d *dfg.DFG, id int) []int {
	var out []int
	for _, a := range d.NonMemoryPredecessors(id) {
		out = append(out, a.From)
	}
	for _, a := range d.NonMemorySuccessors(id) {
		out = append(out, a.To)
	}
	return out
}

// remap tries, in order, basic / current-t / adjacent-t remap
// (subject to cfg.MapMode's allowed prefix), returning true as soon as
// one places id successfully.
func remap(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config, p *Placement, rng *rand.Rand, id int) bool {
	if basicRemap(d, sched, cfg, p, rng, id) {
		return true
	}
	if cfg.MapMode.AllowsCurrentTRemap() && currentTRemap(d, sched, cfg, p, rng, id) {
		return true
	}
	if cfg.MapMode.AllowsAdjacentTRemap() && adjacentTRemap(d, sched, cfg, p, rng, id) {
		return true
	}
	return false
}

// basicRemap unplaces every placed predecessor/successor of id (and id
// itself, if placed), then retries placing id first followed by its
// evicted neighbors; on any failure the prior placements are restored
// (spec §4.6 step 3, "basic remap").
func basicRemap(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config, p *Placement, rng *rand.Rand, id int) bool {
	victims := append(neighborIDs(d, id), id)
	snaps := snapshot(d, sched, p, victims)
	unplaceAll(p, snaps)

	if attemptJointPlacement(d, sched, p, rng, victims) {
		return true
	}
	clearPlaced(p, snaps)
	restore(p, snaps)
	return false
}

// clearPlaced unplaces every snapshot entry that ended up placed (at
// whatever PE it currently holds, which attemptJointPlacement may have
// changed) so restore can re-lay the original layout onto a clean
// grid.
func clearPlaced(p *Placement, snaps []saved) {
	for _, s := range snaps {
		if p.IsPlaced(s.id) {
			p.Unplace(s.n, s.t)
		}
	}
}

// currentTRemap unplaces every node sharing id's modulo time, retries
// basic remap for id, then re-places the evicted nodes with up to
// MaxMappingAttempts retries each (spec §4.6 step 3, "current-t
// remap").
func currentTRemap(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config, p *Placement, rng *rand.Rand, id int) bool {
	tn, ok := sched.Modulo(id)
	if !ok {
		return false
	}
	return timeWindowRemap(d, sched, cfg, p, rng, id, []int{tn})
}

// adjacentTRemap unions id's modulo time with the modulo times of its
// already-placed neighbors, unplaces everything in that window, then
// retries basic remap plus re-placement (spec §4.6 step 3, "adjacent-t
// remap").
func adjacentTRemap(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config, p *Placement, rng *rand.Rand, id int) bool {
	tn, ok := sched.Modulo(id)
	if !ok {
		return false
	}
	times := map[int]bool{tn: true}
	for _, nb := range neighborIDs(d, id) {
		if p.IsPlaced(nb) {
			t, _ := sched.Modulo(nb)
			times[t] = true
		}
	}
	list := make([]int, 0, len(times))
	for t := range times {
		list = append(list, t)
	}
	return timeWindowRemap(d, sched, cfg, p, rng, id, list)
}

func timeWindowRemap(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config, p *Placement, rng *rand.Rand, id int, times []int) bool {
	victims := nodesAtTimes(d, sched, p, times)
	snaps := snapshot(d, sched, p, victims)
	unplaceAll(p, snaps)

	if basicRemap(d, sched, cfg, p, rng, id) {
		ok := true
		for _, s := range snaps {
			if s.id == id || p.IsPlaced(s.id) {
				continue
			}
			if !reattempt(d, sched, cfg, p, rng, s.id) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	// Clear any partial progress before restoring the original layout,
	// since a snapshot entry may have been (re)placed at a different PE
	// than the one it is being restored to.
	clearPlaced(p, snaps)
	restore(p, snaps)
	return false
}

// nodesAtTimes scans current placements for every node whose modulo
// time is in times.
func nodesAtTimes(d *dfg.DFG, sched *schedule.Schedule, p *Placement, times []int) []int {
	want := make(map[int]bool, len(times))
	for _, t := range times {
		want[t] = true
	}
	var out []int
	for id := range p.loc {
		t, _ := sched.Modulo(id)
		if want[t] {
			out = append(out, id)
		}
	}
	return out
}

// reattempt retries placing id up to cfg.MaxMappingAttempts times
// (spec §4.6 step 3's "re-place the evicted nodes with up to
// MAX_MAPPING_ATTEMPTS retries").
func reattempt(d *dfg.DFG, sched *schedule.Schedule, cfg *config.Config, p *Placement, rng *rand.Rand, id int) bool {
	for attempt := 0; attempt < cfg.MaxMappingAttempts; attempt++ {
		if placeNode(d, sched, p, rng, id) {
			return true
		}
	}
	return false
}

// attemptJointPlacement places every id in order, id first (it is
// always victims[len-1]), then its unplaced neighbors; on any failure
// it returns false without restoring (the caller restores from its own
// snapshot).
func attemptJointPlacement(d *dfg.DFG, sched *schedule.Schedule, p *Placement, rng *rand.Rand, victims []int) bool {
	id := victims[len(victims)-1]
	if !placeNode(d, sched, p, rng, id) {
		return false
	}
	for _, v := range victims[:len(victims)-1] {
		if p.IsPlaced(v) {
			continue
		}
		if !placeNode(d, sched, p, rng, v) {
			return false
		}
	}
	return true
}
