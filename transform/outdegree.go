// File: outdegree.go
// Role: stage (c) — out-degree capping (spec §4.3c).
//
// For every node N and every path p present in the DFG, the same-
// iteration successors on path none and on path p form a bucket; if
// that bucket's size exceeds maxOutDegree, one route node is inserted
// to relieve it, moving a randomly chosen set of excess successors
// (drawn from the path-p-specific arcs first, then none arcs if still
// needed) off N and onto the route node. When both the true and false
// buckets overflow, the larger bucket is relieved first, per spec.
package transform

import (
	"math/rand"

	"github.com/cgra-tc/cgrac/dfg"
)

// CapOutDegree applies stage (c) to every node in d, using rng for the
// "randomly chosen excess successors" selection (spec §4.3c).
func CapOutDegree(d *dfg.DFG, maxOutDegree int, rng *rand.Rand) error {
	paths := []dfg.PathTag{dfg.PathNone}
	if d.PathCount == 2 {
		paths = []dfg.PathTag{dfg.PathTrue, dfg.PathFalse}
	}

	for _, nid := range d.Nodes() {
		type bucket struct {
			path  dfg.PathTag
			arcs  []*dfg.Arc
			count int
		}
		var buckets []bucket
		for _, p := range paths {
			arcs := bucketArcs(d, nid, p)
			if len(arcs) > maxOutDegree {
				buckets = append(buckets, bucket{path: p, arcs: arcs, count: len(arcs)})
			}
		}
		if len(buckets) == 0 {
			continue
		}
		// Relieve the larger bucket first.
		if len(buckets) == 2 && buckets[1].count > buckets[0].count {
			buckets[0], buckets[1] = buckets[1], buckets[0]
		}

		for _, b := range buckets {
			arcs := bucketArcs(d, nid, b.path)
			if len(arcs) <= maxOutDegree {
				continue // an earlier bucket's relief may have already fixed this one
			}
			// One extra successor moves so that N's new arc to the route
			// node still fits within the cap.
			excess := len(arcs) - maxOutDegree + 1
			// Prefer moving path-p-specific arcs over shared none-arcs,
			// since moving a none-arc would also perturb the other
			// bucket (it is a member of both).
			candidates := append([]*dfg.Arc(nil), arcs...)
			rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
			orderPathFirst(candidates, b.path)

			r := dfg.NewNode(d.NextNodeID(), dfg.OpRoute)
			r.Path = b.path
			r.Latency = 1
			r.RouteOrigin = nid
			if err := d.InsertNode(r); err != nil {
				return err
			}
			if _, err := d.MakeArc(nid, r.ID, 0, dfg.TrueDep, 0, b.path); err != nil {
				return err
			}

			for i := 0; i < excess && i < len(candidates); i++ {
				a := candidates[i]
				succID, dist, dep, operand, path := a.To, a.Distance, a.Dep, a.OperandOrder, a.Path
				if err := d.RemoveArc(a.ID); err != nil {
					return err
				}
				if _, err := d.MakeArc(r.ID, succID, dist, dep, operand, path); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// bucketArcs returns N's same-iteration successor arcs on path none or
// path p (deduplicated by arc, since an arc is tagged exactly one path).
func bucketArcs(d *dfg.DFG, nid int, p dfg.PathTag) []*dfg.Arc {
	var out []*dfg.Arc
	for _, a := range d.SameIterSuccessors(nid) {
		if a.Path == dfg.PathNone || a.Path == p {
			out = append(out, a)
		}
	}
	return out
}

// orderPathFirst stable-partitions candidates so path-p-specific arcs
// precede path-none arcs, without disturbing the random order within
// each partition.
func orderPathFirst(candidates []*dfg.Arc, p dfg.PathTag) {
	out := make([]*dfg.Arc, 0, len(candidates))
	for _, a := range candidates {
		if a.Path == p {
			out = append(out, a)
		}
	}
	for _, a := range candidates {
		if a.Path != p {
			out = append(out, a)
		}
	}
	copy(candidates, out)
}
