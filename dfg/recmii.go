// File: recmii.go
// Role: recurrence-MII computation (spec §4.1).
//
// For every arc with distance > 0, find the maximum-II simple path
// walking forward from arc.To through True/Pred successor edges until
// arc.From is reached, closing the cycle through the original arc. The
// recurrence II of that cycle is ceil(sum(latency) / sum(distance))
// over every node and arc on it. recMII is the largest such value over
// every back-arc. A length-1 cycle (self-loop) uses the node's own
// latency and the self-loop's distance directly.
//
// CalculateRecMII is pure: it never mutates the DFG. Path search visits
// every candidate successor (no early exit on the first match), and
// ties between equal-ratio paths are broken by whichever was
// discovered first in successor-iteration order.
package dfg

// CalculateRecMII computes recMII and the full list of contributing
// cycles, without mutating d. Callers that want the cached value on d
// should assign the result to d.Cycles themselves (the transform/
// schedule packages do this once, after transformation completes).
func (d *DFG) CalculateRecMII() (recMII int, cycles []Cycle) {
	for _, nid := range d.Nodes() {
		n := d.nodes[nid]
		if n.SelfLoop != nil && n.SelfLoop.Distance > 0 {
			ii := ceilDiv(n.Latency, n.SelfLoop.Distance)
			cycles = append(cycles, Cycle{Nodes: []int{nid, nid}, BackArc: n.SelfLoop.ID, II: ii})
			if ii > recMII {
				recMII = ii
			}
		}
	}

	for _, aid := range d.Arcs() {
		a := d.arcs[aid]
		if a.Distance <= 0 || a.From == a.To {
			continue // self-loops handled above
		}
		best, bestPath, found := d.maxRatioPath(a.To, a.From, a.Distance)
		if !found {
			continue
		}
		cycles = append(cycles, Cycle{Nodes: bestPath, BackArc: a.ID, II: best})
		if best > recMII {
			recMII = best
		}
	}
	return recMII, cycles
}

// maxRatioPath explores every simple path from `start` to `target`
// following True/Pred successor arcs, and returns the ceil(latency/
// distance) ratio of the path that maximizes it, closed by the
// original back-arc's distance `closeDist`.
func (d *DFG) maxRatioPath(start, target, closeDist int) (bestII int, bestPath []int, found bool) {
	visited := make(map[int]bool)
	path := []int{start}
	visited[start] = true

	var walk func(cur, sumLatency, sumDistance int)
	walk = func(cur, sumLatency, sumDistance int) {
		if cur == target {
			total := sumLatency + d.nodes[target].Latency
			ii := ceilDiv(total, sumDistance+closeDist)
			if !found || ii > bestII {
				found = true
				bestII = ii
				bestPath = append([]int(nil), path...)
			}
			return
		}
		for _, a := range d.DataSuccessors(cur) {
			if visited[a.To] {
				continue
			}
			visited[a.To] = true
			path = append(path, a.To)
			walk(a.To, sumLatency+d.nodes[cur].Latency, sumDistance+a.Distance)
			path = path[:len(path)-1]
			visited[a.To] = false
		}
	}
	walk(start, 0, 0)
	return bestII, bestPath, found
}

func ceilDiv(num, den int) int {
	if den <= 0 {
		return num
	}
	if num <= 0 {
		return 0
	}
	return (num + den - 1) / den
}
