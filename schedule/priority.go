// File: priority.go
// Role: modulo-scheduling node ordering (spec §4.4): nodes on
// longer-II cycles first, then connector nodes bridging between
// cycles, then the remaining acyclic nodes; each partition sorted by
// resource-feasible-ASAP time descending.
package schedule

import (
	"sort"

	"github.com/cgra-tc/cgrac/dfg"
)

// priorityOrder returns node ids in modulo-scheduling priority order.
func priorityOrder(d *dfg.DFG, asapFeasible *Schedule) []int {
	visited := map[int]bool{}
	var order []int

	cycles := append([]dfg.Cycle(nil), d.Cycles...)
	sort.SliceStable(cycles, func(i, j int) bool { return cycles[i].II > cycles[j].II })

	for _, c := range cycles {
		tier := make([]int, 0, len(c.Nodes))
		for _, id := range c.Nodes {
			if !visited[id] {
				visited[id] = true
				tier = append(tier, id)
			}
		}
		sortByASAPDesc(tier, asapFeasible)
		order = append(order, tier...)
	}

	connectors := connectorNodes(d, visited)
	sortByASAPDesc(connectors, asapFeasible)
	for _, id := range connectors {
		visited[id] = true
	}
	order = append(order, connectors...)

	var remaining []int
	for _, id := range d.Nodes() {
		if !visited[id] {
			remaining = append(remaining, id)
		}
	}
	sortByASAPDesc(remaining, asapFeasible)
	order = append(order, remaining...)

	return order
}

// connectorNodes approximates spec §4.4's "between-cycle connector
// nodes" as the one-hop True/Pred neighborhood of already-visited
// (cyclic) nodes that itself is not yet visited.
func connectorNodes(d *dfg.DFG, visited map[int]bool) []int {
	seen := map[int]bool{}
	var out []int
	for id := range visited {
		for _, a := range d.DataPredecessors(id) {
			if !visited[a.From] && !seen[a.From] {
				seen[a.From] = true
				out = append(out, a.From)
			}
		}
		for _, a := range d.DataSuccessors(id) {
			if !visited[a.To] && !seen[a.To] {
				seen[a.To] = true
				out = append(out, a.To)
			}
		}
	}
	sort.Ints(out)
	return out
}

func sortByASAPDesc(ids []int, asapFeasible *Schedule) {
	sort.SliceStable(ids, func(i, j int) bool {
		ti, _ := asapFeasible.At(ids[i])
		tj, _ := asapFeasible.At(ids[j])
		return ti > tj
	})
}
