// File: indegree.go
// Role: stage (a) — in-degree check (spec §4.3a).
package transform

import (
	"fmt"

	"github.com/cgra-tc/cgrac/dfg"
)

// CheckInDegree fails with ErrExceedingInDegree the first time a node's
// true-dependency predecessor count, on a single path, exceeds
// maxInDegree. It performs no mutation and no splitting — per spec
// §4.3(a), exceeding the limit is always fatal.
func CheckInDegree(d *dfg.DFG, maxInDegree int) error {
	for _, nid := range d.Nodes() {
		counts := map[dfg.PathTag]int{}
		for _, a := range d.Predecessors(nid) {
			if a.Dep == dfg.TrueDep {
				counts[a.Path]++
			}
		}
		for path, c := range counts {
			if c > maxInDegree {
				return fmt.Errorf("node %d: %d true-dependency predecessors on path %s (limit %d): %w",
					nid, c, path, maxInDegree, ErrExceedingInDegree)
			}
		}
	}
	return nil
}
