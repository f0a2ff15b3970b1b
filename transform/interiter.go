// File: interiter.go
// Role: stage (b) — inter-iteration routing insertion (spec §4.3b).
//
// If a node N has more than one successor with distance > 0, insert a
// single route node R on N's path: N -> R carries the minimum of those
// distances, and every next-iteration successor of N is redirected to
// leave from R instead, with its distance reduced by that minimum. This
// guarantees each producer has at most one direct next-iteration
// consumer, shifting register pressure onto R exactly as a software-
// pipelined loop would stage a value across iterations.
package transform

import (
	"fmt"

	"github.com/cgra-tc/cgrac/dfg"
)

// InsertInterIterationRouting applies stage (b) to every node in d.
func InsertInterIterationRouting(d *dfg.DFG) error {
	for _, nid := range d.Nodes() {
		n, err := d.GetNode(nid)
		if err != nil {
			return err
		}
		nextIter := d.NextIterSuccessors(nid)
		if len(nextIter) <= 1 {
			continue
		}

		dMin := nextIter[0].Distance
		for _, a := range nextIter[1:] {
			if a.Distance < dMin {
				dMin = a.Distance
			}
		}

		r := dfg.NewNode(d.NextNodeID(), dfg.OpRoute)
		r.Path = n.Path
		r.Latency = 1
		r.RouteOrigin = nid
		if err := d.InsertNode(r); err != nil {
			return fmt.Errorf("interiter: insert route node: %w", err)
		}
		if _, err := d.MakeArc(nid, r.ID, dMin, dfg.TrueDep, 0, n.Path); err != nil {
			return fmt.Errorf("interiter: N->R arc: %w", err)
		}

		for _, a := range nextIter {
			succID, newDist, dep, operand, path := a.To, a.Distance-dMin, a.Dep, a.OperandOrder, a.Path
			if err := d.RemoveArc(a.ID); err != nil {
				return fmt.Errorf("interiter: remove original arc: %w", err)
			}
			if _, err := d.MakeArc(r.ID, succID, newDist, dep, operand, path); err != nil {
				return fmt.Errorf("interiter: R->S arc: %w", err)
			}
		}
	}
	return nil
}
