// File: pathsplit.go
// Role: stage (d) — path splitting for conditional loops (spec §4.3d).
//
// Node.Path is already set by the front-end's dominance analysis and
// carried through dfgparse (spec §4.2's path field), so this stage does
// not recompute dominance. Its remaining work is: collapse join phi
// nodes that feed a single downstream consumer into direct path-tagged
// producer->consumer arcs, and leave every other phi as a conditional-
// select. Stage (d) is a no-op on single-path DFGs.
package transform

import "github.com/cgra-tc/cgrac/dfg"

// SplitPaths applies stage (d) to d. It is a no-op when d.PathCount != 2.
func SplitPaths(d *dfg.DFG) error {
	if d.PathCount != 2 {
		return nil
	}

	for _, nid := range d.Nodes() {
		n, err := d.GetNode(nid)
		if err != nil {
			return err
		}
		if n.Op != dfg.OpPhi || n.Path != dfg.PathNone {
			continue
		}
		if err := collapseJoinPhi(d, n); err != nil {
			return err
		}
	}
	return nil
}

// collapseJoinPhi deletes n when it has exactly one true-path producer,
// one false-path producer, and exactly one downstream successor,
// reconnecting both producers directly to that successor with path-
// tagged arcs (spec §4.3d). Any other shape leaves n untouched, as a
// standing conditional-select.
func collapseJoinPhi(d *dfg.DFG, n *dfg.Node) error {
	preds := d.Predecessors(n.ID)
	succs := append(d.SameIterSuccessors(n.ID), d.NextIterSuccessors(n.ID)...)
	if len(succs) != 1 {
		return nil
	}

	var truePred, falsePred *dfg.Arc
	for _, a := range preds {
		switch a.Path {
		case dfg.PathTrue:
			if truePred != nil {
				return nil
			}
			truePred = a
		case dfg.PathFalse:
			if falsePred != nil {
				return nil
			}
			falsePred = a
		default:
			return nil
		}
	}
	if truePred == nil || falsePred == nil {
		return nil
	}

	succ := succs[0]
	consumerID, operand, dep, dist := succ.To, succ.OperandOrder, succ.Dep, succ.Distance
	trueFrom, falseFrom := truePred.From, falsePred.From

	if err := d.RemoveNode(n.ID); err != nil {
		return err
	}

	if _, err := d.MakeArc(trueFrom, consumerID, dist, dep, operand, dfg.PathTrue); err != nil {
		return err
	}
	if _, err := d.MakeArc(falseFrom, consumerID, dist, dep, operand, dfg.PathFalse); err != nil {
		return err
	}
	return nil
}
