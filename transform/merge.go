// File: merge.go
// Role: stage (f) — node merging across paths (spec §4.3f).
//
// When a true-path producer and a false-path producer both feed the
// same consumer at the same operand order, they are marked as merged
// peers: the placer must then seat them at the same (t, x, y), since at
// runtime only one of the pair actually carries a value into that slot.
package transform

import "github.com/cgra-tc/cgrac/dfg"

// MergePeers applies stage (f) to d. It is a no-op when d.PathCount != 2.
func MergePeers(d *dfg.DFG) error {
	if d.PathCount != 2 {
		return nil
	}

	for _, nid := range d.Nodes() {
		preds := d.Predecessors(nid)
		byOperand := map[int][]*dfg.Arc{}
		for _, a := range preds {
			if a.Path == dfg.PathTrue || a.Path == dfg.PathFalse {
				byOperand[a.OperandOrder] = append(byOperand[a.OperandOrder], a)
			}
		}
		for _, arcs := range byOperand {
			var truePeer, falsePeer int = -1, -1
			for _, a := range arcs {
				if a.Path == dfg.PathTrue {
					truePeer = a.From
				} else {
					falsePeer = a.From
				}
			}
			if truePeer == -1 || falsePeer == -1 {
				continue
			}
			pt, err := d.GetNode(truePeer)
			if err != nil {
				return err
			}
			pf, err := d.GetNode(falsePeer)
			if err != nil {
				return err
			}
			pt.MergedWith = falsePeer
			pf.MergedWith = truePeer
		}
	}
	return nil
}
