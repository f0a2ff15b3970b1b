// File: pathpad.go
// Role: stage (e) — path padding (spec §4.3e).
//
// Any arc tagged true or false whose producer is path=none gets a
// path-tagged route node spliced in, so every path-tagged arc
// terminates at a path-tagged producer. This keeps the placer's path
// bookkeeping local to path-tagged nodes (spec §4.6).
package transform

import "github.com/cgra-tc/cgrac/dfg"

// PadPaths applies stage (e) to d. It is a no-op when d.PathCount != 2.
func PadPaths(d *dfg.DFG) error {
	if d.PathCount != 2 {
		return nil
	}

	for _, nid := range d.Nodes() {
		n, err := d.GetNode(nid)
		if err != nil {
			return err
		}
		if n.Path != dfg.PathNone {
			continue
		}
		for _, a := range append(d.SameIterSuccessors(nid), d.NextIterSuccessors(nid)...) {
			if a.Path == dfg.PathNone {
				continue
			}
			if err := padArc(d, a); err != nil {
				return err
			}
		}
	}
	return nil
}

// padArc splices a path-tagged route node between a's endpoints,
// inheriting a's path, dependency kind, operand order, and distance on
// the producer side, and distance 0 on the route->consumer side.
func padArc(d *dfg.DFG, a *dfg.Arc) error {
	r := dfg.NewNode(d.NextNodeID(), dfg.OpRoute)
	r.Path = a.Path
	r.Latency = 1
	r.RouteOrigin = a.From
	if err := d.InsertNode(r); err != nil {
		return err
	}

	from, to, dist, dep, operand := a.From, a.To, a.Distance, a.Dep, a.OperandOrder
	if err := d.RemoveArc(a.ID); err != nil {
		return err
	}
	if _, err := d.MakeArc(from, r.ID, dist, dep, 0, a.Path); err != nil {
		return err
	}
	if _, err := d.MakeArc(r.ID, to, 0, dep, operand, a.Path); err != nil {
		return err
	}
	return nil
}
