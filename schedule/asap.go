// File: asap.go
// Role: unconstrained ASAP/ALAP (spec §4.4).
package schedule

import "github.com/cgra-tc/cgrac/dfg"

// ASAP computes the unconstrained as-soon-as-possible cycle for every
// node, following only same-iteration True/Pred dependencies (the
// subgraph spec §4.4 guarantees is acyclic: "failure is impossible for
// acyclic intra-iteration dependencies").
func ASAP(d *dfg.DFG) (map[int]int, error) {
	asap := make(map[int]int, len(d.Nodes()))
	visiting := make(map[int]bool)

	var visit func(id int) (int, error)
	visit = func(id int) (int, error) {
		if t, ok := asap[id]; ok {
			return t, nil
		}
		if visiting[id] {
			return 0, ErrNoFeasibleTime // same-iter True/Pred subgraph must be acyclic
		}
		visiting[id] = true
		defer delete(visiting, id)

		preds := dataPreds(d, id)
		t := 0
		for _, a := range preds {
			pn, err := d.GetNode(a.From)
			if err != nil {
				return 0, err
			}
			pt, err := visit(a.From)
			if err != nil {
				return 0, err
			}
			if cand := pt + pn.Latency; cand > t {
				t = cand
			}
		}
		asap[id] = t
		return t, nil
	}

	for _, id := range d.Nodes() {
		if _, err := visit(id); err != nil {
			return nil, err
		}
	}
	return asap, nil
}

// ALAP computes the unconstrained as-late-as-possible cycle for every
// node, symmetric to ASAP over successors, bounded above by the
// schedule's makespan L.
func ALAP(d *dfg.DFG, asap map[int]int) (map[int]int, error) {
	l := 0
	for _, id := range d.Nodes() {
		n, err := d.GetNode(id)
		if err != nil {
			return nil, err
		}
		if cand := asap[id] + n.Latency; cand > l {
			l = cand
		}
	}

	alap := make(map[int]int, len(d.Nodes()))
	visiting := make(map[int]bool)

	var visit func(id int) (int, error)
	visit = func(id int) (int, error) {
		if t, ok := alap[id]; ok {
			return t, nil
		}
		if visiting[id] {
			return 0, ErrNoFeasibleTime
		}
		visiting[id] = true
		defer delete(visiting, id)

		n, err := d.GetNode(id)
		if err != nil {
			return 0, err
		}
		succs := dataSuccs(d, id)
		t := l - n.Latency
		for _, a := range succs {
			st, err := visit(a.To)
			if err != nil {
				return 0, err
			}
			if cand := st - n.Latency; cand < t {
				t = cand
			}
		}
		alap[id] = t
		return t, nil
	}

	for _, id := range d.Nodes() {
		if _, err := visit(id); err != nil {
			return nil, err
		}
	}
	return alap, nil
}

// dataPreds returns n's same-iteration True/Pred predecessor arcs.
func dataPreds(d *dfg.DFG, n int) []*dfg.Arc {
	var out []*dfg.Arc
	for _, a := range d.SameIterPredecessors(n) {
		if a.Dep.IsDataDep() {
			out = append(out, a)
		}
	}
	return out
}

// dataSuccs returns n's same-iteration True/Pred successor arcs.
func dataSuccs(d *dfg.DFG, n int) []*dfg.Arc {
	var out []*dfg.Arc
	for _, a := range d.SameIterSuccessors(n) {
		if a.Dep.IsDataDep() {
			out = append(out, a)
		}
	}
	return out
}
