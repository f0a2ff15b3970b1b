// File: queries.go
// Role: predecessor/successor queries split by iteration-class and
// dependency-class, as required by the scheduler and transformer
// (spec §4.1: "Predecessor/successor queries split by {same-iter,
// next-iter, dependency class excluding memory, dep-class only}").
package dfg

// Successors returns the arcs leaving node n.
func (d *DFG) Successors(n int) []*Arc {
	arcs := make([]*Arc, 0, len(d.outArcs[n]))
	for _, aid := range d.outArcs[n] {
		arcs = append(arcs, d.arcs[aid])
	}
	return arcs
}

// Predecessors returns the arcs entering node n.
func (d *DFG) Predecessors(n int) []*Arc {
	arcs := make([]*Arc, 0, len(d.inArcs[n]))
	for _, aid := range d.inArcs[n] {
		arcs = append(arcs, d.arcs[aid])
	}
	return arcs
}

// SameIterSuccessors returns n's outgoing arcs with Distance == 0.
func (d *DFG) SameIterSuccessors(n int) []*Arc {
	return filterArcs(d.Successors(n), func(a *Arc) bool { return a.Distance == 0 })
}

// NextIterSuccessors returns n's outgoing arcs with Distance > 0.
func (d *DFG) NextIterSuccessors(n int) []*Arc {
	return filterArcs(d.Successors(n), func(a *Arc) bool { return a.Distance > 0 })
}

// SameIterPredecessors returns n's incoming arcs with Distance == 0.
func (d *DFG) SameIterPredecessors(n int) []*Arc {
	return filterArcs(d.Predecessors(n), func(a *Arc) bool { return a.Distance == 0 })
}

// NextIterPredecessors returns n's incoming arcs with Distance > 0.
func (d *DFG) NextIterPredecessors(n int) []*Arc {
	return filterArcs(d.Predecessors(n), func(a *Arc) bool { return a.Distance > 0 })
}

// DataSuccessors returns n's outgoing True/Pred arcs (dep-class only,
// excludes memory and all other dependency kinds).
func (d *DFG) DataSuccessors(n int) []*Arc {
	return filterArcs(d.Successors(n), func(a *Arc) bool { return a.Dep.IsDataDep() })
}

// DataPredecessors returns n's incoming True/Pred arcs.
func (d *DFG) DataPredecessors(n int) []*Arc {
	return filterArcs(d.Predecessors(n), func(a *Arc) bool { return a.Dep.IsDataDep() })
}

// SameIterNonMemorySuccessors returns n's outgoing same-iteration
// (Distance == 0) arcs excluding the memory-pair-linking kinds — the
// successor class modulo scheduling's readiness test and window upper
// bound walk (spec §4.4); next-iteration successors are handled
// separately by the scheduler's carried lower bound.
func (d *DFG) SameIterNonMemorySuccessors(n int) []*Arc {
	return filterArcs(d.SameIterSuccessors(n), func(a *Arc) bool { return !a.Dep.IsMemory() })
}

// NonMemorySuccessors returns n's outgoing arcs of any kind except the
// memory-pair-linking kinds (LoadDep/StoreDep/MemoryDep) — the
// dependency class the scheduler and route inserter walk.
func (d *DFG) NonMemorySuccessors(n int) []*Arc {
	return filterArcs(d.Successors(n), func(a *Arc) bool { return !a.Dep.IsMemory() })
}

// NonMemoryPredecessors returns n's incoming non-memory arcs.
func (d *DFG) NonMemoryPredecessors(n int) []*Arc {
	return filterArcs(d.Predecessors(n), func(a *Arc) bool { return !a.Dep.IsMemory() })
}

// MemoryPeerArc returns the LoadDep/StoreDep arc linking a memory pair
// that includes node n, or nil if n is not part of a memory pair.
func (d *DFG) MemoryPeerArc(n int) *Arc {
	for _, a := range d.Successors(n) {
		if a.Dep == LoadDep || a.Dep == StoreDep {
			return a
		}
	}
	for _, a := range d.Predecessors(n) {
		if a.Dep == LoadDep || a.Dep == StoreDep {
			return a
		}
	}
	return nil
}

func filterArcs(in []*Arc, keep func(*Arc) bool) []*Arc {
	out := make([]*Arc, 0, len(in))
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
