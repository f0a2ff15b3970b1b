// File: candidates.go
// Role: computes the "Potential Position" candidate PE set for a node
// during the BFS placement loop (spec §4.6 step 2).
package place

import "github.com/cgra-tc/cgrac/dfg"

// candidatePEs returns every (x, y) node id may legally occupy at its
// own modulo time, given what is already placed. An empty result means
// the caller should attempt a remap escalation.
func candidatePEs(d *dfg.DFG, n *dfg.Node, tn int, p *Placement) []Coord {
	if peer := n.MergedWith; peer >= 0 && p.IsPlaced(peer) {
		c, _ := p.Coord(peer)
		if p.freeAt(tn, c.X, c.Y, n.Path) {
			return []Coord{c}
		}
		return nil
	}

	cands := make([]Coord, 0, p.X*p.Y)
	for x := 0; x < p.X; x++ {
		for y := 0; y < p.Y; y++ {
			if p.freeAt(tn, x, y, n.Path) {
				cands = append(cands, Coord{X: x, Y: y})
			}
		}
	}

	if n.MemRole != dfg.MemRoleNone {
		cands = restrictToMemoryRow(d, n, tn, p, cands)
	}

	cands = restrictToPredecessors(d, n, tn, p, cands)
	cands = restrictToSuccessors(d, n, tn, p, cands)

	return cands
}

// restrictToMemoryRow keeps only columns matching an already-placed
// MemPeer, and requires that column's bus be free at n's time (spec
// §4.6: "constrain to the matching row... require the row's
// address/data bus free").
func restrictToMemoryRow(d *dfg.DFG, n *dfg.Node, tn int, p *Placement, cands []Coord) []Coord {
	busFree := func(col int) bool {
		switch n.MemRole {
		case dfg.MemRoleLoadAddr, dfg.MemRoleStoreAddr:
			return p.addrBusFree(tn, col)
		case dfg.MemRoleLoadData, dfg.MemRoleStoreData:
			return p.dataBusFree(tn, col)
		default:
			return true
		}
	}

	var peerCol *int
	if n.MemPeer >= 0 {
		if c, ok := p.Coord(n.MemPeer); ok {
			col := c.X
			peerCol = &col
		}
	}

	out := cands[:0:0]
	for _, c := range cands {
		if peerCol != nil && c.X != *peerCol {
			continue
		}
		if !busFree(c.X) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// restrictToPredecessors keeps only PEs reachable from every placed
// non-memory predecessor (spec §4.6: "intersect with PEs reachable from
// every placed predecessor").
func restrictToPredecessors(d *dfg.DFG, n *dfg.Node, tn int, p *Placement, cands []Coord) []Coord {
	for _, a := range d.NonMemoryPredecessors(n.ID) {
		pc, ok := p.Coord(a.From)
		if !ok {
			continue // predecessor not placed yet; no constraint from it
		}
		neigh := p.neighbors(pc.X, pc.Y)
		cands = intersectCoords(cands, neigh)
		if len(cands) == 0 {
			return cands
		}
	}
	return cands
}

// restrictToSuccessors keeps only PEs from which every placed
// non-memory successor remains reachable.
func restrictToSuccessors(d *dfg.DFG, n *dfg.Node, tn int, p *Placement, cands []Coord) []Coord {
	for _, a := range d.NonMemorySuccessors(n.ID) {
		sc, ok := p.Coord(a.To)
		if !ok {
			continue
		}
		neigh := p.neighbors(sc.X, sc.Y)
		cands = intersectCoords(cands, neigh)
		if len(cands) == 0 {
			return cands
		}
	}
	return cands
}

func intersectCoords(a, b []Coord) []Coord {
	set := make(map[Coord]struct{}, len(b))
	for _, c := range b {
		set[c] = struct{}{}
	}
	out := a[:0:0]
	for _, c := range a {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
