// File: grid.go
// Role: the time-extended toroidal X×Y×II grid and per-PE occupancy
// bookkeeping a Placement tracks while the BFS in place.go runs (spec
// §4.6). Grounded on lvlath/gridgraph's InBounds/NeighborOffsets model,
// generalized from a flat 2-D grid to a toroidal one with a third,
// modulo-II time axis and path-indexed slots.
package place

import "github.com/cgra-tc/cgrac/dfg"

// Coord is a physical PE location.
type Coord struct {
	X, Y int
}

// Placement tracks, for every node placed so far, its physical PE, and
// the occupancy of every (t, x, y, path) slot the grid exposes. A
// None-path occupant excludes both True and False occupants of the
// same (t, x, y), and vice versa (spec §4.7: "slots with a none-path
// entry produce a single instruction used on both channels").
type Placement struct {
	X, Y, II int

	loc map[int]Coord // node id -> placed PE

	none [][][]int // [t][x][y] -> node id, or -1
	tru  [][][]int
	fals [][][]int

	// addrBus/dataBus track per-column, per-modulo-cycle memory bus
	// reservations (spec §4.6: "require the row's address/data bus free
	// at the appropriate time"); columns are physical x.
	addrBus [][]int // [t][x]
	dataBus [][]int // [t][x]

	rowCap int // PerRowMem
}

func newGrid3D(t, x, y int) [][][]int {
	g := make([][][]int, t)
	for ti := range g {
		g[ti] = make([][]int, x)
		for xi := range g[ti] {
			g[ti][xi] = make([]int, y)
			for yi := range g[ti][xi] {
				g[ti][xi][yi] = -1
			}
		}
	}
	return g
}

// NewPlacement allocates an empty X×Y×II grid.
func NewPlacement(x, y, ii, perRowMem int) *Placement {
	if ii < 1 {
		ii = 1
	}
	addr := make([][]int, ii)
	data := make([][]int, ii)
	for t := 0; t < ii; t++ {
		addr[t] = make([]int, x)
		data[t] = make([]int, x)
	}
	return &Placement{
		X: x, Y: y, II: ii,
		loc:     make(map[int]Coord),
		none:    newGrid3D(ii, x, y),
		tru:     newGrid3D(ii, x, y),
		fals:    newGrid3D(ii, x, y),
		addrBus: addr,
		dataBus: data,
		rowCap:  perRowMem,
	}
}

func (p *Placement) occupant(path dfg.PathTag) [][][]int {
	switch path {
	case dfg.PathTrue:
		return p.tru
	case dfg.PathFalse:
		return p.fals
	default:
		return p.none
	}
}

// IsPlaced reports whether id already has a PE.
func (p *Placement) IsPlaced(id int) bool {
	_, ok := p.loc[id]
	return ok
}

// Coord returns id's placed PE, if any.
func (p *Placement) Coord(id int) (Coord, bool) {
	c, ok := p.loc[id]
	return c, ok
}

// freeAt reports whether (t, x, y) can hold a node of path p: the
// none slot is free and, if p is None, both true and false slots are
// also free (a none-node occupies the whole PE for that cycle).
func (p *Placement) freeAt(t, x, y int, path dfg.PathTag) bool {
	if p.none[t][x][y] != -1 {
		return false
	}
	if path == dfg.PathNone {
		return p.tru[t][x][y] == -1 && p.fals[t][x][y] == -1
	}
	return p.occupant(path)[t][x][y] == -1
}

// Place assigns node id (path, modulo time t) to PE (x, y), recording
// occupancy. Caller must have already verified freeAt.
func (p *Placement) Place(id int, t, x, y int, path dfg.PathTag) {
	p.occupant(path)[t][x][y] = id
	p.loc[id] = Coord{X: x, Y: y}
}

// Unplace removes n's occupancy at (t, n.Path) and its recorded
// location, releasing any memory bus reservation it held, leaving it
// eligible for re-placement.
func (p *Placement) Unplace(n *dfg.Node, t int) {
	id := n.ID
	occ := p.occupant(n.Path)
	if c, ok := p.loc[id]; ok {
		if occ[t][c.X][c.Y] == id {
			occ[t][c.X][c.Y] = -1
		}
		releaseMemBus(p, n, t, c.X)
	}
	delete(p.loc, id)
}

// addrBusFree/dataBusFree/reserveAddrBus/reserveDataBus track the
// per-column memory bus capacity memory nodes additionally require
// (spec §4.6).
func (p *Placement) addrBusFree(t, col int) bool { return p.addrBus[t][col] < p.rowCap }
func (p *Placement) dataBusFree(t, col int) bool { return p.dataBus[t][col] < p.rowCap }

func (p *Placement) reserveAddrBus(t, col, delta int) { p.addrBus[t][col] += delta }
func (p *Placement) reserveDataBus(t, col, delta int) { p.dataBus[t][col] += delta }

// neighbors returns the four same-time-step PE offsets reachable from
// (x, y) plus (x, y) itself (spec §4.6's "same PE" case of the
// toroidal neighbor relation), wrapped toroidally.
func (p *Placement) neighbors(x, y int) []Coord {
	out := make([]Coord, 0, 5)
	out = append(out, Coord{X: x, Y: y})
	out = append(out, Coord{X: x, Y: wrap(y+1, p.Y)})
	out = append(out, Coord{X: x, Y: wrap(y-1, p.Y)})
	out = append(out, Coord{X: wrap(x+1, p.X), Y: y})
	out = append(out, Coord{X: wrap(x-1, p.X), Y: y})
	return out
}

func wrap(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}
