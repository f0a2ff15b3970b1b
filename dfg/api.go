// File: api.go
// Role: DFG container, node/arc lifecycle (InsertNode/MakeArc/RemoveArc/
//       GetArc/GetNode) and the constants set (spec §3, §4.1).
// Determinism: Nodes()/Arcs() return IDs sorted ascending for stable logs
//       and golden-file diffing.
package dfg

import (
	"fmt"
	"sort"
)

// Cycle records one recurrence cycle discovered by CalculateRecMII,
// together with its contribution to recMII (spec §4.1).
type Cycle struct {
	// Nodes lists the node IDs on the cycle, starting and ending at the
	// closing back-arc's "to" node.
	Nodes []int
	// BackArc is the positive-distance arc that closes this cycle.
	BackArc int
	// II is ceil(sum(latency) / sum(distance)) over this cycle.
	II int
}

// DFG is a set of nodes and arcs, plus a side set of constant nodes
// (never scheduled, referenced only by operand order) and the cached
// recurrence-cycle list (spec §3).
type DFG struct {
	nodes     map[int]*Node
	arcs      map[int]*Arc
	constants map[int]*Node

	// outArcs[n] / inArcs[n] list arc IDs leaving/entering node n, used
	// by the predecessor/successor queries in queries.go.
	outArcs map[int][]int
	inArcs  map[int][]int

	nextNodeID int
	nextArcID  int

	splitCondNode int // -1 if none

	Cycles     []Cycle
	PathCount  int // 2 for split DFGs, else 1
}

// New returns an empty DFG ready for InsertNode/MakeArc calls.
func New() *DFG {
	return &DFG{
		nodes:         make(map[int]*Node),
		arcs:          make(map[int]*Arc),
		constants:     make(map[int]*Node),
		outArcs:       make(map[int][]int),
		inArcs:        make(map[int][]int),
		splitCondNode: -1,
		PathCount:     1,
	}
}

// NextNodeID returns an unused node ID and reserves it.
func (d *DFG) NextNodeID() int {
	id := d.nextNodeID
	d.nextNodeID++
	return id
}

// NextArcID returns an unused arc ID and reserves it.
func (d *DFG) NextArcID() int {
	id := d.nextArcID
	d.nextArcID++
	return id
}

// InsertNode adds n to the DFG. Constant nodes (Op == OpConst) are
// additionally recorded in the constants set, per spec §4.1
// ("insert_node(n): adds n; separates constants into the constants set").
func (d *DFG) InsertNode(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if _, exists := d.nodes[n.ID]; exists {
		return fmt.Errorf("InsertNode(%d): %w", n.ID, ErrDuplicateNode)
	}
	d.nodes[n.ID] = n
	if n.ID >= d.nextNodeID {
		d.nextNodeID = n.ID + 1
	}
	if n.Op == OpConst {
		d.constants[n.ID] = n
	}
	if n.SplitCond {
		if d.splitCondNode != -1 && d.splitCondNode != n.ID {
			return fmt.Errorf("InsertNode(%d): %w", n.ID, ErrDuplicateSplitCondition)
		}
		d.splitCondNode = n.ID
	}
	return nil
}

// RemoveNode deletes node id and every arc touching it. Used by
// transform's phi-deletion step (spec §4.3d).
func (d *DFG) RemoveNode(id int) error {
	if _, ok := d.nodes[id]; !ok {
		return fmt.Errorf("RemoveNode(%d): %w", id, ErrNodeNotFound)
	}
	for _, aid := range append([]int(nil), d.outArcs[id]...) {
		_ = d.RemoveArc(aid)
	}
	for _, aid := range append([]int(nil), d.inArcs[id]...) {
		_ = d.RemoveArc(aid)
	}
	delete(d.nodes, id)
	delete(d.constants, id)
	delete(d.outArcs, id)
	delete(d.inArcs, id)
	if d.splitCondNode == id {
		d.splitCondNode = -1
	}
	return nil
}

// GetNode returns the node with the given id, or ErrNodeNotFound.
func (d *DFG) GetNode(id int) (*Node, error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, fmt.Errorf("GetNode(%d): %w", id, ErrNodeNotFound)
	}
	return n, nil
}

// IsConstant reports whether id names a constant node.
func (d *DFG) IsConstant(id int) bool {
	_, ok := d.constants[id]
	return ok
}

// MarkSplitCondition sets the DFG's unique split-condition node id. It
// returns ErrDuplicateSplitCondition if a different node was already
// marked (spec §3: "a split-condition node is unique per DFG").
func (d *DFG) MarkSplitCondition(id int) error {
	if d.splitCondNode != -1 && d.splitCondNode != id {
		return fmt.Errorf("MarkSplitCondition(%d): %w", id, ErrDuplicateSplitCondition)
	}
	d.splitCondNode = id
	return nil
}

// SplitConditionNode returns the DFG's unique split-condition node ID,
// or -1 if the DFG has none (single-path loop).
func (d *DFG) SplitConditionNode() int {
	return d.splitCondNode
}

// Nodes returns every node ID in the DFG, sorted ascending.
func (d *DFG) Nodes() []int {
	ids := make([]int, 0, len(d.nodes))
	for id := range d.nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// MakeArc creates and stores a new arc from 'from' to 'to'. It rejects a
// duplicate (from,to) pair (spec §4.1). A self-loop (from == to) is
// additionally attached to the node's SelfLoop field rather than only
// living in the arc tables, per spec §4.1.
func (d *DFG) MakeArc(from, to, distance int, dep DepKind, operandOrder int, path PathTag) (*Arc, error) {
	fn, err := d.GetNode(from)
	if err != nil {
		return nil, fmt.Errorf("MakeArc: from: %w", err)
	}
	tn, err := d.GetNode(to)
	if err != nil {
		return nil, fmt.Errorf("MakeArc: to: %w", err)
	}
	if distance < 0 {
		return nil, fmt.Errorf("MakeArc(%d->%d): %w", from, to, ErrNegativeDistance)
	}
	if operandOrder < 0 || operandOrder > 2 {
		return nil, fmt.Errorf("MakeArc(%d->%d): %w", from, to, ErrBadOperandOrder)
	}
	if existing, _ := d.GetArc(from, to); existing != nil {
		return nil, fmt.Errorf("MakeArc(%d->%d): %w", from, to, ErrDuplicateArc)
	}
	if fn.Path != PathNone && tn.Path != PathNone && fn.Path != tn.Path && path != PathNone {
		return nil, fmt.Errorf("MakeArc(%d->%d): %w", from, to, ErrOppositePaths)
	}

	a := &Arc{
		ID:           d.NextArcID(),
		From:         from,
		To:           to,
		OperandOrder: operandOrder,
		Distance:     distance,
		Dep:          dep,
		Path:         path,
	}
	d.arcs[a.ID] = a
	d.outArcs[from] = append(d.outArcs[from], a.ID)
	d.inArcs[to] = append(d.inArcs[to], a.ID)
	if from == to {
		fn.SelfLoop = a
	}
	return a, nil
}

// RemoveArc deletes the arc with the given id.
func (d *DFG) RemoveArc(id int) error {
	a, ok := d.arcs[id]
	if !ok {
		return fmt.Errorf("RemoveArc(%d): %w", id, ErrArcNotFound)
	}
	delete(d.arcs, id)
	d.outArcs[a.From] = removeID(d.outArcs[a.From], id)
	d.inArcs[a.To] = removeID(d.inArcs[a.To], id)
	if a.From == a.To {
		if n, ok := d.nodes[a.From]; ok && n.SelfLoop != nil && n.SelfLoop.ID == id {
			n.SelfLoop = nil
		}
	}
	return nil
}

// GetArc returns the arc connecting from->to, if any (nil, nil if absent).
func (d *DFG) GetArc(from, to int) (*Arc, error) {
	for _, aid := range d.outArcs[from] {
		a := d.arcs[aid]
		if a.To == to {
			return a, nil
		}
	}
	return nil, nil
}

// GetArcByID returns the arc with the given id, or ErrArcNotFound.
func (d *DFG) GetArcByID(id int) (*Arc, error) {
	a, ok := d.arcs[id]
	if !ok {
		return nil, fmt.Errorf("GetArcByID(%d): %w", id, ErrArcNotFound)
	}
	return a, nil
}

// Arcs returns every arc ID in the DFG, sorted ascending.
func (d *DFG) Arcs() []int {
	ids := make([]int, 0, len(d.arcs))
	for id := range d.arcs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns a deep copy of d: every Node and Arc is duplicated so
// that mutating the clone (transform/route/place all mutate in place)
// never touches d. Used by pipeline's II-increment retry ladder to
// restart a failed schedule/route/place attempt from a pristine copy
// instead of re-running the builder (spec §2, §7).
func (d *DFG) Clone() *DFG {
	c := &DFG{
		nodes:         make(map[int]*Node, len(d.nodes)),
		arcs:          make(map[int]*Arc, len(d.arcs)),
		constants:     make(map[int]*Node, len(d.constants)),
		outArcs:       make(map[int][]int, len(d.outArcs)),
		inArcs:        make(map[int][]int, len(d.inArcs)),
		nextNodeID:    d.nextNodeID,
		nextArcID:     d.nextArcID,
		splitCondNode: d.splitCondNode,
		Cycles:        append([]Cycle(nil), d.Cycles...),
		PathCount:     d.PathCount,
	}
	for id, n := range d.nodes {
		cn := *n
		cn.SelfLoop = nil
		c.nodes[id] = &cn
	}
	if c.constants != nil {
		for id := range d.constants {
			c.constants[id] = c.nodes[id]
		}
	}
	for id, a := range d.arcs {
		ca := *a
		c.arcs[id] = &ca
		if ca.From == ca.To {
			c.nodes[ca.From].SelfLoop = &ca
		}
	}
	for id, s := range d.outArcs {
		c.outArcs[id] = append([]int(nil), s...)
	}
	for id, s := range d.inArcs {
		c.inArcs[id] = append([]int(nil), s...)
	}
	return c
}

func removeID(s []int, id int) []int {
	out := s[:0]
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
