package schedule

import "github.com/cgra-tc/cgrac/dfg"

// Schedule maps every node id to the cycle it was assigned, plus the
// initiation interval it was computed under (1 for non-modulo schedules).
type Schedule struct {
	Time map[int]int
	II   int
}

// At returns the cycle assigned to node id, and whether it has been
// scheduled yet.
func (s *Schedule) At(id int) (int, bool) {
	t, ok := s.Time[id]
	return t, ok
}

// Modulo returns the node's cycle reduced into [0, II), the slot
// identity the modulo resource tracker and placer key on.
func (s *Schedule) Modulo(id int) (int, bool) {
	t, ok := s.Time[id]
	if !ok {
		return 0, false
	}
	if s.II <= 0 {
		return t, true
	}
	m := t % s.II
	if m < 0 {
		m += s.II
	}
	return m, true
}

func newSchedule(ii int) *Schedule {
	return &Schedule{Time: make(map[int]int), II: ii}
}

// ResourceState tracks per-(path,time) PE usage and per-time bus usage,
// following the counters the resource-availability predicates in spec
// §4.4 are phrased against. A single ResourceState instance is reused
// across an entire ASAP/ALAP/modulo attempt.
type ResourceState struct {
	pe       map[dfg.PathTag]map[int]int
	addrBus  map[int]int
	dataBus  map[int]int
}

func NewResourceState() *ResourceState {
	return &ResourceState{
		pe: map[dfg.PathTag]map[int]int{
			dfg.PathNone:  {},
			dfg.PathTrue:  {},
			dfg.PathFalse: {},
		},
		addrBus: map[int]int{},
		dataBus: map[int]int{},
	}
}

func (r *ResourceState) PEUsed(path dfg.PathTag, t int) int {
	return r.pe[path][t]
}

// PEOccupancy computes the combined PE occupancy at time t as seen by
// a candidate of path p (spec §4.4's PE resource formula).
func (r *ResourceState) PEOccupancy(p dfg.PathTag, t int) int {
	occ := r.PEUsed(dfg.PathNone, t)
	tAlt := r.PEUsed(dfg.PathTrue, t)
	fAlt := r.PEUsed(dfg.PathFalse, t)
	if tAlt > fAlt {
		occ += tAlt
	} else {
		occ += fAlt
	}
	if p != dfg.PathNone {
		occ += r.PEUsed(p, t)
	}
	return occ
}

func (r *ResourceState) ReservePE(path dfg.PathTag, t, count int) {
	r.pe[path][t] += count
}

func (r *ResourceState) ReserveAddrBus(t, count int) { r.addrBus[t] += count }
func (r *ResourceState) ReserveDataBus(t, count int) { r.dataBus[t] += count }

// AddrBusUsage and DataBusUsage expose the raw per-cycle usage maps
// to callers outside this package.
func (r *ResourceState) AddrBusUsage() map[int]int { return r.addrBus }
func (r *ResourceState) DataBusUsage() map[int]int { return r.dataBus }
