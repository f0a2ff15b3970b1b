package schedule

import (
	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
)

// PECapacity returns the grid's total PE count, X·Y (spec §4.4).
func PECapacity(cfg *config.Config) int { return cfg.X * cfg.Y }

// BusCapacity returns the per-cycle memory-bus capacity, perRowMem·X
// (spec §4.4's "perRowMem·X" bound).
func BusCapacity(cfg *config.Config) int { return cfg.PerRowMem * cfg.X }

func peCapacity(cfg *config.Config) int  { return PECapacity(cfg) }
func busCapacity(cfg *config.Config) int { return BusCapacity(cfg) }

func busAvailable(used map[int]int, t, capacity, need int) bool {
	return used[t]+need <= capacity
}

// BusAvailable is the exported form of busAvailable, for callers
// outside this package.
func BusAvailable(used map[int]int, t, capacity, need int) bool {
	return busAvailable(used, t, capacity, need)
}

// RebuildResourceState replays sched's committed placements into a
// fresh ResourceState, so route insertion (a separate package) can
// layer its own route-node reservations on top of what the modulo
// scheduler already committed.
func RebuildResourceState(d *dfg.DFG, sched *Schedule) (*ResourceState, error) {
	rs := NewResourceState()
	ii := sched.II
	for id, t := range sched.Time {
		n, err := d.GetNode(id)
		if err != nil {
			return nil, err
		}
		mt := modOf(t, ii)
		switch n.MemRole {
		case dfg.MemRoleLoadAddr:
			rs.ReservePE(n.Path, mt, 1)
			rs.ReserveAddrBus(mt, 1)
		case dfg.MemRoleLoadData:
			rs.ReservePE(n.Path, mt, 1)
			rs.ReserveDataBus(mt, 1)
		case dfg.MemRoleStoreAddr:
			rs.ReservePE(n.Path, mt, 2)
			rs.ReserveAddrBus(mt, 1)
		case dfg.MemRoleStoreData:
			// store-data's PE cost was charged against its address-gen
			// peer above; only the data-bus side is its own contribution.
			rs.ReserveDataBus(mt, 1)
		default:
			rs.ReservePE(n.Path, mt, 1)
		}
	}
	return rs, nil
}
