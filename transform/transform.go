// File: transform.go
// Role: orchestrates the six stages of spec §4.3 in order, then
// recomputes the DFG's cycle/recMII cache since transformation can
// change which arcs close a recurrence.
package transform

import (
	"fmt"
	"math/rand"

	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
)

// Apply runs stages (a)-(f) against d in order, deriving stage (c)'s
// randomness from cfg's seed via config.StreamTransform, and leaves
// d.Cycles/RecMII populated via dfg.CalculateRecMII on success.
func Apply(d *dfg.DFG, cfg *config.Config, baseRNG *rand.Rand) error {
	if err := CheckInDegree(d, cfg.MaxInDegree); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	if err := InsertInterIterationRouting(d); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	rng := config.DeriveRNG(baseRNG, config.StreamTransform)
	if err := CapOutDegree(d, cfg.MaxOutDegree, rng); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	if err := SplitPaths(d); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	if err := PadPaths(d); err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	if err := MergePeers(d); err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	_, cycles := d.CalculateRecMII()
	d.Cycles = cycles
	return nil
}
