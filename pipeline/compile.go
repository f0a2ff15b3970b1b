// File: compile.go
// Role: top-level Compile entry point threading one loop directory
// through every stage, owning the II-increment retry ladder (spec §2,
// §7).
package pipeline

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/dfgparse"
	"github.com/cgra-tc/cgrac/emit"
	"github.com/cgra-tc/cgrac/instr"
	"github.com/cgra-tc/cgrac/place"
	"github.com/cgra-tc/cgrac/route"
	"github.com/cgra-tc/cgrac/schedule"
	"github.com/cgra-tc/cgrac/transform"
)

// Result bundles what Compile produced for one loop, for callers (the
// CLI, bundle packaging) that need more than the binary descriptor.
type Result struct {
	Meta *dfgparse.Meta
	Desc emit.Descriptor
	II   int
}

// Compile parses the loop at inputDir, transforms and schedules it,
// and writes the five output artifacts into outDir, retrying with an
// incremented II on scheduling, routing, or placement failure (spec
// §2's control flow, §7's error classes). Input and capacity errors,
// bit-width overflows, and internal invariant violations are returned
// wrapped with %w (errors.Is still matches their sentinels) and are
// fatal, like ErrMaxIIExceeded: every retryable failure is already
// absorbed by this loop.
func Compile(inputDir, outDir string, cfg *config.Config) (Result, error) {
	d, meta, err := dfgparse.Load(inputDir, cfg.MaxInDegree)
	if err != nil {
		return Result{}, fmt.Errorf("pipeline: builder: %w", err)
	}

	baseRNG := config.RNGFromSeed(cfg.Seed)

	if err := transform.Apply(d, cfg, baseRNG); err != nil {
		return Result{}, fmt.Errorf("pipeline: transform: %w", err)
	}

	ii := cfg.MapII
	if ii < 1 {
		ii = 1
	}
	for ; ii <= cfg.MaxII; ii++ {
		sched, routed, ok, err := scheduleAndRoute(d, cfg, baseRNG, ii)
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: %w", err)
		}
		if !ok {
			logVerbose(cfg, "II=%d: scheduling/routing exhausted, incrementing II", ii)
			continue
		}

		p, err := place.Place(routed, sched, cfg, baseRNG)
		if errors.Is(err, place.ErrPlacementFailed) {
			logVerbose(cfg, "II=%d: placement exhausted %d attempts, incrementing II", ii, cfg.MaxMappingAttempts)
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: place: %w", err)
		}

		prog, err := instr.Generate(routed, p, sched)
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: instr: %w", err)
		}
		desc, err := emit.Emit(outDir, routed, prog)
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: emit: %w", err)
		}
		return Result{Meta: meta, Desc: desc, II: ii}, nil
	}
	return Result{}, fmt.Errorf("pipeline: %w (reached %d)", ErrMaxIIExceeded, cfg.MaxII)
}

// scheduleAndRoute runs the modulo-schedule/route-insert pair at a
// fixed II, retrying scheduling from a fresh DFG clone up to
// cfg.ModuloSchedulingAttempts times when routing fails (spec §7:
// "roll back the modulo schedule and retry"). A direct scheduling
// failure is not retried here — spec §7 sends that straight back to
// the caller to increment II. The bool return is false whenever the
// caller should move to the next II; a non-nil error is always fatal.
func scheduleAndRoute(base *dfg.DFG, cfg *config.Config, baseRNG *rand.Rand, ii int) (*schedule.Schedule, *dfg.DFG, bool, error) {
	for attempt := 0; attempt < cfg.ModuloSchedulingAttempts; attempt++ {
		attemptD := base.Clone()
		schedRNG := config.DeriveRNG(baseRNG, config.StreamSchedule)

		sched, err := schedule.ModuloSchedule(attemptD, cfg, ii, schedRNG)
		if errors.Is(err, schedule.ErrModuloScheduleFailed) {
			return nil, nil, false, nil
		}
		if err != nil {
			return nil, nil, false, err
		}

		if err := route.Insert(attemptD, sched, cfg); err != nil {
			if errors.Is(err, route.ErrRouteInsertionFailed) {
				logVerbose(cfg, "II=%d: route insertion failed on attempt %d/%d, rescheduling", ii, attempt+1, cfg.ModuloSchedulingAttempts)
				continue
			}
			return nil, nil, false, err
		}
		return sched, attemptD, true, nil
	}
	return nil, nil, false, nil
}

func logVerbose(cfg *config.Config, format string, args ...any) {
	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
