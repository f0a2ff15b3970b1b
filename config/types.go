package config

// Default tunable limits (spec §4.3, §4.4, §4.6, §6). Callers override
// via CLI flags in cmd/cgrac; library callers override fields directly.
const (
	// DefaultMaxInDegree bounds true+pred predecessors per path, matching
	// the three operand-order slots (0,1,2) a node may carry (spec §3).
	DefaultMaxInDegree = 3

	// DefaultMaxOutDegree bounds same-iteration successors per
	// (none ∪ path) bucket. 5 matches the PE's five same-cycle
	// neighbor identities (Up/Down/Left/Right/Self) — spec §8 scenario
	// 6 uses this exact value in its worked example.
	DefaultMaxOutDegree = 5

	// DefaultMaxII is the upper bound the modulo scheduler/router/placer
	// retry ladder raises II to before declaring a fatal compile error
	// (spec §5, §7).
	DefaultMaxII = 64

	// DefaultModuloSchedulingAttempts bounds modulo-schedule retries
	// after a routing failure before II is incremented (spec §4.5, §7).
	DefaultModuloSchedulingAttempts = 8

	// DefaultMaxMappingAttempts bounds placer restarts with a fresh
	// random seed before II is incremented (spec §4.6, §7).
	DefaultMaxMappingAttempts = 16

	// DefaultLambda is the default for Config.Lambda (the -LAMBDA flag).
	// The modulo scheduler does not read Lambda: its ready-node ordering
	// is by slack alone, ties broken by priority rank.
	DefaultLambda = 0.5

	// DefaultPerRowMem is the number of memory-bus transactions a row
	// can sustain per cycle (spec §4.4's "perRowMem·X" resource bound).
	DefaultPerRowMem = 1
)

// MapMode selects among placement remap-escalation behaviors (spec
// §6's "-MAP_MODE {0..5}"). Modes 0-2 restrict the placer to a prefix
// of the three remap strategies (spec §4.6); modes 3 and 4 permit the
// same prefixes as modes 0 and 1 and additionally report IsVerbose.
// ModeFull (5) is the default: all three remap escalations, full
// attempt ladder.
type MapMode int

const (
	ModeBasicOnly MapMode = iota
	ModeCurrentT
	ModeAdjacentT
	ModeBasicVerbose
	ModeCurrentTVerbose
	ModeFull
)

// Config bundles every tunable the pipeline needs, threaded by value
// from cmd/cgrac down through pipeline.Compile.
type Config struct {
	X, Y int // grid dimensions (spec §6 CGRA_config.txt)

	Seed int64 // PRNG seed; 0 means "derive from entropy" (spec §5)

	MaxII                    int
	ModuloSchedulingAttempts int
	MaxMappingAttempts       int
	MapII                    int // initial II guess fed to the scheduler
	Lambda                   float64
	MapMode                  MapMode

	MaxInDegree  int
	MaxOutDegree int
	PerRowMem    int

	Verbose bool
}

// New returns a Config with every default populated; X and Y must be
// set by the caller (there is no sensible default grid size).
func New(x, y int) *Config {
	return &Config{
		X: x, Y: y,
		MaxII:                    DefaultMaxII,
		ModuloSchedulingAttempts: DefaultModuloSchedulingAttempts,
		MaxMappingAttempts:       DefaultMaxMappingAttempts,
		MapII:                    1,
		Lambda:                   DefaultLambda,
		MapMode:                  ModeFull,
		MaxInDegree:              DefaultMaxInDegree,
		MaxOutDegree:             DefaultMaxOutDegree,
		PerRowMem:                DefaultPerRowMem,
	}
}

// strategyPrefix returns how many of the three remap escalations (spec
// §4.6 step 3: basic, current-t, adjacent-t) this mode permits. Modes
// 3-5 allow the same prefix as modes 0-2.
func (m MapMode) strategyPrefix() int {
	switch m {
	case ModeBasicOnly, ModeBasicVerbose:
		return 1
	case ModeCurrentT, ModeCurrentTVerbose:
		return 2
	default: // ModeAdjacentT, ModeFull
		return 3
	}
}

// AllowsCurrentTRemap reports whether MapMode permits the current-t
// remap escalation (spec §4.6 step 3's second strategy).
func (m MapMode) AllowsCurrentTRemap() bool {
	return m.strategyPrefix() >= 2
}

// AllowsAdjacentTRemap reports whether MapMode permits the adjacent-t
// remap escalation (spec §4.6 step 3's third strategy).
func (m MapMode) AllowsAdjacentTRemap() bool {
	return m.strategyPrefix() >= 3
}

// IsVerbose reports whether this is one of the verbose modes (3 or 4).
// The pipeline does not read it; verbose tracing follows Config.Verbose.
func (m MapMode) IsVerbose() bool {
	return m == ModeBasicVerbose || m == ModeCurrentTVerbose
}
