// Program cgrac compiles one loop's dataflow graph into a CGRA binary
// program.
//
// Example usage:
//
//	cgrac -X=4 -Y=4 -NODE=CGRAExec/L0/node.sch -EDGE=CGRAExec/L0/edge.sch
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/cgra-tc/cgrac/bundle"
	"github.com/cgra-tc/cgrac/config"
	"github.com/cgra-tc/cgrac/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		x        = flag.Int("X", 0, "PE grid width (required)")
		y        = flag.Int("Y", 0, "PE grid height (required)")
		r        = flag.Int("R", config.DefaultPerRowMem, "memory-bus transactions a row sustains per cycle")
		nodeFile = flag.String("NODE", "", "path to the loop's node.sch (required)")
		edgeFile = flag.String("EDGE", "", "path to the loop's edge.sch (required)")

		maxII   = flag.Int("MAX_II", config.DefaultMaxII, "largest initiation interval to try before failing fatally")
		maxMap  = flag.Int("MAX_MAP", config.DefaultMaxMappingAttempts, "placement attempts per initiation interval before increasing II")
		lambda  = flag.Float64("LAMBDA", config.DefaultLambda, "stored in Config.Lambda; the scheduler does not read it")
		mapII   = flag.Int("MAPII", 1, "initial initiation interval the scheduler starts from")
		msa     = flag.Int("MSA", config.DefaultModuloSchedulingAttempts, "reschedule attempts per initiation interval after a routing failure")
		mapMode = flag.Int("MAP_MODE", int(config.ModeFull), "placement remap-escalation mode (0-5)")

		maxInDegree  = flag.Int("MAX_IN_DEGREE", config.DefaultMaxInDegree, "largest per-path true-dependency in-degree accepted; more is a fatal error")
		maxOutDegree = flag.Int("MAX_OUT_DEGREE", config.DefaultMaxOutDegree, "same-cycle fanout the transformer splits down to")
		seed         = flag.Int64("SEED", 0, "PRNG seed (0 derives from entropy)")
		verbose      = flag.Bool("VERBOSE", false, "trace retry-ladder progress to stderr")
		pkg          = flag.Bool("PACKAGE", false, "additionally cpio-archive the five output files for upload")
	)
	flag.Parse()
	if flag.NArg() > 0 {
		return fmt.Errorf("cgrac: unrecognized arguments: %v", flag.Args())
	}

	if *x <= 0 || *y <= 0 {
		return fmt.Errorf("cgrac: -X and -Y must both be positive")
	}
	if *nodeFile == "" || *edgeFile == "" {
		return fmt.Errorf("cgrac: -NODE and -EDGE are required")
	}
	inDir := filepath.Dir(*nodeFile)
	if filepath.Dir(*edgeFile) != inDir {
		return fmt.Errorf("cgrac: -NODE and -EDGE must name files in the same loop directory")
	}
	if *mapMode < int(config.ModeBasicOnly) || *mapMode > int(config.ModeFull) {
		return fmt.Errorf("cgrac: -MAP_MODE must be in 0..5")
	}

	cfg := config.New(*x, *y)
	cfg.PerRowMem = *r
	cfg.MaxII = *maxII
	cfg.MaxMappingAttempts = *maxMap
	cfg.Lambda = *lambda
	cfg.MapII = *mapII
	cfg.ModuloSchedulingAttempts = *msa
	cfg.MapMode = config.MapMode(*mapMode)
	cfg.MaxInDegree = *maxInDegree
	cfg.MaxOutDegree = *maxOutDegree
	cfg.Seed = *seed
	cfg.Verbose = *verbose

	result, err := pipeline.Compile(inDir, inDir, cfg)
	if err != nil {
		return fmt.Errorf("cgrac: %s: %w", inDir, err)
	}
	tracef(*verbose, "%s: II=%d live_in=%d live_out=%d", inDir, result.II, result.Desc.LiveInLen, result.Desc.LiveOutLen)

	if *pkg {
		archivePath := filepath.Join(inDir, "loop.cpio")
		if err := bundle.Pack(inDir, archivePath); err != nil {
			return fmt.Errorf("cgrac: package %s: %w", inDir, err)
		}
		tracef(*verbose, "%s: packaged %s", inDir, archivePath)
	}
	return nil
}

// tracef writes a progress line to stderr when verbose is set,
// highlighting it when stderr is a real terminal (distri-installer's
// log.Printf idiom, extended with go-isatty the way distri's own CLI
// tooling decides whether to emit ANSI color).
func tracef(verbose bool, format string, args ...any) {
	if !verbose {
		return
	}
	prefix := ""
	suffix := ""
	if isatty.IsTerminal(os.Stderr.Fd()) {
		prefix, suffix = "\x1b[2m", "\x1b[0m"
	}
	fmt.Fprintf(os.Stderr, prefix+format+suffix+"\n", args...)
}
