// File: emit.go
// Role: top-level orchestration writing all five output artifacts for
// one loop directory (spec §4.8, §6).
package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cgra-tc/cgrac/dfg"
	"github.com/cgra-tc/cgrac/instr"
)

// Descriptor mirrors initCGRA.txt's eight lines in order (spec §6).
type Descriptor struct {
	LiveInLen       int
	II              int
	LiveOutLen      int
	IterationCount  int
	LiveInBasePC    int
	KernelBasePC    int
	IterationBasePC int
	LiveOutBasePC   int
}

// Emit writes live_in.bin, kernel.bin, iter.bin, live_out.bin, and
// initCGRA.txt into dir for the generated program prog, built from d.
func Emit(dir string, d *dfg.DFG, prog *instr.Program) (Descriptor, error) {
	liveIn, err := buildLiveIn(d, prog.Regs)
	if err != nil {
		return Descriptor{}, fmt.Errorf("emit: live-in: %w", err)
	}
	liveOut, err := buildLiveOut(d, prog.Regs, prog.X, prog.Y)
	if err != nil {
		return Descriptor{}, fmt.Errorf("emit: live-out: %w", err)
	}
	kernel := flattenKernel(prog)
	iterVals, maxIter := flattenIter(prog)

	if err := writeWordBlob(filepath.Join(dir, "live_in.bin"), liveIn); err != nil {
		return Descriptor{}, fmt.Errorf("emit: live_in.bin: %w", err)
	}
	if err := writeWordBlob(filepath.Join(dir, "kernel.bin"), kernel); err != nil {
		return Descriptor{}, fmt.Errorf("emit: kernel.bin: %w", err)
	}
	if err := writeInt32BlobWithTrailer(filepath.Join(dir, "iter.bin"), iterVals, maxIter); err != nil {
		return Descriptor{}, fmt.Errorf("emit: iter.bin: %w", err)
	}
	if err := writeWordBlob(filepath.Join(dir, "live_out.bin"), liveOut); err != nil {
		return Descriptor{}, fmt.Errorf("emit: live_out.bin: %w", err)
	}

	desc := Descriptor{
		LiveInLen:      len(liveIn),
		II:             prog.II,
		LiveOutLen:     len(liveOut),
		IterationCount: len(iterVals),
	}
	// A single flat instruction memory laid out live-in, kernel,
	// iteration, live-out in that order; each base PC is the running
	// prefix sum of the preceding segments' word counts. spec.md §9
	// leaves the original's exact PC-binding convention undocumented,
	// so this is a deliberate, simple choice rather than a derived one.
	desc.LiveInBasePC = 0
	desc.KernelBasePC = desc.LiveInBasePC + desc.LiveInLen
	desc.IterationBasePC = desc.KernelBasePC + len(kernel)
	desc.LiveOutBasePC = desc.IterationBasePC + desc.IterationCount

	if err := writeDescriptor(filepath.Join(dir, "initCGRA.txt"), desc); err != nil {
		return Descriptor{}, fmt.Errorf("emit: initCGRA.txt: %w", err)
	}
	return desc, nil
}

// flattenKernel lays out prog.Kernel's (t, x, y) grid into the
// row-major (true, false, prologue) triple stream kernel.bin stores
// (spec §6).
func flattenKernel(prog *instr.Program) []instr.Word {
	words := make([]instr.Word, 0, prog.X*prog.Y*prog.II*3)
	for t := 0; t < prog.II; t++ {
		for x := 0; x < prog.X; x++ {
			for y := 0; y < prog.Y; y++ {
				tri := prog.Kernel[t][x][y]
				words = append(words, tri.True, tri.False, tri.Prologue)
			}
		}
	}
	return words
}

// flattenIter lays out prog.IterIdx's (t, x, y) grid in the same
// row-major order as flattenKernel, returning it alongside the
// trailing max_iter value (spec §6).
func flattenIter(prog *instr.Program) ([]int32, int32) {
	vals := make([]int32, 0, prog.X*prog.Y*prog.II)
	for t := 0; t < prog.II; t++ {
		for x := 0; x < prog.X; x++ {
			for y := 0; y < prog.Y; y++ {
				vals = append(vals, prog.IterIdx[t][x][y])
			}
		}
	}
	return vals, prog.MaxIter
}

func writeDescriptor(path string, d Descriptor) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return ferr
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = fmt.Fprintf(f, "%d\n%d\n%d\n%d\n%d\n%d\n%d\n%d\n",
		d.LiveInLen, d.II, d.LiveOutLen, d.IterationCount,
		d.LiveInBasePC, d.KernelBasePC, d.IterationBasePC, d.LiveOutBasePC)
	return err
}
