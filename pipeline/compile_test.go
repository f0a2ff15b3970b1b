package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cgra-tc/cgrac/config"
)

// writeNoopLoop materializes spec §8 scenario 1's single-node noop
// loop: one add of a live-in and a constant 0, with live-out (same
// five-file layout dfgparse.Load expects).
func writeNoopLoop(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"node.sch": "" +
			"0 ADD a 0 int32 none -1\n" +
			"1 CONST 0 0 int32 none -1\n" +
			"2 LOOP_CONTROL lc 0 int32 none -1\n",
		"edge.sch": "" +
			"1 0 0 TRU 1\n" +
			"2 0 0 LCE 0\n",
		"control_node.txt": "2\n0\n-1\n",
		"livein_node.txt":  "0 a int32\n",
		"liveout_node.txt": "0 a int32\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestCompile_SingleNodeNoopLoop(t *testing.T) {
	inDir := t.TempDir()
	writeNoopLoop(t, inDir)
	outDir := t.TempDir()

	cfg := config.New(4, 4)
	cfg.Seed = 1

	result, err := Compile(inDir, outDir, cfg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.II != 1 {
		t.Fatalf("II = %d, want 1 (spec §8 scenario 1)", result.II)
	}
	if result.Desc.II != 1 {
		t.Fatalf("descriptor.II = %d, want 1", result.Desc.II)
	}

	for _, name := range []string{"live_in.bin", "kernel.bin", "iter.bin", "live_out.bin", "initCGRA.txt"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing output %s: %v", name, err)
		}
	}
}

func TestCompile_UnknownOpKindIsFatal(t *testing.T) {
	inDir := t.TempDir()
	writeNoopLoop(t, inDir)
	if err := os.WriteFile(filepath.Join(inDir, "node.sch"), []byte("0 BOGUS a 0 int32 none -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := t.TempDir()

	cfg := config.New(4, 4)
	cfg.Seed = 1
	if _, err := Compile(inDir, outDir, cfg); err == nil {
		t.Fatal("expected a fatal builder error for an unknown op kind")
	}
}
