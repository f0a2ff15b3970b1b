package dfgparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cgra-tc/cgrac/dfg"
)

// writeLoop materializes a minimal single-node noop loop (spec §8
// scenario 1: one add of a live-in and a constant 0, with live-out).
func writeLoop(t *testing.T, dir string) {
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

func TestLoad_SingleNodeLoop(t *testing.T) {
	dir := t.TempDir()
	writeLoop(t, dir)

	d, meta, err := Load(dir, 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	n, err := d.GetNode(0)
	if err != nil {
		t.Fatalf("GetNode(0): %v", err)
	}
	if n.Op != dfg.OpAdd {
		t.Fatalf("node 0 op = %v, want ADD", n.Op)
	}
	if !n.LiveIn || !n.LiveOut {
		t.Fatalf("node 0 LiveIn=%v LiveOut=%v, want both true", n.LiveIn, n.LiveOut)
	}
	if !d.IsConstant(1) {
		t.Fatalf("node 1 should be constant")
	}
	if meta.LoopExitNode != 2 {
		t.Fatalf("LoopExitNode = %d, want 2", meta.LoopExitNode)
	}
	lcNode, err := d.GetNode(2)
	if err != nil {
		t.Fatalf("GetNode(2): %v", err)
	}
	if !lcNode.LoopControl {
		t.Fatalf("node 2 should be marked loop-control")
	}
}

func TestLoad_UnknownOpKind(t *testing.T) {
	dir := t.TempDir()
	writeLoop(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "node.sch"), []byte("0 BOGUS a 0 int32 none -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(dir, 3); err == nil {
		t.Fatal("expected error for unknown op kind")
	}
}
