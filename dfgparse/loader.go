// File: loader.go
// Role: top-level Load entry point: reads the five per-loop input
// files from a directory (spec §6) in the order node.sch →
// livein_node.txt → liveout_node.txt → control_node.txt → edge.sch,
// since LIV edges classify as live-in/out by consulting node flags
// that only the live file passes establish.
package dfgparse

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cgra-tc/cgrac/dfg"
)

// Load parses the node.sch/edge.sch/control_node.txt/livein_node.txt/
// liveout_node.txt files under dir into a *dfg.DFG plus Meta, and
// rejects any node whose true+pred in-degree (per path) exceeds
// maxInDegree (spec §3 invariant, enforced here per spec §4.2: "builder
// rejects excess fan-in").
func Load(dir string, maxInDegree int) (*dfg.DFG, *Meta, error) {
	d := dfg.New()

	if err := parseFile(filepath.Join(dir, "node.sch"), func(f *os.File) error {
		return parseNodes("node.sch", f, d)
	}); err != nil {
		return nil, nil, err
	}

	liveIns, err := parseFileT(filepath.Join(dir, "livein_node.txt"), func(f *os.File) ([]LiveSpec, error) {
		return parseLiveSpecs("livein_node.txt", f)
	})
	if err != nil {
		return nil, nil, err
	}
	for _, ls := range liveIns {
		n, err := d.GetNode(ls.NodeID)
		if err != nil {
			return nil, nil, fmt.Errorf("livein_node.txt: node %d: %w", ls.NodeID, err)
		}
		n.LiveIn = true
		if n.Name == "" {
			n.Name = ls.Name
		}
	}

	liveOuts, err := parseFileT(filepath.Join(dir, "liveout_node.txt"), func(f *os.File) ([]LiveSpec, error) {
		return parseLiveSpecs("liveout_node.txt", f)
	})
	if err != nil {
		return nil, nil, err
	}
	for _, ls := range liveOuts {
		n, err := d.GetNode(ls.NodeID)
		if err != nil {
			return nil, nil, fmt.Errorf("liveout_node.txt: node %d: %w", ls.NodeID, err)
		}
		n.LiveOut = true
		if n.Name == "" {
			n.Name = ls.Name
		}
	}

	control, err := parseFileT(filepath.Join(dir, "control_node.txt"), func(f *os.File) ([3]int, error) {
		en, ed, sb, err := parseControlNode("control_node.txt", f)
		return [3]int{en, ed, sb}, err
	})
	if err != nil {
		return nil, nil, err
	}
	meta := &Meta{
		LiveIns:      liveIns,
		LiveOuts:     liveOuts,
		LoopExitNode: control[0],
		ExitDir:      control[1],
		SplitBranch:  control[2],
	}
	if n, err := d.GetNode(meta.LoopExitNode); err == nil {
		n.LoopExit = true
		n.ExitDir = meta.ExitDir
	}
	if meta.SplitBranch >= 0 {
		n, err := d.GetNode(meta.SplitBranch)
		if err != nil {
			return nil, nil, fmt.Errorf("control_node.txt: split branch %d: %w", meta.SplitBranch, err)
		}
		n.SplitCond = true
		if err := d.MarkSplitCondition(meta.SplitBranch); err != nil {
			return nil, nil, err
		}
		d.PathCount = 2
	}

	if err := parseFile(filepath.Join(dir, "edge.sch"), func(f *os.File) error {
		_, err := parseEdges("edge.sch", f, d)
		return err
	}); err != nil {
		return nil, nil, err
	}

	if err := checkFanIn(d, maxInDegree); err != nil {
		return nil, nil, err
	}

	return d, meta, nil
}

func parseFile(path string, fn func(*os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}

func parseFileT[T any](path string, fn func(*os.File) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}

// checkFanIn rejects any node whose true+pred predecessor count, on
// either path, exceeds maxInDegree (spec §3, §4.2).
func checkFanIn(d *dfg.DFG, maxInDegree int) error {
	for _, nid := range d.Nodes() {
		counts := map[dfg.PathTag]int{}
		for _, a := range d.DataPredecessors(nid) {
			counts[a.Path]++
		}
		for path, c := range counts {
			if c > maxInDegree {
				return fmt.Errorf("node %d exceeds fan-in limit on path %s (%d > %d): %w", nid, path, c, maxInDegree, ErrExcessFanIn)
			}
		}
	}
	return nil
}
