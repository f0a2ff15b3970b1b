// File: meta.go
// Role: control_node.txt / livein_node.txt / liveout_node.txt parsing
// (spec §6) and the Meta struct downstream stages consume for loop
// boundary bookkeeping (loop-exit direction, live-in/out ordering for
// register assignment in package instr).
package dfgparse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cgra-tc/cgrac/dfg"
)

// LiveSpec names one live-in or live-out value: the DFG node carrying
// it, its external name, and its datatype (spec §6: "node id + name +
// datatype lists used to resolve live-in/out addresses externally").
type LiveSpec struct {
	NodeID int
	Name   string
	Type   dfg.DataType
}

// Meta carries the loop-boundary metadata attached by dfgparse.Load
// alongside the DFG itself.
type Meta struct {
	LiveIns  []LiveSpec
	LiveOuts []LiveSpec

	LoopExitNode int // -1 if unset
	ExitDir      int // 0 or 1
	SplitBranch  int // -1 if the loop has no conditional split
}

func parseControlNode(file string, r io.Reader) (exitNode, exitDir, splitBranch int, err error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		t := strings.TrimSpace(sc.Text())
		if t == "" {
			continue
		}
		lines = append(lines, t)
	}
	if err := sc.Err(); err != nil {
		return 0, 0, 0, err
	}
	if len(lines) != 3 {
		return 0, 0, 0, parseErr(file, len(lines)+1, fmt.Errorf("got %d non-empty lines, want 3: %w", len(lines), ErrMalformedLine))
	}
	exitNode, e1 := strconv.Atoi(lines[0])
	exitDir, e2 := strconv.Atoi(lines[1])
	splitBranch, e3 := strconv.Atoi(lines[2])
	if e1 != nil || e2 != nil || e3 != nil {
		return 0, 0, 0, parseErr(file, 1, fmt.Errorf("non-integer field: %w", ErrMalformedLine))
	}
	return exitNode, exitDir, splitBranch, nil
}

// parseLiveSpecs reads a livein_node.txt/liveout_node.txt-style file:
// one "id name datatype" triple per line.
func parseLiveSpecs(file string, r io.Reader) ([]LiveSpec, error) {
	var specs []LiveSpec
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, parseErr(file, lineNo, fmt.Errorf("got %d fields, want 3: %w", len(fields), ErrMalformedLine))
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, parseErr(file, lineNo, fmt.Errorf("id: %w", ErrMalformedLine))
		}
		dtype, err := parseDataType(fields[2])
		if err != nil {
			return nil, parseErr(file, lineNo, err)
		}
		specs = append(specs, LiveSpec{NodeID: id, Name: fields[1], Type: dtype})
	}
	return specs, sc.Err()
}
