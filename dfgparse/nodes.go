// File: nodes.go
// Role: node.sch parsing (spec §4.2: "id op_kind name alignment datatype
// path cond_branch_id").
package dfgparse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cgra-tc/cgrac/dfg"
)

const nodeFieldCount = 7

// parseNodes reads node.sch from r and inserts every node into d.
func parseNodes(file string, r io.Reader, d *dfg.DFG) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != nodeFieldCount {
			return parseErr(file, lineNo, fmt.Errorf("got %d fields, want %d: %w", len(fields), nodeFieldCount, ErrMalformedLine))
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return parseErr(file, lineNo, fmt.Errorf("id: %w", ErrMalformedLine))
		}
		op, err := parseOpKind(fields[1])
		if err != nil {
			return parseErr(file, lineNo, err)
		}
		name := fields[2]
		alignment, err := strconv.Atoi(fields[3])
		if err != nil {
			return parseErr(file, lineNo, fmt.Errorf("alignment: %w", ErrMalformedLine))
		}
		dtype, err := parseDataType(fields[4])
		if err != nil {
			return parseErr(file, lineNo, err)
		}
		path := parsePathTag(fields[5])
		condBranchID, err := strconv.Atoi(fields[6])
		if err != nil {
			return parseErr(file, lineNo, fmt.Errorf("cond_branch_id: %w", ErrMalformedLine))
		}

		n := dfg.NewNode(id, op)
		n.Name = name
		n.Alignment = alignment
		n.Type = dtype
		n.Path = path
		n.CondBranchID = condBranchID
		if op == dfg.OpStoreAddr {
			n.Latency = 0
		}
		if op == dfg.OpConst {
			// node.sch has no dedicated literal column (spec §4.2); a
			// constant's name field carries its decimal value.
			v, err := strconv.ParseInt(name, 10, 64)
			if err != nil {
				return parseErr(file, lineNo, fmt.Errorf("const name %q is not a decimal literal: %w", name, ErrMalformedLine))
			}
			n.ConstValue = v
		}

		if err := d.InsertNode(n); err != nil {
			return parseErr(file, lineNo, err)
		}
	}
	return sc.Err()
}
