// File: edges.go
// Role: edge.sch parsing and arc-kind dispatch (spec §4.2: "from_id
// to_id distance edge_tag operand_order").
package dfgparse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cgra-tc/cgrac/dfg"
)

const edgeFieldCount = 5

// constArc records an operand-order-only reference to a constant,
// per spec §4.2: "Any arc where either endpoint is in the constants
// set is recorded in the const_arcs table (operand-order only) and
// does not create a Node arc."
type constArc struct {
	From, To     int
	OperandOrder int
}

// parseEdges reads edge.sch from r, creating arcs in d and returning
// the const_arcs table.
func parseEdges(file string, r io.Reader, d *dfg.DFG) ([]constArc, error) {
	var constArcs []constArc

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != edgeFieldCount {
			return nil, parseErr(file, lineNo, fmt.Errorf("got %d fields, want %d: %w", len(fields), edgeFieldCount, ErrMalformedLine))
		}

		from, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, parseErr(file, lineNo, fmt.Errorf("from: %w", ErrMalformedLine))
		}
		to, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, parseErr(file, lineNo, fmt.Errorf("to: %w", ErrMalformedLine))
		}
		distance, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, parseErr(file, lineNo, fmt.Errorf("distance: %w", ErrMalformedLine))
		}
		if distance < 0 {
			return nil, parseErr(file, lineNo, ErrNegativeDistance)
		}
		tag, err := parseEdgeTag(fields[3])
		if err != nil {
			return nil, parseErr(file, lineNo, err)
		}
		operandOrder, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, parseErr(file, lineNo, fmt.Errorf("operand_order: %w", ErrMalformedLine))
		}
		if operandOrder < 0 || operandOrder > 2 {
			return nil, parseErr(file, lineNo, ErrBadOperandOrder)
		}

		if d.IsConstant(from) || d.IsConstant(to) {
			constArcs = append(constArcs, constArc{From: from, To: to, OperandOrder: operandOrder})
			continue
		}

		fn, err := d.GetNode(from)
		if err != nil {
			return nil, parseErr(file, lineNo, fmt.Errorf("from=%d: %w", from, ErrMissingEndpoint))
		}
		tn, err := d.GetNode(to)
		if err != nil {
			return nil, parseErr(file, lineNo, fmt.Errorf("to=%d: %w", to, ErrMissingEndpoint))
		}

		path := dfg.PathNone
		if fn.Path != dfg.PathNone {
			path = fn.Path
		} else if tn.Path != dfg.PathNone {
			path = tn.Path
		}

		switch tag {
		case tagTRU:
			if _, err := d.MakeArc(from, to, distance, dfg.TrueDep, operandOrder, path); err != nil {
				return nil, parseErr(file, lineNo, err)
			}
		case tagPRE:
			if _, err := d.MakeArc(from, to, distance, dfg.PredDep, operandOrder, path); err != nil {
				return nil, parseErr(file, lineNo, err)
			}
		case tagMEM:
			if _, err := d.MakeArc(from, to, distance, dfg.MemoryDep, operandOrder, path); err != nil {
				return nil, parseErr(file, lineNo, err)
			}
		case tagLRE:
			fn.MemRole = dfg.MemRoleLoadAddr
			tn.MemRole = dfg.MemRoleLoadData
			fn.MemPeer = tn.ID
			tn.MemPeer = fn.ID
			if _, err := d.MakeArc(from, to, 0, dfg.LoadDep, operandOrder, path); err != nil {
				return nil, parseErr(file, lineNo, err)
			}
		case tagSRE:
			fn.MemRole = dfg.MemRoleStoreAddr
			tn.MemRole = dfg.MemRoleStoreData
			fn.MemPeer = tn.ID
			tn.MemPeer = fn.ID
			if _, err := d.MakeArc(from, to, 0, dfg.StoreDep, operandOrder, path); err != nil {
				return nil, parseErr(file, lineNo, err)
			}
		case tagLCE:
			fn.LoopControl = true
			tn.LiveOut = true
			// No arc is stored for LCE (spec §4.2).
		case tagLIV:
			dep := dfg.LiveInDataDep
			if tn.LiveOut {
				dep = dfg.LiveOutDataDep
			} else if fn.LiveIn {
				dep = dfg.LiveInDataDep
			}
			if _, err := d.MakeArc(from, to, distance, dep, operandOrder, path); err != nil {
				return nil, parseErr(file, lineNo, err)
			}
		}
	}
	return constArcs, sc.Err()
}
