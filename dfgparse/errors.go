// SPDX thanks: sentinel-error policy follows lvlath/builder/errors.go —
// only package-level sentinels are exposed; callers branch with errors.Is.
package dfgparse

import (
	"errors"
	"fmt"
)

// ErrUnknownOpKind indicates a node.sch line named an op not in OpKind's
// vocabulary (spec §7: "unknown op kind").
var ErrUnknownOpKind = errors.New("dfgparse: unknown op kind")

// ErrUnknownDataType indicates an unrecognized datatype token.
var ErrUnknownDataType = errors.New("dfgparse: unknown datatype")

// ErrUnknownEdgeTag indicates an edge.sch line used a tag outside
// {TRU,PRE,LRE,SRE,MEM,LCE,LIV}.
var ErrUnknownEdgeTag = errors.New("dfgparse: unknown edge tag")

// ErrMissingEndpoint indicates an edge referenced a node ID absent from
// node.sch (spec §7: "absent endpoints").
var ErrMissingEndpoint = errors.New("dfgparse: arc endpoint not found")

// ErrNegativeDistance indicates distance < 0 on an edge.sch line.
var ErrNegativeDistance = errors.New("dfgparse: distance must be non-negative")

// ErrBadOperandOrder indicates operand_order outside {0,1,2}.
var ErrBadOperandOrder = errors.New("dfgparse: operand_order must be 0, 1, or 2")

// ErrMalformedLine indicates a line had the wrong number of fields.
var ErrMalformedLine = errors.New("dfgparse: malformed line")

// ErrExcessFanIn indicates a node's operand count (true+pred, per path)
// exceeds the PE fan-in limit (spec §3 invariant, rejected here rather
// than in transform since the limit is a parse-time structural check on
// raw operand_order usage).
var ErrExcessFanIn = errors.New("dfgparse: node exceeds fan-in limit")

// ParseError names the file and 1-based line number of a parse failure,
// wrapping the underlying sentinel so errors.Is still matches it.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(file string, line int, err error) error {
	return &ParseError{File: file, Line: line, Err: err}
}
