// Package dfgparse parses the textual per-loop input files of spec §6
// (node.sch, edge.sch, control_node.txt, livein_node.txt,
// liveout_node.txt) into a *dfg.DFG, attaching live-in/live-out and
// loop-control metadata as it goes (spec §4.2).
//
// Parsing is fail-fast: the first malformed line aborts with a
// *ParseError naming the file and line number, per spec §7's "Input
// error" class — there is no partial-DFG recovery.
package dfgparse
