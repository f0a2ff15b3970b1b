// Package dfg defines the dataflow-graph model at the center of the CGRA
// compile pipeline: Node, Arc, and the DFG container that owns them.
//
// A DFG is built once per loop by package dfgparse, mutated in place by
// package transform (fan-in/out capping, inter-iteration routing, path
// splitting/merging), then treated as read-only from package schedule
// onward. Placement and scheduling results are never written back into
// the DFG itself — they live in auxiliary structures keyed by node ID,
// so a DFG snapshot always reflects pure dataflow, never a particular
// attempt's schedule.
//
// Nodes and arcs are addressed by dense integer IDs assigned by the DFG
// that owns them; there are no pointer back-references between nodes,
// so predecessor/successor queries walk the arc set directly.
package dfg
