// Package schedule assigns each DFG node an integer cycle: ASAP and
// ALAP give unconstrained bounds, the resource-feasible variants
// respect PE and memory-bus capacity, and the modulo scheduler
// combines both to find a per-node cycle within a given initiation
// interval (spec §4.4). It never mutates the DFG; results are returned
// in an auxiliary Schedule keyed by node id, following
// lvlath/dijkstra's runner-struct-plus-functional-result convention.
package schedule
