// Package route inserts relay ("route") operations after modulo
// scheduling succeeds, closing the gap between a producer's ready
// cycle and a consumer's need cycle so every inter-PE hop the placer
// later lays out corresponds to one scheduled cycle of travel (spec
// §4.5). It mutates the DFG (new route nodes/arcs) and extends the
// Schedule it is given; on resource exhaustion it returns
// ErrRouteInsertionFailed, possibly after partially mutating both, so
// the caller retries modulo scheduling from a fresh DFG (spec §4.4, §7).
package route
