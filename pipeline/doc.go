// Package pipeline orchestrates one loop's compile from input
// directory to output bundle: Builder -> Transformer -> Scheduler ->
// Route Inserter -> (loop back to Scheduler on route failure) ->
// Placer -> (on failure: increase II, restart Scheduler) ->
// Instruction Generator -> Binary Emitter (spec §2, §7).
//
// There is no equivalent orchestrator anywhere in the retrieval
// pack — every pack algorithm is a standalone entry point rather than
// a multi-stage retry ladder — so Compile's control flow is written
// directly from spec §2/§7's prose rather than adapted from a
// specific file. Its verbose-tracing idiom (a Verbose flag guarding a
// fmt.Fprintf to stderr) is grounded on flow/dinic.go's opts.Verbose check.
package pipeline
