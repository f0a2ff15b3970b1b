// Package transform mutates a *dfg.DFG in place through the six stages
// of spec §4.3, applied in order: (a) in-degree check, (b) inter-
// iteration routing insertion, (c) out-degree capping, (d) path
// splitting, (e) path padding, (f) cross-path node merging.
//
// Stages (d)-(f) only act on DFGs with PathCount == 2 (a loop with
// exactly one conditional split); on single-path DFGs they are no-ops,
// since there are no path-tagged arcs for them to act on.
//
// Randomness (stage (c)'s "randomly chosen excess successors") is
// drawn from a caller-supplied *rand.Rand, following
// lvlath/builder/impl_random_regular.go's pattern of validating before
// mutating and keeping all stochastic choices behind one seeded
// source.
package transform
