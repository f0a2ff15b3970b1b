// Package config centralizes the tunable limits and CLI-facing
// parameters threaded through the CGRA compile pipeline: grid
// dimensions, retry ladders, fan-in/out caps, and the single seeded
// PRNG (spec §5, §6).
//
// Config mirrors lvlath/builder's functional-options shape
// (builderConfig + BuilderOption), but since every pipeline stage
// needs the same handful of fields, Config is a plain struct with a
// constructor applying defaults, rather than an options slice per call
// site.
package config
