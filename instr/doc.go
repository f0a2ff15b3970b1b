// Package instr encodes placed DFG nodes into fixed-layout 64-bit
// microinstructions (spec §4.7, §6's bit layout table): one of three
// variants — regular, predicate (P-type), and condition (C-type) — per
// (time, x, y, path) slot, plus the live-in/live-out register
// assignment and phi dual-emission (kernel word vs. prologue word)
// those slots require.
//
// Field packing follows the shift-and-mask idiom of
// Maemo32-SupraX_Legacy's DecodeInstruction: every field is a
// (shift, width) pair, packed MSB-first per spec §6's big-endian bit
// numbering. Round-tripping decode(encode(v)) == v is a property the
// package's tests pin directly (spec §8).
package instr
