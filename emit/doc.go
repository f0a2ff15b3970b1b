// Package emit serializes a generated instruction Program to the four
// binary blobs and textual descriptor a CGRA boot-loader consumes
// (spec §4.8, §6): `live_in.bin`, `kernel.bin`, `iter.bin`,
// `live_out.bin`, `initCGRA.txt`.
//
// Every blob is a little-endian, count-prefixed flat instruction
// stream, written through a scoped *os.File acquisition that
// guarantees Close on every path — the same idiom
// `distr1-distri/internal/squashfs/writer.go` uses around its own
// *os.File/io.WriteSeeker, generalized from a filesystem image to a
// handful of flat binary records.
package emit
