// File: writer.go
// Role: little-endian, count-prefixed binary blob writing (spec §6's
// "every blob is prefixed with a little-endian u32 instruction count").
package emit

import (
	"bufio"
	"encoding/binary"
	"os"

	"github.com/cgra-tc/cgrac/instr"
)

// writeWordBlob writes a u32 count followed by count little-endian
// u64 words to path, via a scoped *os.File acquisition that closes on
// every return path.
func writeWordBlob(path string, words []instr.Word) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return ferr
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err = binary.Write(w, binary.LittleEndian, uint32(len(words))); err != nil {
		return err
	}
	raw := make([]uint64, len(words))
	for i, word := range words {
		raw[i] = uint64(word)
	}
	if err = binary.Write(w, binary.LittleEndian, raw); err != nil {
		return err
	}
	return w.Flush()
}

// writeInt32BlobWithTrailer writes a u32 count of len(values) followed
// by that many little-endian i32 values, then trailer appended as
// additional i32 words that fall outside the counted region (the
// `iter.bin` layout: count = X·Y·II iteration indices, then one
// uncounted trailing max_iter word).
func writeInt32BlobWithTrailer(path string, values []int32, trailer ...int32) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return ferr
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if err = binary.Write(w, binary.LittleEndian, uint32(len(values))); err != nil {
		return err
	}
	if err = binary.Write(w, binary.LittleEndian, values); err != nil {
		return err
	}
	if err = binary.Write(w, binary.LittleEndian, trailer); err != nil {
		return err
	}
	return w.Flush()
}
