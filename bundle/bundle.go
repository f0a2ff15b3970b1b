package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cavaliercoder/go-cpio"
)

// artifacts lists the five files emit.Emit leaves in a loop directory,
// in the archive order the runtime upload stub expects them (spec.md
// §6: live-in, kernel, iteration, live-out binaries, plus the PC
// descriptor that binds them together).
var artifacts = []string{
	"live_in.bin",
	"kernel.bin",
	"iter.bin",
	"live_out.bin",
	"initCGRA.txt",
}

// Pack archives dir's five compiled output files into a cpio stream
// written to archivePath, named by their bare filename (no directory
// component) so the runtime upload stub can extract them flat.
func Pack(dir, archivePath string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("bundle: create %s: %w", archivePath, err)
	}
	defer out.Close()

	wr := cpio.NewWriter(out)
	for _, name := range artifacts {
		if err := copyFile(wr, dir, name); err != nil {
			return err
		}
	}
	return wr.Close()
}

func copyFile(wr *cpio.Writer, dir, name string) error {
	fn := filepath.Join(dir, name)
	st, err := os.Stat(fn)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrMissingArtifact, name)
	}
	if err != nil {
		return fmt.Errorf("bundle: stat %s: %w", fn, err)
	}
	f, err := os.Open(fn)
	if err != nil {
		return fmt.Errorf("bundle: open %s: %w", fn, err)
	}
	defer f.Close()

	if err := wr.WriteHeader(&cpio.Header{
		Name: name,
		Mode: cpio.FileMode(st.Mode().Perm()),
		Size: st.Size(),
	}); err != nil {
		return fmt.Errorf("bundle: header %s: %w", name, err)
	}
	if _, err := io.Copy(wr, f); err != nil {
		return fmt.Errorf("bundle: copy %s: %w", name, err)
	}
	return nil
}
