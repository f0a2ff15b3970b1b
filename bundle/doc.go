// Package bundle archives one loop's five compiled output files into a
// single cpio stream for the out-of-scope runtime upload stub to
// consume (spec.md §1's non-goal list names the stub itself out of
// scope, not the artifact it would read). Grounded on
// distr1-distri/cmd/distri/initrd.go's cpio.Writer usage: a flat
// archive of regular files, headers built from each file's real size
// and mode rather than synthesized metadata.
package bundle
