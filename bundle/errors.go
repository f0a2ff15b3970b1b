package bundle

import "errors"

// ErrMissingArtifact indicates one of the five required output files
// was not found in the loop directory being packaged.
var ErrMissingArtifact = errors.New("bundle: missing compiled artifact")
