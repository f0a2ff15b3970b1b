package transform

import "errors"

// ErrExceedingInDegree is returned by CheckInDegree when a node's
// true-dependency in-degree, on some path, exceeds MAX_IN_DEGREE. Per
// spec §4.3(a) this is fatal: the transformer does not auto-split.
var ErrExceedingInDegree = errors.New("transform: exceeding in-degree")
