package nearest

import "errors"

// Sentinel kinds for nearest-match errors.
var (
	ErrNoCandidates = errors.New("no rows with complete metric data")
)
