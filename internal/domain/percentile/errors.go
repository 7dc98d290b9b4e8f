package percentile

import "errors"

// Sentinel kinds for percentile errors.
var (
	ErrInvalidGroup = errors.New("percentile requested against an empty group")
)
