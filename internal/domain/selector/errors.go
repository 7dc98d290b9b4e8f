package selector

import "errors"

// Sentinel kinds for selection errors.
var (
	ErrPlayerNotFound = errors.New("player not found")
)
