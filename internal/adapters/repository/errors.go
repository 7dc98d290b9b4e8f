package repository

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrLoad              = errors.New("load dataset failed")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrEmptyTable        = errors.New("dataset has no header row")
)
