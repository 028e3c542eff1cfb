package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidFilter = errors.New("invalid filter value")
	ErrUnknownList   = errors.New("unknown list")
	ErrOutOfRange    = errors.New("index out of range")
	ErrMissingKey    = errors.New("missing api credentials")
)
