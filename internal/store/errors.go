package store

import "errors"

// Sentinel errors for engine failures, so handlers can map them to HTTP
// statuses with errors.Is. Lookups that simply miss return (nil, nil)
// instead; these cover mutations that must fail loudly.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidStatus     = errors.New("invalid transaction status")
)
