package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrConfig       = errors.New("invalid configuration")
	ErrNetwork      = errors.New("network failure")
	ErrIO           = errors.New("io failure")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)
