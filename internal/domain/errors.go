package domain

import "errors"

var (
	// ErrInvalidInput marks requests rejected before any write.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPrecondition marks operations whose required state is missing.
	ErrPrecondition = errors.New("precondition not met")
	// ErrNotFound marks lookups of a row that does not exist.
	ErrNotFound = errors.New("not found")
)
