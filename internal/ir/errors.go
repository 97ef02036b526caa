package ir

import "errors"

// Domain-specific errors for store operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrStoreFull is returned when upserting a new name into a store
	// that already holds Capacity entries. The store is left unchanged.
	ErrStoreFull = errors.New("ir: code store full")

	// ErrNotFound is returned when a named code is not in the store.
	ErrNotFound = errors.New("ir: code not found")

	// ErrEmptyName is returned when a code with an empty name is upserted.
	ErrEmptyName = errors.New("ir: code name cannot be empty")
)
