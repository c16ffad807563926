package table

import "errors"

// Sentinel errors returned by the engine. densemap and denseset re-export
// these directly rather than wrapping them in their own types, matching
// the flat errors.New sentinel style used throughout the retrieval pack's
// CLI tooling (compare errors.go in the task-tracker example): callers are
// expected to compare with errors.Is, never by string.
var (
	// ErrInvalidArgument is returned for a non-positive initial capacity,
	// a max load factor outside (0, 1], or a growth factor <= 1.
	ErrInvalidArgument = errors.New("densehash: invalid argument")
	// ErrCapacityOverflow is returned when an initial or grown capacity
	// would reach or exceed the maximum representable size.
	ErrCapacityOverflow = errors.New("densehash: capacity overflow")
	// ErrNotFound is returned by At when the key is absent.
	ErrNotFound = errors.New("densehash: key not found")
	// ErrAllocatorFailure is returned when the configured allocator
	// refuses a request during construction or rehash.
	ErrAllocatorFailure = errors.New("densehash: allocator failure")
)
