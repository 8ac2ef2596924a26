package alloc

import "errors"

var (
	// ErrInvalidSize indicates a request for zero or a negative number of bytes.
	ErrInvalidSize = errors.New("alloc: invalid size")

	// ErrOverflow indicates a request so large that adding header overhead overflows.
	ErrOverflow = errors.New("alloc: size overflows header arithmetic")

	// ErrOutOfMemory indicates the OS refused to map a zone or a large block.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrNotOwned indicates a pointer that is not a live allocation of this allocator.
	ErrNotOwned = errors.New("alloc: pointer not owned by allocator")

	// ErrInvalidConfig indicates a configuration the zone sizing policy cannot honor.
	ErrInvalidConfig = errors.New("alloc: invalid config")

	// ErrCorrupt indicates a violated zone or block invariant found by Verify.
	ErrCorrupt = errors.New("alloc: heap corrupt")
)
