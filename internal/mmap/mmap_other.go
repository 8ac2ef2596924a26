//go:build !unix

package mmap

import (
	"errors"
	"os"
)

// ErrUnsupported is returned by Map on platforms without anonymous mappings.
var ErrUnsupported = errors.New("mmap: anonymous mappings not supported on this platform")

// Map always fails; the allocator reports it as out of memory.
func Map(size int) (uintptr, error) {
	return 0, ErrUnsupported
}

// Unmap is a no-op since Map never succeeds.
func Unmap(base uintptr, size int) error {
	return nil
}

// PageSize returns the OS page size in bytes.
func PageSize() int {
	return os.Getpagesize()
}
