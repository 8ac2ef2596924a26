//go:build unix

// Package mmap provides the thin OS layer the allocator maps its zones and
// large blocks through: anonymous private read/write mappings addressed by
// their base address.
package mmap

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Map returns the base address of a fresh zero-filled anonymous mapping of
// size bytes.
func Map(size int) (uintptr, error) {
	if size <= 0 {
		return 0, fmt.Errorf("mmap: invalid mapping size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return 0, fmt.Errorf("mmap: map %d bytes: %w", size, err)
	}
	return uintptr(unsafe.Pointer(&data[0])), nil
}

// Unmap releases a mapping previously returned by Map. size must be the size
// passed to Map.
func Unmap(base uintptr, size int) error {
	if base == 0 || size <= 0 {
		return nil
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(base)), size)
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Not a live mapping of this exact extent; nothing to release.
		return nil
	}
	if err != nil {
		return fmt.Errorf("mmap: unmap %d bytes at %#x: %w", size, base, err)
	}
	return nil
}

// PageSize returns the OS page size in bytes.
func PageSize() int {
	return unix.Getpagesize()
}
