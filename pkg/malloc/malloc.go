package malloc

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/joshuapare/zonemalloc/alloc"
	"github.com/joshuapare/zonemalloc/internal/logger"
)

var (
	once sync.Once
	heap *alloc.Allocator
)

// Default returns the process-wide allocator, creating it on first use.
func Default() *alloc.Allocator {
	once.Do(func() {
		logger.FromEnv()
		cfg, err := alloc.ConfigFromEnv()
		if err != nil {
			logger.Warn("ignoring allocator environment", "err", err)
			cfg = alloc.DefaultConfig
		}
		a, err := alloc.New(&cfg)
		if err != nil {
			panic(fmt.Sprintf("malloc: %v", err))
		}
		heap = a
	})
	return heap
}

// Malloc allocates size bytes and returns nil on failure.
func Malloc(size int) unsafe.Pointer {
	p, err := Default().Alloc(size)
	if err != nil {
		logger.Debug("malloc failed", "size", size, "err", err)
		return nil
	}
	return p
}

// Free releases p. Nil and unknown pointers are ignored.
func Free(p unsafe.Pointer) {
	Default().Free(p)
}

// Realloc resizes p to size bytes and returns nil on failure, in which case
// p is left untouched. See package documentation for the nil and zero
// cases.
func Realloc(p unsafe.Pointer, size int) unsafe.Pointer {
	np, err := Default().Realloc(p, size)
	if err != nil {
		logger.Debug("realloc failed", "size", size, "err", err)
		return nil
	}
	return np
}

// ShowAllocMem prints the allocated blocks of every class to stdout.
func ShowAllocMem() {
	if err := Default().ShowAllocMem(os.Stdout); err != nil {
		logger.Warn("dump failed", "err", err)
	}
}

// Bytes views n bytes at p as a slice. The slice is only valid until p is
// freed or moved by Realloc.
func Bytes(p unsafe.Pointer, n int) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// Reset unmaps every zone and large block of the process-wide allocator.
// Every pointer handed out before is invalid afterwards. It exists for
// tests that need a clean heap.
func Reset() error {
	return Default().Reset()
}
