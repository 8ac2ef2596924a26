/*
Package malloc exposes a process-wide zone allocator through C-style entry
points.

# Quick Start

	p := malloc.Malloc(256)
	if p == nil {
	    // invalid size or out of memory
	}
	buf := malloc.Bytes(p, 256)
	copy(buf, "hello")
	p = malloc.Realloc(p, 1024)
	malloc.Free(p)

Memory returned by Malloc and Realloc lives in anonymous OS mappings outside
the Go heap. The garbage collector neither scans nor moves it, so it must
not hold the only reference to a Go object, and it must be released with
Free.

# Semantics

  - Malloc(n) returns a 16-byte aligned pointer, or nil for n <= 0,
    overflowing sizes and mapping failures.
  - Free(nil) and Free of a pointer this package did not return do nothing.
  - Realloc(nil, n) is Malloc(n). Realloc(p, 0) is Free(p) and returns nil.
    On failure Realloc returns nil and p stays valid.
  - ShowAllocMem prints every allocated block to stdout.

# Configuration

The allocator is created on first use from the environment:

	ZONEMALLOC_MIN_BLOCKS_PER_ZONE  blocks each zone must hold (default 100)
	ZONEMALLOC_LOG_ALLOC            enable zone lifecycle logging
	ZONEMALLOC_LOG_LEVEL            debug, info, warn or error
	ZONEMALLOC_LOG_FORMAT           json for JSON output

Programs that need several independent heaps, or custom mappers, should use
package alloc directly.
*/
package malloc
