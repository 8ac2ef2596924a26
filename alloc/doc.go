// Package alloc implements a zone-based dynamic memory allocator with
// malloc/free/realloc semantics over anonymous OS mappings.
//
// # Overview
//
// Requests are rounded up to 16 bytes and split into three size classes:
//
//	TINY  : aligned size <= 512 bytes, served from tiny zones
//	SMALL : aligned size <= 4096 bytes, served from small zones
//	LARGE : anything bigger, one dedicated mapping per allocation
//
// A zone is a single mapping sized to hold at least Config.MinBlocksPerZone
// blocks of its class's largest payload. It starts with one free block
// spanning the whole usable region and is carved up on demand.
//
// # Memory layout
//
// Every payload is preceded by a block header; every zone starts with a zone
// header. Both live inside the mapping itself and are linked by raw
// addresses:
//
//	zone base
//	+--------------+--------+---------+--------+---------+-----+
//	| zone header  | header | payload | header | payload | ... |
//	+--------------+--------+---------+--------+---------+-----+
//	               ^ FirstBlock                              ^ TotalSize
//
// The block chain of a zone is ordered by address and covers the region
// after the zone header without gaps. Large mappings hold a single header and
// its payload, and are linked into their own list.
//
// # Allocation
//
// Alloc searches the zones of the request's class in list order (newest
// zone first) and, within a zone, the block chain in address order, taking
// the first free block that fits. A block is split when the remainder can
// hold a header plus 16 bytes of payload. When nothing fits a new zone is
// mapped and the request is served from it.
//
// # Free and reclamation
//
// Free merges the block with a free predecessor and then with a free
// successor. When that leaves a zone with a single free block spanning its
// whole usable region, the zone is unmapped right away. Large blocks are
// unmapped on free. Pointers the allocator does not own are ignored.
//
// # Realloc
//
// Large blocks always move. Zone blocks grow in place by absorbing a free
// successor, shrink in place by splitting off their tail, and move
// otherwise.
//
// # Thread Safety
//
// Every exported method of Allocator takes the allocator's mutex for its
// whole duration, including any mmap/munmap it performs. Internal helpers
// never lock, so Realloc can compose Alloc and Free without re-entering it.
//
// # Related Packages
//
//   - github.com/joshuapare/zonemalloc/pkg/malloc: process-wide entry points
//   - github.com/joshuapare/zonemalloc/internal/layout: header layouts and sizing policy
//   - github.com/joshuapare/zonemalloc/internal/mmap: OS mappings
package alloc
