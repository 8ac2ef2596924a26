package alloc

import (
	"unsafe"

	"github.com/joshuapare/zonemalloc/internal/layout"
)

// ZoneHeaderSize returns the size of a zone header in bytes.
func ZoneHeaderSize() int { return layout.ZoneHeaderSize() }

// BlockHeaderSize returns the size of a block header in bytes.
func BlockHeaderSize() int { return layout.BlockHeaderSize() }

// PayloadOffset returns the distance from a block header to its payload.
func PayloadOffset() int { return layout.PayloadOffset() }

// Alignment returns the alignment of every payload.
func Alignment() int { return layout.MinAlignment }

// Thresholds returns the largest aligned sizes served as TINY and SMALL.
func Thresholds() (tiny, small int) {
	return layout.TinyMaxBlockSize, layout.SmallMaxBlockSize
}

// ZoneSize returns the mapping size of zones of class c, or 0 for LARGE.
func (a *Allocator) ZoneSize(c Class) int {
	return a.zoneSize(c)
}

// ZoneCount returns the number of zones of class c. For LARGE it counts
// large blocks.
func (a *Allocator) ZoneCount(c Class) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.countLocked(c)
}

func (a *Allocator) countLocked(c Class) int {
	n := 0
	a.eachListEntry(c, func(uintptr) { n++ })
	return n
}

// ZoneBases returns the bases of the zones of class c in list order. For
// LARGE it returns the mapping bases of the large blocks.
func (a *Allocator) ZoneBases(c Class) []uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()
	var bases []uintptr
	a.eachListEntry(c, func(base uintptr) { bases = append(bases, base) })
	return bases
}

func (a *Allocator) eachListEntry(c Class, fn func(uintptr)) {
	if c == ClassLarge {
		for blk := a.g.largeHead; blk != 0; blk = blockAt(blk).Next {
			fn(blk)
		}
		return
	}
	for zone := a.g.head(c); zone != 0; zone = zoneAt(zone).Next {
		fn(zone)
	}
}

// Locate reports the class and zone owning the live allocation p.
// Free blocks, foreign pointers and nil are not found.
func (a *Allocator) Locate(p unsafe.Pointer) (Location, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	blk, zone, ok := a.locate(uintptr(p))
	if !ok {
		return Location{}, false
	}
	h := blockAt(blk)
	if h.Free {
		return Location{}, false
	}
	if zone == 0 {
		return Location{Class: ClassLarge, ZoneBase: h.ZoneBase, Size: int(h.Size)}, true
	}
	return Location{Class: zoneAt(zone).Class, ZoneBase: zone, Size: int(h.Size)}, true
}

// UsableSize returns the payload size backing the live allocation p, which
// may exceed the requested size. It returns 0 for anything else.
func (a *Allocator) UsableSize(p unsafe.Pointer) int {
	loc, ok := a.Locate(p)
	if !ok {
		return 0
	}
	return loc.Size
}

// Blocks lists the chain of the zone at base in address order. It returns
// false when base is not a zone of this allocator.
func (a *Allocator) Blocks(base uintptr) ([]BlockInfo, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ownsZone(base) {
		return nil, false
	}
	var blocks []BlockInfo
	for blk := zoneAt(base).FirstBlock; blk != 0; blk = blockAt(blk).Next {
		h := blockAt(blk)
		blocks = append(blocks, BlockInfo{
			Header:  blk,
			Payload: payloadOf(blk),
			Size:    int(h.Size),
			Free:    h.Free,
		})
	}
	return blocks, true
}

// UsedBytes returns the used-byte counter of the zone at base.
func (a *Allocator) UsedBytes(base uintptr) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ownsZone(base) {
		return 0, false
	}
	return int(zoneAt(base).UsedBytes), true
}

func (a *Allocator) ownsZone(base uintptr) bool {
	for _, c := range []Class{ClassTiny, ClassSmall} {
		for zone := a.g.head(c); zone != 0; zone = zoneAt(zone).Next {
			if zone == base {
				return true
			}
		}
	}
	return false
}
