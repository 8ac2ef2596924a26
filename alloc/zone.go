package alloc

import (
	"fmt"

	"github.com/joshuapare/zonemalloc/internal/layout"
)

// createZone maps a zone of class c, seeds it with one free block spanning
// the usable region, and pushes it on the front of the class list.
func (a *Allocator) createZone(c Class) (uintptr, error) {
	size := a.zoneSize(c)
	base, err := a.mapper.Map(size)
	if err != nil {
		a.stats.MapFailures++
		a.log().Warn("zone mapping failed", "class", c, "size", size, "err", err)
		return 0, fmt.Errorf("%w: %s zone of %d bytes: %w", ErrOutOfMemory, c, size, err)
	}

	z := zoneAt(base)
	*z = layout.ZoneHeader{
		Class:     c,
		TotalSize: uintptr(size),
	}

	first := base + firstBlockOffset
	*blockAt(first) = layout.BlockHeader{
		Size:     uintptr(size) - firstBlockOffset - payloadOffset,
		Free:     true,
		ZoneBase: base,
	}
	z.FirstBlock = first

	old := a.g.head(c)
	z.Next = old
	if old != 0 {
		zoneAt(old).Prev = base
	}
	a.g.setHead(c, base)

	a.stats.ZonesCreated[classIndex(c)]++
	a.log().Debug("zone created", "class", c, "base", hexAddr(base), "size", size)
	return base, nil
}

// destroyZone unlinks the zone at base from its class list and unmaps it.
// The caller guarantees no allocated block remains in it.
func (a *Allocator) destroyZone(base uintptr) {
	z := zoneAt(base)
	c, size := z.Class, int(z.TotalSize)
	prev, next := z.Prev, z.Next

	if prev != 0 {
		zoneAt(prev).Next = next
	}
	if next != 0 {
		zoneAt(next).Prev = prev
	}
	if a.g.head(c) == base {
		a.g.setHead(c, next)
	}

	if err := a.mapper.Unmap(base, size); err != nil {
		a.log().Warn("zone unmap failed", "class", c, "base", hexAddr(base), "err", err)
	}
	a.stats.ZonesDestroyed[classIndex(c)]++
	a.log().Debug("zone destroyed", "class", c, "base", hexAddr(base), "size", size)
}

// isIdle reports whether the zone's chain has collapsed to a single free
// block spanning the whole usable region.
func isIdle(base uintptr) bool {
	z := zoneAt(base)
	h := blockAt(z.FirstBlock)
	return h.Prev == 0 && h.Next == 0 && h.Free && h.Size == usableSize(z)
}

func classIndex(c Class) int {
	return int(c) - int(ClassTiny)
}

func hexAddr(addr uintptr) string {
	return fmt.Sprintf("0x%016X", uint64(addr))
}
