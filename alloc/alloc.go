package alloc

import (
	"fmt"

	"github.com/joshuapare/zonemalloc/internal/buf"
	"github.com/joshuapare/zonemalloc/internal/layout"
)

// checkSize validates a caller size and returns it aligned.
func checkSize(size int) (uintptr, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if !buf.FitsAligned(size, layout.MinAlignment, layout.PayloadOffset()) {
		return 0, fmt.Errorf("%w: %d", ErrOverflow, size)
	}
	return uintptr(layout.Align16(size)), nil
}

func (a *Allocator) allocLocked(size int) (uintptr, error) {
	need, err := checkSize(size)
	if err != nil {
		return 0, err
	}

	c := layout.Classify(int(need))
	if c == ClassLarge {
		return a.allocLarge(need)
	}

	blk, zone := a.findFit(c, need)
	if blk == 0 {
		zone, err = a.createZone(c)
		if err != nil {
			return 0, err
		}
		a.stats.AllocSlowPath++

		blk = zoneAt(zone).FirstBlock
		if h := blockAt(blk); !h.Free || h.Size < need {
			// Only reachable if zone sizing is broken.
			a.destroyZone(zone)
			return 0, fmt.Errorf("%w: fresh %s zone cannot hold %d bytes", ErrOutOfMemory, c, need)
		}
	} else {
		a.stats.AllocFastPath++
	}

	return a.allocFromBlock(blk, zone, need), nil
}

// allocLarge gives need bytes their own mapping and pushes the block on the
// front of the large list.
func (a *Allocator) allocLarge(need uintptr) (uintptr, error) {
	size := layout.LargeMappingSize(int(need))
	base, err := a.mapper.Map(size)
	if err != nil {
		a.stats.MapFailures++
		a.log().Warn("large mapping failed", "size", size, "err", err)
		return 0, fmt.Errorf("%w: large block of %d bytes: %w", ErrOutOfMemory, need, err)
	}

	old := a.g.largeHead
	*blockAt(base) = layout.BlockHeader{
		Size:     need,
		Next:     old,
		ZoneBase: base,
		Large:    true,
	}
	if old != 0 {
		blockAt(old).Prev = base
	}
	a.g.largeHead = base

	a.stats.LargeMapped++
	a.log().Debug("large block mapped", "base", hexAddr(base), "size", size)
	return payloadOf(base), nil
}

// findFit returns the first free block of at least need bytes, scanning
// zones of class c in list order and each chain in address order.
func (a *Allocator) findFit(c Class, need uintptr) (blk, zone uintptr) {
	for zone = a.g.head(c); zone != 0; zone = zoneAt(zone).Next {
		for blk = zoneAt(zone).FirstBlock; blk != 0; blk = blockAt(blk).Next {
			if h := blockAt(blk); h.Free && h.Size >= need {
				return blk, zone
			}
		}
	}
	return 0, 0
}

// allocFromBlock marks the free block blk allocated, splitting off its tail
// first when that is worthwhile.
func (a *Allocator) allocFromBlock(blk, zone, need uintptr) uintptr {
	a.splitBlock(blk, need)
	h := blockAt(blk)
	h.Free = false
	zoneAt(zone).UsedBytes += h.Size
	return payloadOf(blk)
}

// splitBlock shrinks blk to need bytes and links the remainder after it as a
// new free block, if the remainder reaches the split threshold. Blocks
// below it keep their slack.
func (a *Allocator) splitBlock(blk, need uintptr) bool {
	h := blockAt(blk)
	if h.Size < need || h.Size-need < splitThreshold {
		return false
	}

	tail := payloadOf(blk) + need
	*blockAt(tail) = layout.BlockHeader{
		Size:     h.Size - need - payloadOffset,
		Free:     true,
		Prev:     blk,
		Next:     h.Next,
		ZoneBase: h.ZoneBase,
	}
	if h.Next != 0 {
		blockAt(h.Next).Prev = tail
	}
	h.Size = need
	h.Next = tail

	a.stats.Splits++
	return true
}
