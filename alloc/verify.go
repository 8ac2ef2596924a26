package alloc

import (
	"fmt"

	"github.com/joshuapare/zonemalloc/internal/layout"
)

// Verify walks every zone and large block and checks the heap invariants:
//
//   - every payload is 16-byte aligned and every size a multiple of 16
//   - zone and block links are symmetric
//   - each zone chain starts right after the zone header and covers the
//     mapping to its end without gaps
//   - every zone block points back at its zone and is not marked large
//   - no two neighboring blocks are both free
//   - a zone's used-byte counter equals the sum of its allocated blocks
//   - no idle zone is retained
//   - large blocks are marked large, allocated, and point at themselves
//
// It returns an error wrapping ErrCorrupt for the first violation found.
func (a *Allocator) Verify() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range []Class{ClassTiny, ClassSmall} {
		var prev uintptr
		for zone := a.g.head(c); zone != 0; zone = zoneAt(zone).Next {
			if err := a.verifyZone(c, zone, prev); err != nil {
				return err
			}
			prev = zone
		}
	}
	return a.verifyLarge()
}

func (a *Allocator) verifyZone(c Class, base, prevZone uintptr) error {
	z := zoneAt(base)
	switch {
	case z.Class != c:
		return corruptf("zone %s: class %s on %s list", hexAddr(base), z.Class, c)
	case int(z.TotalSize) != a.zoneSize(c):
		return corruptf("zone %s: size %d, want %d", hexAddr(base), z.TotalSize, a.zoneSize(c))
	case z.Prev != prevZone:
		return corruptf("zone %s: prev %s, want %s", hexAddr(base), hexAddr(z.Prev), hexAddr(prevZone))
	case z.FirstBlock != base+firstBlockOffset:
		return corruptf("zone %s: first block at %s", hexAddr(base), hexAddr(z.FirstBlock))
	}

	end := base + z.TotalSize
	expected := z.FirstBlock
	var prev, used uintptr
	prevFree := false
	for blk := z.FirstBlock; blk != 0; blk = blockAt(blk).Next {
		if blk != expected {
			return corruptf("zone %s: block at %s, want %s", hexAddr(base), hexAddr(blk), hexAddr(expected))
		}
		if blk+payloadOffset > end {
			return corruptf("zone %s: block %s header past zone end", hexAddr(base), hexAddr(blk))
		}
		h := blockAt(blk)
		switch {
		case h.Prev != prev:
			return corruptf("block %s: prev %s, want %s", hexAddr(blk), hexAddr(h.Prev), hexAddr(prev))
		case h.ZoneBase != base:
			return corruptf("block %s: zone %s, want %s", hexAddr(blk), hexAddr(h.ZoneBase), hexAddr(base))
		case h.Large:
			return corruptf("block %s: large flag set inside zone %s", hexAddr(blk), hexAddr(base))
		case !layout.IsAligned(payloadOf(blk)):
			return corruptf("block %s: payload not aligned", hexAddr(blk))
		case h.Size < layout.MinAlignment || h.Size%layout.MinAlignment != 0:
			return corruptf("block %s: size %d", hexAddr(blk), h.Size)
		case h.Free && prevFree:
			return corruptf("block %s: free block follows free block", hexAddr(blk))
		}
		if !h.Free {
			used += h.Size
		}
		prevFree = h.Free
		prev = blk
		expected = blockEnd(blk)
		if expected > end {
			return corruptf("block %s: payload runs past zone end", hexAddr(blk))
		}
	}
	if expected != end {
		return corruptf("zone %s: chain ends at %s, mapping at %s", hexAddr(base), hexAddr(expected), hexAddr(end))
	}
	if used != z.UsedBytes {
		return corruptf("zone %s: used bytes %d, allocated blocks sum to %d", hexAddr(base), z.UsedBytes, used)
	}
	if isIdle(base) {
		return corruptf("zone %s: idle zone retained", hexAddr(base))
	}
	return nil
}

func (a *Allocator) verifyLarge() error {
	var prev uintptr
	for blk := a.g.largeHead; blk != 0; blk = blockAt(blk).Next {
		h := blockAt(blk)
		switch {
		case h.Prev != prev:
			return corruptf("large %s: prev %s, want %s", hexAddr(blk), hexAddr(h.Prev), hexAddr(prev))
		case !h.Large:
			return corruptf("large %s: large flag clear", hexAddr(blk))
		case h.Free:
			return corruptf("large %s: marked free", hexAddr(blk))
		case h.ZoneBase != blk:
			return corruptf("large %s: base %s", hexAddr(blk), hexAddr(h.ZoneBase))
		case !layout.IsAligned(payloadOf(blk)):
			return corruptf("large %s: payload not aligned", hexAddr(blk))
		case layout.Classify(int(h.Size)) != ClassLarge:
			return corruptf("large %s: size %d belongs to a zone class", hexAddr(blk), h.Size)
		}
		prev = blk
	}
	return nil
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
