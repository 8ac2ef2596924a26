package alloc

import "github.com/joshuapare/zonemalloc/internal/layout"

// locate finds the block whose payload is p. The large list is scanned
// first, then tiny zones, then small zones. p itself is only compared, never
// dereferenced, so foreign pointers are safe. zone is 0 for large blocks.
func (a *Allocator) locate(p uintptr) (blk, zone uintptr, ok bool) {
	if p == 0 {
		return 0, 0, false
	}
	want := blockOf(p)
	for blk = a.g.largeHead; blk != 0; blk = blockAt(blk).Next {
		if blk == want {
			return blk, 0, true
		}
	}
	for _, c := range []Class{ClassTiny, ClassSmall} {
		for zone = a.g.head(c); zone != 0; zone = zoneAt(zone).Next {
			z := zoneAt(zone)
			// The chain lies inside the mapping; skip zones that cannot
			// contain p without walking them.
			if p < z.FirstBlock || p >= zone+z.TotalSize {
				continue
			}
			for blk = z.FirstBlock; blk != 0; blk = blockAt(blk).Next {
				if blk == want {
					return blk, zone, true
				}
			}
		}
	}
	return 0, 0, false
}

func (a *Allocator) freeLocked(p uintptr) {
	if p == 0 {
		return
	}
	blk, zone, ok := a.locate(p)
	if !ok {
		a.stats.ForeignFrees++
		a.log().Debug("free of foreign pointer ignored", "ptr", hexAddr(p))
		return
	}
	if zone == 0 {
		a.releaseLarge(blk)
		return
	}

	h := blockAt(blk)
	if h.Free {
		a.stats.StaleFrees++
		a.log().Debug("free of already free block ignored", "ptr", hexAddr(p))
		return
	}
	h.Free = true
	zoneAt(zone).UsedBytes -= h.Size

	merged := a.mergeWithPrev(blk)
	a.mergeWithNext(merged)

	if isIdle(zone) {
		a.destroyZone(zone)
	}
}

// releaseLarge unlinks a large block and unmaps its mapping.
func (a *Allocator) releaseLarge(blk uintptr) {
	h := blockAt(blk)
	prev, next := h.Prev, h.Next
	if prev != 0 {
		blockAt(prev).Next = next
	}
	if next != 0 {
		blockAt(next).Prev = prev
	}
	if a.g.largeHead == blk {
		a.g.largeHead = next
	}

	size := layout.LargeMappingSize(int(h.Size))
	if err := a.mapper.Unmap(blk, size); err != nil {
		a.log().Warn("large unmap failed", "base", hexAddr(blk), "err", err)
	}
	a.stats.LargeUnmapped++
	a.log().Debug("large block unmapped", "base", hexAddr(blk), "size", size)
}

// mergeWithPrev folds blk into its predecessor when that is free and returns
// the header that now covers blk.
func (a *Allocator) mergeWithPrev(blk uintptr) uintptr {
	h := blockAt(blk)
	if h.Prev == 0 {
		return blk
	}
	p := blockAt(h.Prev)
	if !p.Free {
		return blk
	}
	p.Size += payloadOffset + h.Size
	p.Next = h.Next
	if h.Next != 0 {
		blockAt(h.Next).Prev = h.Prev
	}
	a.stats.CoalescePrev++
	return h.Prev
}

// mergeWithNext absorbs blk's successor when that is free.
func (a *Allocator) mergeWithNext(blk uintptr) {
	h := blockAt(blk)
	if h.Next == 0 {
		return
	}
	n := blockAt(h.Next)
	if !n.Free {
		return
	}
	h.Size += payloadOffset + n.Size
	h.Next = n.Next
	if n.Next != 0 {
		blockAt(n.Next).Prev = blk
	}
	a.stats.CoalesceNext++
}
