package alloc

import "fmt"

func (a *Allocator) reallocLocked(p uintptr, size int) (uintptr, error) {
	if p == 0 {
		return a.allocLocked(size)
	}
	if size == 0 {
		a.freeLocked(p)
		return 0, nil
	}
	need, err := checkSize(size)
	if err != nil {
		return 0, err
	}

	blk, zone, ok := a.locate(p)
	if !ok || blockAt(blk).Free {
		return 0, fmt.Errorf("%w: %s", ErrNotOwned, hexAddr(p))
	}
	h := blockAt(blk)
	old := h.Size

	if zone == 0 {
		return a.move(p, size, min(need, old))
	}
	z := zoneAt(zone)

	// Absorb a free successor when the combined block fits, then give back
	// whatever is left over.
	if h.Next != 0 {
		n := blockAt(h.Next)
		if n.Free && old+payloadOffset+n.Size >= need {
			h.Size = old + payloadOffset + n.Size
			h.Next = n.Next
			if n.Next != 0 {
				blockAt(n.Next).Prev = blk
			}
			a.splitBlock(blk, need)
			z.UsedBytes = z.UsedBytes - old + h.Size
			a.stats.ReallocInPlace++
			return p, nil
		}
	}

	if need <= old {
		a.splitBlock(blk, need)
		z.UsedBytes -= old - h.Size
		a.stats.ReallocInPlace++
		return p, nil
	}

	return a.move(p, size, old)
}

// move allocates size bytes elsewhere, copies n bytes from p and frees p.
// p is untouched when the allocation fails.
func (a *Allocator) move(p uintptr, size int, n uintptr) (uintptr, error) {
	np, err := a.allocLocked(size)
	if err != nil {
		return 0, err
	}
	copy(bytesAt(np, n), bytesAt(p, n))
	a.freeLocked(p)
	a.stats.ReallocMoved++
	return np, nil
}
