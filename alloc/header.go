package alloc

import (
	"unsafe"

	"github.com/joshuapare/zonemalloc/internal/layout"
)

var (
	payloadOffset    = uintptr(layout.PayloadOffset())
	firstBlockOffset = uintptr(layout.FirstBlockOffset())
	splitThreshold   = uintptr(layout.SplitThreshold())
)

// zoneAt views the zone header at base.
func zoneAt(base uintptr) *layout.ZoneHeader {
	return (*layout.ZoneHeader)(unsafe.Pointer(base))
}

// blockAt views the block header at addr.
func blockAt(addr uintptr) *layout.BlockHeader {
	return (*layout.BlockHeader)(unsafe.Pointer(addr))
}

// payloadOf and blockOf are the only places the header/payload distance is
// applied.
func payloadOf(blk uintptr) uintptr { return blk + payloadOffset }

func blockOf(payload uintptr) uintptr { return payload - payloadOffset }

// blockEnd is the first address past blk's payload, which is where the next
// block in the chain must start.
func blockEnd(blk uintptr) uintptr {
	return payloadOf(blk) + blockAt(blk).Size
}

// bytesAt views n bytes at addr.
func bytesAt(addr, n uintptr) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

// usableSize is the size of the initial free block of a zone.
func usableSize(z *layout.ZoneHeader) uintptr {
	return uintptr(layout.UsableSize(int(z.TotalSize)))
}
