package alloc

import (
	"bufio"
	"fmt"
	"io"
)

// ShowAllocMem writes the allocated blocks of every class to w:
//
//	TINY : 0x00007F3A2C000000
//	0x00007F3A2C000060 - 0x00007F3A2C000080 : 32 bytes
//	SMALL : 0x00007F3A2B000000
//	0x00007F3A2B000060 - 0x00007F3A2B0003F0 : 912 bytes
//	LARGE : 0x00007F3A2A000000
//	0x00007F3A2A000030 - 0x00007F3A2A002030 : 8192 bytes
//	Total : 9136 bytes
//
// Classes come in TINY, SMALL, LARGE order and a class line is printed only
// when the class has a zone (or large block). The address on a class line is
// the head of its list. Zone blocks follow list and chain order; large
// blocks are sorted by address. Heap metadata is not modified.
func (a *Allocator) ShowAllocMem(w io.Writer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	bw := bufio.NewWriter(w)
	var total uintptr

	for _, c := range []Class{ClassTiny, ClassSmall} {
		head := a.g.head(c)
		if head == 0 {
			continue
		}
		fmt.Fprintf(bw, "%s : %s\n", c, hexAddr(head))
		for zone := head; zone != 0; zone = zoneAt(zone).Next {
			for blk := zoneAt(zone).FirstBlock; blk != 0; blk = blockAt(blk).Next {
				if h := blockAt(blk); !h.Free {
					writeRange(bw, blk)
					total += h.Size
				}
			}
		}
	}

	if head := a.g.largeHead; head != 0 {
		fmt.Fprintf(bw, "%s : %s\n", ClassLarge, hexAddr(head))
		// Selection by address: each pass prints the lowest block above the
		// last one printed.
		var last uintptr
		for {
			var best uintptr
			for blk := head; blk != 0; blk = blockAt(blk).Next {
				if blk > last && (best == 0 || blk < best) {
					best = blk
				}
			}
			if best == 0 {
				break
			}
			writeRange(bw, best)
			total += blockAt(best).Size
			last = best
		}
	}

	fmt.Fprintf(bw, "Total : %d bytes\n", total)
	return bw.Flush()
}

func writeRange(w io.Writer, blk uintptr) {
	fmt.Fprintf(w, "%s - %s : %d bytes\n", hexAddr(payloadOf(blk)), hexAddr(blockEnd(blk)), blockAt(blk).Size)
}
