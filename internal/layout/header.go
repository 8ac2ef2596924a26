package layout

import "unsafe"

// ZoneHeader sits at offset 0 of every zone mapping. All address fields point
// into OS mappings owned by the allocator, never into the Go heap.
type ZoneHeader struct {
	Class      Class
	TotalSize  uintptr // size of the whole mapping
	UsedBytes  uintptr // sum of payload sizes of allocated blocks
	FirstBlock uintptr // header address of the lowest block
	Prev       uintptr // previous zone of the same class, 0 at the head
	Next       uintptr // next zone of the same class, 0 at the tail
}

// BlockHeader precedes every payload, in zones and in large mappings alike.
//
// For zone blocks ZoneBase is the base of the owning zone and Prev/Next link
// the address-ordered chain of that zone. For a large block ZoneBase is the
// header's own address and Prev/Next link the large list.
type BlockHeader struct {
	Size     uintptr // payload bytes, header excluded
	Prev     uintptr
	Next     uintptr
	ZoneBase uintptr
	Free     bool
	Large    bool
}

// ZoneHeaderSize is the size of ZoneHeader in bytes.
func ZoneHeaderSize() int { return int(unsafe.Sizeof(ZoneHeader{})) }

// BlockHeaderSize is the size of BlockHeader in bytes.
func BlockHeaderSize() int { return int(unsafe.Sizeof(BlockHeader{})) }

// FirstBlockOffset is where the first block header of a zone starts,
// relative to the zone base.
func FirstBlockOffset() int { return Align16(ZoneHeaderSize()) }

// PayloadOffset is the distance between a block header and its payload.
// It is also the per-block overhead charged when blocks are split or merged.
func PayloadOffset() int { return Align16(BlockHeaderSize()) }

// SplitThreshold is the smallest remainder worth carving into its own free
// block: one header plus one alignment unit of payload.
func SplitThreshold() int { return PayloadOffset() + MinAlignment }
