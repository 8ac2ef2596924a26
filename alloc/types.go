package alloc

import "github.com/joshuapare/zonemalloc/internal/layout"

// Class is the size class of an allocation.
type Class = layout.Class

const (
	ClassTiny  = layout.ClassTiny
	ClassSmall = layout.ClassSmall
	ClassLarge = layout.ClassLarge
)

// Location describes who owns a live payload.
type Location struct {
	Class    Class
	ZoneBase uintptr // zone base, or the block's own header for LARGE
	Size     int     // payload bytes
}

// BlockInfo describes one block of a zone chain.
type BlockInfo struct {
	Header  uintptr
	Payload uintptr
	Size    int
	Free    bool
}

// End is the first address past the block's payload.
func (b BlockInfo) End() uintptr {
	return b.Payload + uintptr(b.Size)
}
