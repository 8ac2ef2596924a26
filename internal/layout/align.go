package layout

// AlignUp returns v rounded up to the next multiple of alignment, which must
// be a power of two.
//
// Example:
//
//	AlignUp(1, 16)  = 16
//	AlignUp(16, 16) = 16
//	AlignUp(17, 16) = 32
func AlignUp(v, alignment int) int {
	mask := alignment - 1
	return (v + mask) & ^mask
}

// Align16 returns v aligned up to MinAlignment.
func Align16(v int) int {
	return (v + MinAlignmentMask) & ^MinAlignmentMask
}

// CeilToPages rounds v up to a whole number of pages of pageSize bytes.
func CeilToPages(v, pageSize int) int {
	return AlignUp(v, pageSize)
}

// IsAligned reports whether addr is a multiple of MinAlignment.
func IsAligned(addr uintptr) bool {
	return addr&MinAlignmentMask == 0
}
