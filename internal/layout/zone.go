package layout

// ZoneSize returns the mapping size for a zone of class c: a whole number of
// pages large enough for the zone header plus minBlocks blocks of the class's
// maximum payload, each with its header. Large allocations have no zone and
// get 0.
//
// Example (64-bit, 4 KiB pages, minBlocks = 100):
//
//	ZoneSize(ClassTiny, 100, 4096)  = 57344   // 14 pages
//	ZoneSize(ClassSmall, 100, 4096) = 417792  // 102 pages
func ZoneSize(c Class, minBlocks, pageSize int) int {
	maxPayload := c.MaxPayload()
	if maxPayload == 0 || minBlocks <= 0 {
		return 0
	}
	perBlock := PayloadOffset() + Align16(maxPayload)
	need := FirstBlockOffset() + minBlocks*perBlock
	return CeilToPages(need, pageSize)
}

// UsableSize is the payload size of the single free block that spans a
// freshly created zone of zoneSize bytes. A zone whose chain has collapsed
// back to one free block of exactly this size is idle.
func UsableSize(zoneSize int) int {
	return zoneSize - FirstBlockOffset() - PayloadOffset()
}

// LargeMappingSize is the mapping size for a large allocation of an aligned
// payload size.
func LargeMappingSize(size int) int {
	return PayloadOffset() + size
}
