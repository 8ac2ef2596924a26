// Package layout holds the fixed geometry shared by every part of the
// allocator: alignment, size-class thresholds, the in-memory header layouts
// and the arithmetic that turns those into zone sizes and payload offsets.
// It has no behavior of its own and no state.
package layout

const (
	// MinAlignment is the alignment of every payload handed out, in bytes.
	// Block headers and payload sizes are rounded to it as well, so a block
	// chain stays aligned no matter how it is split or merged.
	MinAlignment = 16

	// MinAlignmentMask is MinAlignment - 1.
	MinAlignmentMask = MinAlignment - 1

	// TinyMaxBlockSize is the largest aligned request served from tiny zones.
	TinyMaxBlockSize = 512

	// SmallMaxBlockSize is the largest aligned request served from small zones.
	// Anything above gets a dedicated mapping.
	SmallMaxBlockSize = 4096

	// DefaultMinBlocksPerZone is how many maximum-size blocks a zone must be
	// able to hold. It only feeds ZoneSize.
	DefaultMinBlocksPerZone = 100

	// DiagnosticMinBlocksPerZone is a reduced value used by diagnostic builds
	// so that zone creation and reclamation show up after a handful of calls.
	DiagnosticMinBlocksPerZone = 4
)
