package alloc

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Mappers
// ============================================================================

// errMapDenied is what failingMapper returns from Map.
var errMapDenied = errors.New("map denied")

// failingMapper refuses every mapping.
type failingMapper struct{}

func (failingMapper) Map(int) (uintptr, error) { return 0, errMapDenied }
func (failingMapper) Unmap(uintptr, int) error { return nil }
func (failingMapper) PageSize() int            { return 4096 }

// ============================================================================
// Memory access
// ============================================================================

// fill writes a byte pattern derived from seed into n bytes at p.
func fill(p unsafe.Pointer, n int, seed byte) {
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		b[i] = seed + byte(i)
	}
}

// requirePattern checks the pattern written by fill.
func requirePattern(t testing.TB, p unsafe.Pointer, n int, seed byte) {
	t.Helper()
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		if b[i] != seed+byte(i) {
			t.Fatalf("byte %d at %p = %#x, want %#x", i, p, b[i], seed+byte(i))
		}
	}
}

// ============================================================================
// Assertions
// ============================================================================

// assertInvariants fails the test if Verify finds any broken invariant.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Verify(), "heap invariants")
}

// mustAlloc allocates size bytes or fails the test.
func mustAlloc(t testing.TB, a *Allocator, size int) unsafe.Pointer {
	t.Helper()
	p, err := a.Alloc(size)
	require.NoError(t, err, "Alloc(%d)", size)
	require.NotNil(t, p, "Alloc(%d)", size)
	return p
}

// blockFor returns the chain entry whose payload is p.
func blockFor(t testing.TB, a *Allocator, p unsafe.Pointer) BlockInfo {
	t.Helper()
	loc, ok := a.Locate(p)
	require.True(t, ok, "Locate(%p)", p)
	blocks, ok := a.Blocks(loc.ZoneBase)
	require.True(t, ok, "Blocks(%#x)", loc.ZoneBase)
	for _, b := range blocks {
		if b.Payload == uintptr(p) {
			return b
		}
	}
	t.Fatalf("no block with payload %p in zone %#x", p, loc.ZoneBase)
	return BlockInfo{}
}
