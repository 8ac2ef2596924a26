//go:build unix

package malloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/zonemalloc/alloc"
)

func resetHeap(t *testing.T) {
	t.Helper()
	require.NoError(t, Reset())
	t.Cleanup(func() {
		require.NoError(t, Reset())
	})
}

func TestMallocFree(t *testing.T) {
	resetHeap(t)

	p := Malloc(100)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%16)
	copy(Bytes(p, 100), "zone allocator")
	assert.Equal(t, "zone allocator", string(Bytes(p, 14)))

	loc, ok := Default().Locate(p)
	require.True(t, ok)
	assert.Equal(t, alloc.ClassTiny, loc.Class)

	Free(p)
	_, ok = Default().Locate(p)
	assert.False(t, ok)
	assert.Zero(t, Default().ZoneCount(alloc.ClassTiny))
}

func TestMallocFailuresReturnNil(t *testing.T) {
	resetHeap(t)

	assert.Nil(t, Malloc(0))
	assert.Nil(t, Malloc(-1))
	assert.Nil(t, Malloc(int(^uint(0)>>1)))
}

func TestFreeNilAndForeign(t *testing.T) {
	resetHeap(t)

	var x [32]byte
	assert.NotPanics(t, func() {
		Free(nil)
		Free(unsafe.Pointer(&x[0]))
	})
}

func TestRealloc(t *testing.T) {
	resetHeap(t)

	p := Realloc(nil, 40)
	require.NotNil(t, p)
	copy(Bytes(p, 40), "0123456789")
	guard := Malloc(16) // forces the grow to move
	require.NotNil(t, guard)

	q := Realloc(p, 9000)
	require.NotNil(t, q)
	assert.Equal(t, "0123456789", string(Bytes(q, 10)))
	loc, ok := Default().Locate(q)
	require.True(t, ok)
	assert.Equal(t, alloc.ClassLarge, loc.Class)

	var local [64]byte
	assert.Nil(t, Realloc(unsafe.Pointer(&local[48]), 16), "foreign pointer")

	assert.Nil(t, Realloc(q, 0))
	_, ok = Default().Locate(q)
	assert.False(t, ok)
	Free(guard)
	require.NoError(t, Default().Verify())
	assert.Zero(t, Default().ZoneCount(alloc.ClassTiny))
}

func TestBytesEdgeCases(t *testing.T) {
	assert.Nil(t, Bytes(nil, 10))
	var x [4]byte
	assert.Nil(t, Bytes(unsafe.Pointer(&x[0]), 0))
	assert.Len(t, Bytes(unsafe.Pointer(&x[0]), 4), 4)
}

func TestDefaultIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
