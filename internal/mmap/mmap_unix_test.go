//go:build unix

package mmap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestMapWriteReadUnmap(t *testing.T) {
	size := PageSize() * 2
	base, err := Map(size)
	require.NoError(t, err)
	require.NotZero(t, base)
	require.Zero(t, base%uintptr(PageSize()), "mapping must be page aligned")

	data := unsafe.Slice((*byte)(unsafe.Pointer(base)), size)
	for i := range data {
		require.Zero(t, data[i], "anonymous mapping must be zero filled")
		data[i] = byte(i)
	}
	for i := range data {
		if data[i] != byte(i) {
			t.Fatalf("byte %d mismatch: got 0x%x want 0x%x", i, data[i], byte(i))
		}
	}

	require.NoError(t, Unmap(base, size))
}

func TestMapOddSize(t *testing.T) {
	size := PageSize() + 48
	base, err := Map(size)
	require.NoError(t, err)
	data := unsafe.Slice((*byte)(unsafe.Pointer(base)), size)
	data[size-1] = 0xAB
	require.NoError(t, Unmap(base, size))
}

func TestMapInvalidSize(t *testing.T) {
	_, err := Map(0)
	require.Error(t, err)
	_, err = Map(-1)
	require.Error(t, err)
}

func TestUnmapZeroIsNoop(t *testing.T) {
	require.NoError(t, Unmap(0, 4096))
	require.NoError(t, Unmap(0x1000, 0))
}

func TestPageSize(t *testing.T) {
	ps := PageSize()
	require.Positive(t, ps)
	require.Zero(t, ps&(ps-1), "page size must be a power of two")
}
