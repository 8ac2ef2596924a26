//go:build unix

package alloc

import (
	"bytes"
	"testing"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCountersAndGauges(t *testing.T) {
	a, _ := newDefaultTestAllocator(t)

	p := mustAlloc(t, a, 100)
	q := mustAlloc(t, a, 2000)
	r := mustAlloc(t, a, 10000)
	_, err := a.Realloc(p, 50)
	require.NoError(t, err)

	st := a.Stats()
	assert.Equal(t, 3, st.AllocCalls)
	assert.Equal(t, 1, st.ReallocCalls)
	assert.Equal(t, 1, st.ReallocInPlace)
	assert.Equal(t, 1, st.TinyZones)
	assert.Equal(t, 1, st.SmallZones)
	assert.Equal(t, 1, st.LargeBlocks)
	assert.Equal(t, 1, st.LargeMapped)
	assert.Equal(t, int64(64+2000+10000), st.UsedBytes)
	assert.Equal(t, int64(a.ZoneSize(ClassTiny)+a.ZoneSize(ClassSmall)+PayloadOffset()+10000), st.MappedBytes)
	assert.Greater(t, st.FreeBytes, int64(0))
	assert.Greater(t, st.Utilization(), 0.0)

	a.Free(q)
	a.Free(r)
	st = a.Stats()
	assert.Equal(t, 2, st.FreeCalls)
	assert.Equal(t, 1, st.SmallZonesDestroyed)
	assert.Equal(t, 1, st.LargeUnmapped)
	assert.Zero(t, st.SmallZones)
	assert.Zero(t, st.LargeBlocks)
	assertInvariants(t, a)
}

func TestStatsUtilizationEmpty(t *testing.T) {
	assert.Zero(t, Stats{}.Utilization())
}

func TestResetClearsEverything(t *testing.T) {
	a, m := newDefaultTestAllocator(t)

	mustAlloc(t, a, 64)
	mustAlloc(t, a, 1024)
	mustAlloc(t, a, 100000)

	require.NoError(t, a.Reset())
	assert.Zero(t, a.ZoneCount(ClassTiny))
	assert.Zero(t, a.ZoneCount(ClassSmall))
	assert.Zero(t, a.ZoneCount(ClassLarge))
	assert.Equal(t, Stats{}, a.Stats())
	_, _, live := m.counts()
	assert.Zero(t, live)

	// Still usable afterwards.
	p := mustAlloc(t, a, 64)
	_, ok := a.Locate(p)
	assert.True(t, ok)
	assertInvariants(t, a)
}

func TestPrintStats(t *testing.T) {
	a, _ := newDefaultTestAllocator(t)

	for range 1500 {
		mustAlloc(t, a, 16)
	}
	mustAlloc(t, a, 1<<20)

	var out bytes.Buffer
	require.NoError(t, a.PrintStats(&out))
	s := out.String()
	assert.Contains(t, s, "=== Allocator Statistics ===")
	assert.Contains(t, s, "Alloc calls:  1,501")
	assert.Contains(t, s, humanize.IBytes(uint64(a.ZoneSize(ClassTiny)))+" each")
	assert.Contains(t, s, "1 large blocks")
	assert.Contains(t, s, "Map failures: 0")
}
