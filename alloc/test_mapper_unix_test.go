//go:build unix

package alloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/zonemalloc/internal/mmap"
)

// testPageSize pins zone geometry so tests behave the same on 4K and 16K
// page systems.
const testPageSize = 4096

// countingMapper maps through the OS and counts calls. Once limit mappings
// have succeeded every further Map fails; a negative limit means no limit.
type countingMapper struct {
	mu     sync.Mutex
	maps   int
	unmaps int
	limit  int
	live   map[uintptr]int
}

func newCountingMapper() *countingMapper {
	return &countingMapper{limit: -1, live: make(map[uintptr]int)}
}

func (m *countingMapper) Map(size int) (uintptr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.limit >= 0 && m.maps >= m.limit {
		return 0, errMapDenied
	}
	base, err := mmap.Map(size)
	if err != nil {
		return 0, err
	}
	m.maps++
	m.live[base] = size
	return base, nil
}

func (m *countingMapper) Unmap(base uintptr, size int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unmaps++
	delete(m.live, base)
	return mmap.Unmap(base, size)
}

func (m *countingMapper) PageSize() int { return testPageSize }

func (m *countingMapper) counts() (maps, unmaps, live int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maps, m.unmaps, len(m.live)
}

func (m *countingMapper) setLimit(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limit = n
}

// newTestAllocator returns an allocator over a countingMapper. Everything it
// maps is released when the test ends.
func newTestAllocator(t testing.TB, minBlocks int) (*Allocator, *countingMapper) {
	t.Helper()
	m := newCountingMapper()
	a, err := New(&Config{MinBlocksPerZone: minBlocks, Mapper: m})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = a.Reset()
	})
	return a, m
}

// newDefaultTestAllocator uses the default zone sizing.
func newDefaultTestAllocator(t testing.TB) (*Allocator, *countingMapper) {
	t.Helper()
	return newTestAllocator(t, DefaultConfig.MinBlocksPerZone)
}
