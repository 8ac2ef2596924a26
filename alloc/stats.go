package alloc

import (
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/zonemalloc/internal/layout"
)

// allocatorStats holds internal allocator counters.
type allocatorStats struct {
	AllocCalls     int // Alloc() calls
	AllocFailures  int // Alloc() calls that returned an error
	AllocFastPath  int // zone allocations served by an existing zone
	AllocSlowPath  int // zone allocations that needed a new zone
	FreeCalls      int // Free() calls
	ForeignFrees   int // frees of pointers not owned by the allocator
	StaleFrees     int // frees of blocks that were already free
	ReallocCalls   int // Realloc() calls
	ReallocInPlace int // reallocs that kept the pointer
	ReallocMoved   int // reallocs that copied to a new block
	Splits         int // blocks split on alloc or realloc
	CoalescePrev   int // merges into a free predecessor
	CoalesceNext   int // merges of a free successor
	MapFailures    int // mmap calls that failed
	LargeMapped    int // large mappings created
	LargeUnmapped  int // large mappings released
	ZonesCreated   [2]int
	ZonesDestroyed [2]int
}

// Stats is a snapshot of allocator counters and current heap occupancy.
type Stats struct {
	AllocCalls     int
	AllocFailures  int
	AllocFastPath  int
	AllocSlowPath  int
	FreeCalls      int
	ForeignFrees   int
	StaleFrees     int
	ReallocCalls   int
	ReallocInPlace int
	ReallocMoved   int
	Splits         int
	CoalescePrev   int
	CoalesceNext   int
	MapFailures    int
	LargeMapped    int
	LargeUnmapped  int

	TinyZonesCreated    int
	TinyZonesDestroyed  int
	SmallZonesCreated   int
	SmallZonesDestroyed int

	TinyZones   int
	SmallZones  int
	LargeBlocks int

	MappedBytes int64 // bytes held in zone and large mappings
	UsedBytes   int64 // payload bytes of allocated blocks
	FreeBytes   int64 // payload bytes of free zone blocks
}

// Utilization is UsedBytes over MappedBytes, in percent.
func (s Stats) Utilization() float64 {
	if s.MappedBytes == 0 {
		return 0
	}
	return float64(s.UsedBytes) / float64(s.MappedBytes) * 100
}

// Stats returns a snapshot of the allocator's counters and occupancy.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := a.stats
	s := Stats{
		AllocCalls:     st.AllocCalls,
		AllocFailures:  st.AllocFailures,
		AllocFastPath:  st.AllocFastPath,
		AllocSlowPath:  st.AllocSlowPath,
		FreeCalls:      st.FreeCalls,
		ForeignFrees:   st.ForeignFrees,
		StaleFrees:     st.StaleFrees,
		ReallocCalls:   st.ReallocCalls,
		ReallocInPlace: st.ReallocInPlace,
		ReallocMoved:   st.ReallocMoved,
		Splits:         st.Splits,
		CoalescePrev:   st.CoalescePrev,
		CoalesceNext:   st.CoalesceNext,
		MapFailures:    st.MapFailures,
		LargeMapped:    st.LargeMapped,
		LargeUnmapped:  st.LargeUnmapped,

		TinyZonesCreated:    st.ZonesCreated[0],
		TinyZonesDestroyed:  st.ZonesDestroyed[0],
		SmallZonesCreated:   st.ZonesCreated[1],
		SmallZonesDestroyed: st.ZonesDestroyed[1],
	}

	for _, c := range []Class{ClassTiny, ClassSmall} {
		for zone := a.g.head(c); zone != 0; zone = zoneAt(zone).Next {
			z := zoneAt(zone)
			if c == ClassTiny {
				s.TinyZones++
			} else {
				s.SmallZones++
			}
			s.MappedBytes += int64(z.TotalSize)
			s.UsedBytes += int64(z.UsedBytes)
			for blk := z.FirstBlock; blk != 0; blk = blockAt(blk).Next {
				if h := blockAt(blk); h.Free {
					s.FreeBytes += int64(h.Size)
				}
			}
		}
	}
	for blk := a.g.largeHead; blk != 0; blk = blockAt(blk).Next {
		h := blockAt(blk)
		s.LargeBlocks++
		s.MappedBytes += int64(layout.LargeMappingSize(int(h.Size)))
		s.UsedBytes += int64(h.Size)
	}
	return s
}

// PrintStats writes a human-readable statistics report to w.
func (a *Allocator) PrintStats(w io.Writer) error {
	s := a.Stats()
	p := message.NewPrinter(language.English)

	lines := []struct {
		format string
		args   []any
	}{
		{"=== Allocator Statistics ===\n", nil},
		{"Zones:        %d tiny (%s each), %d small (%s each), %d large blocks\n", []any{
			s.TinyZones, humanize.IBytes(uint64(a.zoneSize(ClassTiny))),
			s.SmallZones, humanize.IBytes(uint64(a.zoneSize(ClassSmall))),
			s.LargeBlocks,
		}},
		{"Mapped:       %s\n", []any{humanize.IBytes(uint64(s.MappedBytes))}},
		{"Used:         %s (%.1f%%)\n", []any{humanize.IBytes(uint64(s.UsedBytes)), s.Utilization()}},
		{"Free in zones: %s\n", []any{humanize.IBytes(uint64(s.FreeBytes))}},
		{"Alloc calls:  %d (fast %d, new zone %d, failed %d)\n", []any{
			s.AllocCalls, s.AllocFastPath, s.AllocSlowPath, s.AllocFailures,
		}},
		{"Free calls:   %d (foreign %d, stale %d)\n", []any{s.FreeCalls, s.ForeignFrees, s.StaleFrees}},
		{"Realloc:      %d (in place %d, moved %d)\n", []any{s.ReallocCalls, s.ReallocInPlace, s.ReallocMoved}},
		{"Splits:       %d, coalesce prev %d, next %d\n", []any{s.Splits, s.CoalescePrev, s.CoalesceNext}},
		{"Zone churn:   tiny +%d/-%d, small +%d/-%d, large +%d/-%d\n", []any{
			s.TinyZonesCreated, s.TinyZonesDestroyed,
			s.SmallZonesCreated, s.SmallZonesDestroyed,
			s.LargeMapped, s.LargeUnmapped,
		}},
		{"Map failures: %d\n", []any{s.MapFailures}},
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}
