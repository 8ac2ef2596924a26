package alloc

import (
	"errors"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/joshuapare/zonemalloc/internal/layout"
	"github.com/joshuapare/zonemalloc/internal/logger"
)

// globals holds the three list heads. They and everything reachable from
// them are only touched with Allocator.mu held.
type globals struct {
	tinyHead  uintptr // zone base
	smallHead uintptr // zone base
	largeHead uintptr // block header (== mapping base)
}

func (g *globals) head(c Class) uintptr {
	switch c {
	case ClassTiny:
		return g.tinyHead
	case ClassSmall:
		return g.smallHead
	case ClassLarge:
		return g.largeHead
	}
	return 0
}

func (g *globals) setHead(c Class, v uintptr) {
	switch c {
	case ClassTiny:
		g.tinyHead = v
	case ClassSmall:
		g.smallHead = v
	case ClassLarge:
		g.largeHead = v
	}
}

// Allocator is a zone allocator. The zero value is not usable; call New.
type Allocator struct {
	mu sync.Mutex
	g  globals

	cfg       Config
	mapper    Mapper
	pageSize  int
	zoneSizes [2]int // tiny, small

	stats allocatorStats
}

// New creates an allocator. A nil config means DefaultConfig.
func New(cfg *Config) (*Allocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	c := *cfg
	if c.Mapper == nil {
		c.Mapper = osMapper{}
	}
	pageSize := c.Mapper.PageSize()
	if err := c.validate(pageSize); err != nil {
		return nil, err
	}
	a := &Allocator{
		cfg:      c,
		mapper:   c.Mapper,
		pageSize: pageSize,
	}
	a.zoneSizes[0] = layout.ZoneSize(ClassTiny, c.MinBlocksPerZone, pageSize)
	a.zoneSizes[1] = layout.ZoneSize(ClassSmall, c.MinBlocksPerZone, pageSize)
	return a, nil
}

// Config returns the configuration the allocator was built with.
func (a *Allocator) Config() Config {
	return a.cfg
}

func (a *Allocator) log() *slog.Logger {
	if a.cfg.Logger != nil {
		return a.cfg.Logger
	}
	return logger.L
}

// zoneSize is the mapping size for zones of class c.
func (a *Allocator) zoneSize(c Class) int {
	switch c {
	case ClassTiny:
		return a.zoneSizes[0]
	case ClassSmall:
		return a.zoneSizes[1]
	}
	return 0
}

// Alloc returns a 16-byte aligned payload of at least size bytes.
func (a *Allocator) Alloc(size int) (unsafe.Pointer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.AllocCalls++
	p, err := a.allocLocked(size)
	if err != nil {
		a.stats.AllocFailures++
		return nil, err
	}
	return unsafe.Pointer(p), nil
}

// Free releases a payload returned by Alloc or Realloc. Nil, foreign and
// already-freed pointers are ignored.
func (a *Allocator) Free(p unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.FreeCalls++
	a.freeLocked(uintptr(p))
}

// Realloc resizes the allocation at p to size bytes, in place when it can.
//
// Realloc(nil, n) behaves like Alloc(n). Realloc(p, 0) frees p and returns
// nil with no error. A non-nil p that is not a live allocation yields
// ErrNotOwned and leaves the heap untouched. On error the original
// allocation is still valid.
func (a *Allocator) Realloc(p unsafe.Pointer, size int) (unsafe.Pointer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.ReallocCalls++
	np, err := a.reallocLocked(uintptr(p), size)
	if err != nil {
		return nil, err
	}
	return unsafe.Pointer(np), nil
}

// Reset unmaps every zone and large block, live or not, and empties the
// lists. Pointers handed out before Reset must not be used afterwards.
func (a *Allocator) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for _, c := range []Class{ClassTiny, ClassSmall} {
		for base := a.g.head(c); base != 0; {
			z := zoneAt(base)
			next, size := z.Next, int(z.TotalSize)
			if err := a.mapper.Unmap(base, size); err != nil {
				errs = append(errs, err)
			}
			base = next
		}
		a.g.setHead(c, 0)
	}
	for blk := a.g.largeHead; blk != 0; {
		h := blockAt(blk)
		next, size := h.Next, layout.LargeMappingSize(int(h.Size))
		if err := a.mapper.Unmap(blk, size); err != nil {
			errs = append(errs, err)
		}
		blk = next
	}
	a.g.largeHead = 0
	a.stats = allocatorStats{}
	return errors.Join(errs...)
}

// Close is Reset, for use with defer.
func (a *Allocator) Close() error {
	return a.Reset()
}
