package alloc

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joshuapare/zonemalloc/internal/buf"
	"github.com/joshuapare/zonemalloc/internal/layout"
	"github.com/joshuapare/zonemalloc/internal/mmap"
)

// EnvMinBlocksPerZone overrides Config.MinBlocksPerZone in ConfigFromEnv.
const EnvMinBlocksPerZone = "ZONEMALLOC_MIN_BLOCKS_PER_ZONE"

// Mapper obtains and releases the OS mappings zones and large blocks live in.
type Mapper interface {
	// Map returns the base of a zero-filled read/write mapping of size bytes.
	Map(size int) (uintptr, error)
	// Unmap releases a mapping returned by Map, given the same size.
	Unmap(base uintptr, size int) error
	// PageSize returns the granularity zone sizes are rounded to.
	PageSize() int
}

// Config controls zone sizing and the allocator's collaborators.
type Config struct {
	// MinBlocksPerZone is how many blocks of the class's largest payload
	// every zone must be able to hold. Lower values make zones smaller and
	// zone turnover visible; allocation semantics do not change.
	MinBlocksPerZone int

	// Mapper is used for every mapping. Nil means anonymous private OS
	// mappings.
	Mapper Mapper

	// Logger receives zone lifecycle events. Nil means the package logger.
	Logger *slog.Logger
}

var (
	// DefaultConfig is used when New is given nil.
	DefaultConfig = Config{MinBlocksPerZone: layout.DefaultMinBlocksPerZone}

	// DiagnosticConfig shrinks zones so that creation and reclamation happen
	// after a handful of allocations.
	DiagnosticConfig = Config{MinBlocksPerZone: layout.DiagnosticMinBlocksPerZone}
)

// ConfigFromEnv returns DefaultConfig with MinBlocksPerZone taken from
// ZONEMALLOC_MIN_BLOCKS_PER_ZONE when it is set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig
	v := os.Getenv(EnvMinBlocksPerZone)
	if v == "" {
		return cfg, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return cfg, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, EnvMinBlocksPerZone, v, err)
	}
	cfg.MinBlocksPerZone = n
	return cfg, cfg.validate(osMapper{}.PageSize())
}

func (c Config) validate(pageSize int) error {
	if c.MinBlocksPerZone <= 0 {
		return fmt.Errorf("%w: MinBlocksPerZone must be positive, got %d", ErrInvalidConfig, c.MinBlocksPerZone)
	}
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		return fmt.Errorf("%w: page size %d is not a power of two", ErrInvalidConfig, pageSize)
	}
	perBlock := layout.PayloadOffset() + layout.SmallMaxBlockSize
	body, ok := buf.MulOverflowSafe(c.MinBlocksPerZone, perBlock)
	if !ok {
		return fmt.Errorf("%w: MinBlocksPerZone %d overflows zone size", ErrInvalidConfig, c.MinBlocksPerZone)
	}
	if !buf.FitsAligned(body, pageSize, layout.FirstBlockOffset()) {
		return fmt.Errorf("%w: MinBlocksPerZone %d overflows zone size", ErrInvalidConfig, c.MinBlocksPerZone)
	}
	return nil
}

// osMapper maps through internal/mmap.
type osMapper struct{}

func (osMapper) Map(size int) (uintptr, error)      { return mmap.Map(size) }
func (osMapper) Unmap(base uintptr, size int) error { return mmap.Unmap(base, size) }
func (osMapper) PageSize() int                      { return mmap.PageSize() }
