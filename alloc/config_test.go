package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/zonemalloc/internal/layout"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero blocks", Config{MinBlocksPerZone: 0, Mapper: failingMapper{}}},
		{"negative blocks", Config{MinBlocksPerZone: -3, Mapper: failingMapper{}}},
		{"overflowing blocks", Config{MinBlocksPerZone: math.MaxInt / 2, Mapper: failingMapper{}}},
		{"bad page size", Config{MinBlocksPerZone: 4, Mapper: pageSizeMapper(3000)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(&tt.cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, a)
		})
	}
}

func TestNewZoneSizes(t *testing.T) {
	a, err := New(&Config{MinBlocksPerZone: 100, Mapper: failingMapper{}})
	require.NoError(t, err)

	tiny := a.ZoneSize(ClassTiny)
	small := a.ZoneSize(ClassSmall)
	assert.Zero(t, a.ZoneSize(ClassLarge))
	assert.Zero(t, tiny%4096)
	assert.Zero(t, small%4096)

	// Each zone holds at least 100 maximum-size blocks.
	for _, c := range []Class{ClassTiny, ClassSmall} {
		zs := a.ZoneSize(c)
		usable := layout.UsableSize(zs)
		perBlock := PayloadOffset() + c.MaxPayload()
		assert.GreaterOrEqual(t, usable+PayloadOffset(), 100*perBlock, "%s zone", c)
		assert.Less(t, zs-4096, layout.FirstBlockOffset()+100*perBlock, "%s zone is page-tight", c)
	}
	if PayloadOffset() == 48 && ZoneHeaderSize() <= 48 {
		assert.Equal(t, 57344, tiny)
		assert.Equal(t, 417792, small)
	}
}

func TestNewNilUsesDefault(t *testing.T) {
	a, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig.MinBlocksPerZone, a.Config().MinBlocksPerZone)
	assert.NotNil(t, a.Config().Mapper)
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv(EnvMinBlocksPerZone, "")
		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig.MinBlocksPerZone, cfg.MinBlocksPerZone)
	})
	t.Run("override", func(t *testing.T) {
		t.Setenv(EnvMinBlocksPerZone, "8")
		cfg, err := ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.MinBlocksPerZone)
	})
	t.Run("not a number", func(t *testing.T) {
		t.Setenv(EnvMinBlocksPerZone, "lots")
		_, err := ConfigFromEnv()
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
	t.Run("zero", func(t *testing.T) {
		t.Setenv(EnvMinBlocksPerZone, "0")
		_, err := ConfigFromEnv()
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestIntrospectionConstants(t *testing.T) {
	assert.Equal(t, 16, Alignment())
	tiny, small := Thresholds()
	assert.Equal(t, 512, tiny)
	assert.Equal(t, 4096, small)
	assert.Zero(t, PayloadOffset()%Alignment())
	assert.GreaterOrEqual(t, PayloadOffset(), BlockHeaderSize())
}

// pageSizeMapper is a failingMapper with a custom page size.
type pageSizeMapper int

func (pageSizeMapper) Map(int) (uintptr, error) { return 0, errMapDenied }
func (pageSizeMapper) Unmap(uintptr, int) error { return nil }
func (m pageSizeMapper) PageSize() int          { return int(m) }
