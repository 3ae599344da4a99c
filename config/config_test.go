package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/width"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPresets(t *testing.T) {
	presets := BuiltinPresets()
	require.Len(t, presets, 4)

	for _, p := range presets {
		require.NoError(t, p.Validate(), p.Name)
	}

	jaer, err := Find(presets, "jAER")
	require.NoError(t, err)
	assert.Equal(t, uint64(256), jaer.AddressSpace.Size())
	assert.Equal(t, format.FullWidths, jaer.SourceWidths())

	mono, err := Find(presets, "matlab-mono")
	require.NoError(t, err)
	assert.Equal(t, uint64(128), mono.AddressSpace.Size())

	small, err := Find(presets, "matlab-32ch-mono")
	require.NoError(t, err)
	assert.Equal(t, uint64(64), small.AddressSpace.Size())
	assert.Equal(t, format.WidthSpec{AddressWidth: 2, TimestampWidth: 4}, small.SourceWidths())
}

func TestFind_Unknown(t *testing.T) {
	_, err := Find(BuiltinPresets(), "davis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matlab-mono")
}

func TestLoadPresets(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "presets.yaml")
		content := `presets:
  - name: cochlea-128
    num_channels: 128
    stereo: true
    on_off_both: false
    address_size: 2
    timestamp_size: 4
    ts_tick: 0.2
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		presets, err := LoadPresets(path)
		require.NoError(t, err)
		require.Len(t, presets, 1)

		p := presets[0]
		assert.Equal(t, "cochlea-128", p.Name)
		assert.Equal(t, width.AddressSpace{Channels: 128, Stereo: true}, p.AddressSpace)
		assert.Equal(t, uint64(256), p.AddressSpace.Size())
		assert.InDelta(t, 0.2, p.TimestampTick, 1e-9)
	})

	t.Run("invalid width", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "presets.yaml")
		content := "presets:\n  - name: broken\n    num_channels: 8\n    address_size: 6\n    timestamp_size: 4\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, err := LoadPresets(path)
		require.ErrorIs(t, err, errs.ErrInvalidWidth)
	})

	t.Run("missing channels", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "presets.yaml")
		content := "presets:\n  - name: empty\n    address_size: 2\n    timestamp_size: 4\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, err := LoadPresets(path)
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "presets.yaml")
		require.NoError(t, os.WriteFile(path, []byte("presets: [unclosed"), 0o600))

		_, err := LoadPresets(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSaveLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "presets.yaml")
	require.NoError(t, SavePresets(path, BuiltinPresets()))

	loaded, err := LoadPresets(path)
	require.NoError(t, err)
	assert.Equal(t, BuiltinPresets(), loaded)
}

func TestMerge(t *testing.T) {
	override := Preset{
		Name:          "MATLAB",
		AddressSpace:  width.AddressSpace{Channels: 16},
		AddressSize:   1,
		TimestampSize: 4,
	}
	extra := Preset{Name: "custom", AddressSpace: width.AddressSpace{Channels: 1}, AddressSize: 1, TimestampSize: 1}

	merged := Merge(BuiltinPresets(), []Preset{override, extra})
	require.Len(t, merged, 5)

	p, err := Find(merged, "matlab")
	require.NoError(t, err)
	assert.Equal(t, uint32(16), p.AddressSpace.Channels)

	_, err = Find(merged, "custom")
	require.NoError(t, err)

	// The base slice is not modified.
	p, err = Find(BuiltinPresets(), "matlab")
	require.NoError(t, err)
	assert.Equal(t, uint32(64), p.AddressSpace.Channels)
}
