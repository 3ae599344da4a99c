// Package config loads sensor presets: the address space and raw record layout of a
// spike source.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/width"
	"gopkg.in/yaml.v3"
)

// Preset describes a spike source.
type Preset struct {
	Name string `yaml:"name"`
	// AddressSpace is the declared address domain of the sensor.
	AddressSpace width.AddressSpace `yaml:",inline"`
	// AddressSize and TimestampSize are the field widths of the raw, uncompressed
	// records the source produces.
	AddressSize   uint8 `yaml:"address_size"`
	TimestampSize uint8 `yaml:"timestamp_size"`
	// TimestampTick is the timestamp unit in microseconds. It is informational only.
	TimestampTick float64 `yaml:"ts_tick"`
}

// PresetFile is the on-disk layout of a presets file.
type PresetFile struct {
	Presets []Preset `yaml:"presets"`
}

// SourceWidths returns the raw record layout of the source.
func (p Preset) SourceWidths() format.WidthSpec {
	return format.WidthSpec{AddressWidth: p.AddressSize, TimestampWidth: p.TimestampSize}
}

// Validate checks that the preset is usable.
func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("preset without a name")
	}
	if p.AddressSpace.Channels == 0 {
		return fmt.Errorf("preset %s: num_channels must be positive", p.Name)
	}
	if err := p.SourceWidths().Validate(); err != nil {
		return fmt.Errorf("preset %s: %w", p.Name, err)
	}

	return nil
}

// BuiltinPresets returns the presets for the common recording setups: jAER and the
// MATLAB NAS tools.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Name:          "jaer",
			AddressSpace:  width.AddressSpace{Channels: 64, Stereo: true, OnOffBoth: true},
			AddressSize:   4,
			TimestampSize: 4,
			TimestampTick: 1,
		},
		{
			Name:          "matlab",
			AddressSpace:  width.AddressSpace{Channels: 64, Stereo: true, OnOffBoth: true},
			AddressSize:   2,
			TimestampSize: 4,
			TimestampTick: 0.2,
		},
		{
			Name:          "matlab-mono",
			AddressSpace:  width.AddressSpace{Channels: 64, OnOffBoth: true},
			AddressSize:   2,
			TimestampSize: 4,
			TimestampTick: 0.2,
		},
		{
			Name:          "matlab-32ch-mono",
			AddressSpace:  width.AddressSpace{Channels: 32, OnOffBoth: true},
			AddressSize:   2,
			TimestampSize: 4,
			TimestampTick: 0.2,
		},
	}
}

// LoadPresets reads and validates a presets file.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var file PresetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	for _, p := range file.Presets {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return file.Presets, nil
}

// SavePresets writes presets to path, creating the parent directory.
func SavePresets(path string, presets []Preset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create presets directory: %w", err)
	}

	data, err := yaml.Marshal(PresetFile{Presets: presets})
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	return nil
}

// Merge returns base with overrides applied: a preset in overrides replaces the base
// preset of the same name, and new names are appended.
func Merge(base, overrides []Preset) []Preset {
	merged := make([]Preset, 0, len(base)+len(overrides))
	merged = append(merged, base...)

	for _, o := range overrides {
		replaced := false
		for i := range merged {
			if strings.EqualFold(merged[i].Name, o.Name) {
				merged[i] = o
				replaced = true

				break
			}
		}
		if !replaced {
			merged = append(merged, o)
		}
	}

	return merged
}

// Find returns the preset with the given name (case-insensitive).
func Find(presets []Preset, name string) (Preset, error) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}

	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}

	return Preset{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(names, ", "))
}
