package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBadWidth = errors.New("bad width")

type packConfig struct {
	width    int
	checksum bool
	order    []string
}

func withWidth(w int) Option[*packConfig] {
	return New(func(c *packConfig) error {
		if w < 1 || w > 4 {
			return errBadWidth
		}
		c.width = w
		c.order = append(c.order, "width")

		return nil
	})
}

func withChecksum() Option[*packConfig] {
	return NoError(func(c *packConfig) {
		c.checksum = true
		c.order = append(c.order, "checksum")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &packConfig{}
		err := Apply(cfg, withChecksum(), withWidth(3))
		require.NoError(t, err)
		require.Equal(t, 3, cfg.width)
		require.True(t, cfg.checksum)
		require.Equal(t, []string{"checksum", "width"}, cfg.order)
	})

	t.Run("later options win", func(t *testing.T) {
		cfg := &packConfig{}
		require.NoError(t, Apply(cfg, withWidth(1), withWidth(2)))
		require.Equal(t, 2, cfg.width)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &packConfig{}
		err := Apply(cfg, withWidth(2), withWidth(5), withChecksum())
		require.ErrorIs(t, err, errBadWidth)
		require.Equal(t, 2, cfg.width)
		require.False(t, cfg.checksum)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &packConfig{width: 4}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 4, cfg.width)
	})

	t.Run("nil option is skipped", func(t *testing.T) {
		cfg := &packConfig{}
		require.NoError(t, Apply(cfg, nil, withChecksum()))
		require.True(t, cfg.checksum)
	})
}

func TestNoError(t *testing.T) {
	cfg := &packConfig{}
	opt := NoError(func(c *packConfig) { c.width = 4 })
	require.NoError(t, opt.apply(cfg))
	require.Equal(t, 4, cfg.width)
}
