package container

import (
	"fmt"

	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/internal/options"
	"github.com/arloliu/aerzip/section"
	"github.com/arloliu/aerzip/width"
	"go.uber.org/zap"
)

// EncoderConfig holds the settings of an Encoder.
//
// It is populated through EncoderOption values passed to NewEncoder and is not
// modified afterwards.
type EncoderConfig struct {
	compression format.CompressionType
	policy      format.WidthPolicy

	// Address width source, in order of precedence: explicit widths, declared address
	// space, declared address space size, observed maximum address.
	widths           *format.WidthSpec
	addressSpace     *width.AddressSpace
	addressSpaceSize uint64

	checksum          bool
	storeAddressSpace bool
	entries           []section.ExtensionEntry
	rawExtension      []byte

	logger *zap.Logger
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		compression: format.CompressionZstd,
		policy:      format.WidthPolicyMinimal,
		logger:      zap.NewNop(),
	}
}

// Compression returns the configured compression backend.
func (c *EncoderConfig) Compression() format.CompressionType {
	return c.compression
}

// Policy returns the configured width policy.
func (c *EncoderConfig) Policy() format.WidthPolicy {
	return c.policy
}

// addressSpaceBound returns the declared address space size, or 0 if none was declared.
func (c *EncoderConfig) addressSpaceBound() uint64 {
	if c.addressSpace != nil {
		return c.addressSpace.Size()
	}

	return c.addressSpaceSize
}

func (c *EncoderConfig) validate() error {
	if c.storeAddressSpace && c.addressSpace == nil {
		return fmt.Errorf("address space extension requested without an address space")
	}

	return nil
}

// WithCompression selects the compression backend. ZSTD is the default.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrUnknownCompressor, uint8(comp))
		}
		c.compression = comp

		return nil
	})
}

// WithCompressionName selects the compression backend by its header identifier
// ("ZSTD", "LZ4" or "LZMA", case-insensitive).
func WithCompressionName(name string) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		comp, err := format.ParseCompressionType(name)
		if err != nil {
			return err
		}
		c.compression = comp

		return nil
	})
}

// WithAddressSpace declares the sensor address space the events come from.
//
// The address width is derived from the size of the whole space rather than from the
// addresses present in one sequence, so every possible address is guaranteed to fit.
func WithAddressSpace(space width.AddressSpace) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.addressSpace = &space
	})
}

// WithAddressSpaceSize declares the number of distinct addresses directly.
// WithAddressSpace takes precedence when both are given.
func WithAddressSpaceSize(size uint64) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.addressSpaceSize = size
	})
}

// WithWidths fixes the record widths, bypassing width resolution.
func WithWidths(widths format.WidthSpec) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if err := widths.Validate(); err != nil {
			return err
		}
		c.widths = &widths

		return nil
	})
}

// WithWidthPolicy selects how resolved widths map to stored widths.
// WidthPolicyMinimal is the default.
func WithWidthPolicy(policy format.WidthPolicy) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		switch policy {
		case format.WidthPolicyMinimal, format.WidthPolicyFull:
			c.policy = policy
			return nil
		default:
			return fmt.Errorf("invalid width policy: %d", uint8(policy))
		}
	})
}

// WithChecksum stores an xxHash64 of the packed records in the header extension, which
// the decoder verifies. It detects accidental corruption only.
func WithChecksum(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.checksum = enabled
	})
}

// WithAddressSpaceExtension stores the declared address space in the header extension.
// It requires WithAddressSpace.
func WithAddressSpaceExtension(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.storeAddressSpace = enabled
	})
}

// WithExtensionEntry appends a caller-defined typed entry to the header extension.
// Entries are written after the built-in ones, in option order.
func WithExtensionEntry(tag section.ExtensionTag, value []byte) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if tag == section.ExtEnd {
			return fmt.Errorf("%w: tag 0 is reserved", errs.ErrMalformedHeader)
		}
		c.entries = append(c.entries, section.ExtensionEntry{Tag: tag, Value: append([]byte(nil), value...)})

		return nil
	})
}

// WithExtension appends raw bytes to the header extension after all typed entries.
//
// Raw bytes that do not follow the entry layout make the typed entries after them
// unreadable; use WithExtensionEntry unless the layout is managed by the caller.
func WithExtension(raw []byte) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.rawExtension = append(c.rawExtension, raw...)
	})
}

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(logger *zap.Logger) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}
