package container

import (
	"fmt"

	"github.com/arloliu/aerzip/compress"
	"github.com/arloliu/aerzip/encoding"
	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/internal/hash"
	"github.com/arloliu/aerzip/internal/options"
	"github.com/arloliu/aerzip/section"
	"github.com/arloliu/aerzip/width"
	"go.uber.org/zap"
)

// Encoder turns event sequences into complete aerzip files.
//
// An Encoder holds configuration only. Each Encode call is independent, so an Encoder
// may be reused and shared between goroutines.
type Encoder struct {
	*EncoderConfig
	codec compress.Codec
}

// NewEncoder creates an encoder with the given options.
//
// Defaults: ZSTD compression, WidthPolicyMinimal, no checksum, no address space. Without
// a declared address space the address width is derived from the largest address in
// each encoded sequence.
//
// Returns:
//   - *Encoder: Configured encoder
//   - error: The first option error, or errs.ErrUnknownCompressor
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "payload")
	if err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: cfg, codec: codec}, nil
}

// Encode packs, compresses and frames events into a single file buffer.
//
// Returns:
//   - []byte: Header followed by the compressed payload
//   - error: errs.ErrWidthOverflow, errs.ErrValueTooLarge, errs.ErrExtensionFull or a
//     compression error
func (e *Encoder) Encode(events []encoding.Event) ([]byte, error) {
	data, _, err := e.EncodeWithStats(events)
	return data, err
}

// EncodeWithStats is Encode that also reports payload compression statistics.
func (e *Encoder) EncodeWithStats(events []encoding.Event) ([]byte, compress.CompressionStats, error) {
	widths, err := e.ResolveWidths(events)
	if err != nil {
		return nil, compress.CompressionStats{}, err
	}

	packed, err := encoding.Pack(events, widths)
	if err != nil {
		return nil, compress.CompressionStats{}, err
	}

	payload, stats, err := compress.Measure(e.codec, packed)
	if err != nil {
		return nil, compress.CompressionStats{}, fmt.Errorf("compress payload: %w", err)
	}

	header, err := e.buildHeader(widths, packed)
	if err != nil {
		return nil, compress.CompressionStats{}, err
	}

	e.logger.Debug("encoded spike file",
		zap.Int("events", len(events)),
		zap.Stringer("compression", e.compression),
		zap.Uint8("address_width", widths.AddressWidth),
		zap.Uint8("timestamp_width", widths.TimestampWidth),
		zap.Int64("packed_bytes", stats.OriginalSize),
		zap.Int64("payload_bytes", stats.CompressedSize),
		zap.Float64("space_savings_pct", stats.SpaceSavings()),
		zap.Int64("compress_ns", stats.CompressionTimeNs),
	)

	data, err := Assemble(header, payload)
	if err != nil {
		return nil, compress.CompressionStats{}, err
	}

	return data, stats, nil
}

// ResolveWidths returns the stored record widths for events under this configuration.
//
// Explicit widths from WithWidths are used as given. Otherwise the address width comes
// from the declared address space (or the largest address present when none was
// declared) and the timestamp width from the largest timestamp. The width policy is
// applied last.
func (e *Encoder) ResolveWidths(events []encoding.Event) (format.WidthSpec, error) {
	if e.widths != nil {
		return e.policy.Apply(*e.widths), nil
	}

	spaceSize := e.addressSpaceBound()
	if spaceSize == 0 {
		spaceSize = uint64(maxAddress(events)) + 1
	}

	resolved, err := width.Resolve(spaceSize, uint64(encoding.MaxTimestamp(events)))
	if err != nil {
		return format.WidthSpec{}, err
	}

	return e.policy.Apply(resolved), nil
}

func (e *Encoder) buildHeader(widths format.WidthSpec, packed []byte) (section.FileHeader, error) {
	b, err := section.NewHeaderBuilder(e.compression, widths)
	if err != nil {
		return section.FileHeader{}, err
	}

	if e.storeAddressSpace {
		if err := b.AppendAddressSpace(*e.addressSpace); err != nil {
			return section.FileHeader{}, err
		}
	}
	if e.checksum {
		if err := b.AppendChecksum(hash.Checksum(packed)); err != nil {
			return section.FileHeader{}, err
		}
	}
	for _, entry := range e.entries {
		if err := b.AppendEntry(entry.Tag, entry.Value); err != nil {
			return section.FileHeader{}, err
		}
	}
	if len(e.rawExtension) > 0 {
		if err := b.AppendExtension(e.rawExtension); err != nil {
			return section.FileHeader{}, err
		}
	}

	return b.Build(), nil
}

func maxAddress(events []encoding.Event) uint32 {
	var maxAddr uint32
	for _, ev := range events {
		if ev.Address > maxAddr {
			maxAddr = ev.Address
		}
	}

	return maxAddr
}
