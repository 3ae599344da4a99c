package container

import (
	"fmt"

	"github.com/arloliu/aerzip/compress"
	"github.com/arloliu/aerzip/encoding"
	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/internal/hash"
	"github.com/arloliu/aerzip/internal/options"
	"github.com/arloliu/aerzip/section"
	"github.com/arloliu/aerzip/width"
	"go.uber.org/zap"
)

// Result is a decoded aerzip file.
type Result struct {
	// Header is the parsed file header.
	Header section.FileHeader
	// Events are the decoded events in stored order.
	Events []encoding.Event
	// Widths are the native widths of the decoded values (3-byte fields reported as 4).
	Widths format.WidthSpec
	// Stats describe the payload decompression.
	Stats compress.CompressionStats
}

// AddressSpace returns the address space stored in the header extension, if any.
func (r Result) AddressSpace() (width.AddressSpace, bool) {
	entry, ok, err := r.Header.Lookup(section.ExtAddressSpace)
	if err != nil || !ok {
		return width.AddressSpace{}, false
	}

	space, err := entry.AddressSpace()
	if err != nil {
		return width.AddressSpace{}, false
	}

	return space, true
}

// DecoderConfig holds the settings of a Decoder.
type DecoderConfig struct {
	verifyChecksum bool
	logger         *zap.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithChecksumVerification enables or disables payload checksum verification.
// It is enabled by default and only applies to files that carry a checksum.
func WithChecksumVerification(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.verifyChecksum = enabled
	})
}

// WithDecoderLogger sets the logger used for debug output.
func WithDecoderLogger(logger *zap.Logger) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// Decoder turns aerzip files back into event sequences.
//
// A Decoder holds configuration only and may be shared between goroutines.
type Decoder struct {
	*DecoderConfig
}

// NewDecoder creates a decoder with the given options.
func NewDecoder(opts ...DecoderOption) *Decoder {
	cfg := &DecoderConfig{
		verifyChecksum: true,
		logger:         zap.NewNop(),
	}
	// Decoder options cannot fail.
	_ = options.Apply(cfg, opts...)

	return &Decoder{DecoderConfig: cfg}
}

// Decode reverses Encoder.Encode.
//
// Returns:
//   - Result: Header, events and native widths
//   - error: errs.ErrTruncatedFile, errs.ErrMalformedHeader, errs.ErrUnknownCompressor,
//     errs.ErrCorruptPayload, errs.ErrChecksumMismatch or errs.ErrIncompleteRecord
func (d *Decoder) Decode(data []byte) (Result, error) {
	header, payload, err := Disassemble(data)
	if err != nil {
		return Result{}, err
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return Result{}, err
	}

	packed, stats, err := compress.MeasureDecompress(codec, payload)
	if err != nil {
		return Result{}, err
	}

	if d.verifyChecksum {
		if err := verifyChecksum(&header, packed); err != nil {
			return Result{}, err
		}
	}

	events, native, err := encoding.Unpack(packed, header.Widths)
	if err != nil {
		return Result{}, err
	}

	d.logger.Debug("decoded spike file",
		zap.String("version", header.Version),
		zap.Stringer("compression", header.Compression),
		zap.Int("events", len(events)),
		zap.Int64("payload_bytes", stats.CompressedSize),
		zap.Int64("packed_bytes", stats.OriginalSize),
		zap.Int64("decompress_ns", stats.DecompressionTimeNs),
	)

	return Result{
		Header: header,
		Events: events,
		Widths: native,
		Stats:  stats,
	}, nil
}

func verifyChecksum(header *section.FileHeader, packed []byte) error {
	entry, ok, err := header.Lookup(section.ExtPayloadChecksum)
	if err != nil && !ok {
		return err
	}
	if !ok {
		return nil
	}

	sum, err := entry.Checksum()
	if err != nil {
		return err
	}
	if !hash.Verify(packed, sum) {
		return fmt.Errorf("%w: header has %016x, payload hashes to %016x",
			errs.ErrChecksumMismatch, sum, hash.Checksum(packed))
	}

	return nil
}
