package section

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arloliu/aerzip/endian"
	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
)

// FileHeader is the fixed-size metadata record at the start of every compressed file.
//
// The layout never depends on field values, only on the field declarations in const.go:
//
//	offset  size  field
//	     0    20  Version         space-padded text
//	    20    10  Compression     space-padded text ("ZSTD", "LZ4", "LZMA")
//	    30     4  AddressWidth    big-endian uint32, 1..4
//	    34     4  TimestampWidth  big-endian uint32, 1..4
//	    38    40  Extension       zero-padded bytes
//	    78    22  end marker      "#End Of ASCII Header\r\n"
//
// A FileHeader is built with HeaderBuilder or obtained from ParseFileHeader, and
// treated as immutable afterwards.
type FileHeader struct {
	// Version is the library version that wrote the file, e.g. "AERzip v0.8.0".
	Version string
	// Compression identifies the backend that compressed the payload.
	Compression format.CompressionType
	// Widths are the on-disk field widths of each packed record.
	Widths format.WidthSpec
	// Extension is the reserved region for forward-compatible metadata.
	Extension [ExtensionSize]byte
}

// Validate reports whether the header can be serialized into a readable file.
//
// Returns:
//   - error: errs.ErrUnknownCompressor for an unsupported backend, errs.ErrInvalidWidth
//     for widths outside 1..4, errs.ErrMalformedHeader for a Version that does not fit
func (h *FileHeader) Validate() error {
	if !h.Compression.IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrUnknownCompressor, uint8(h.Compression))
	}
	if err := h.Widths.Validate(); err != nil {
		return err
	}
	if len(h.Version) > VersionSize {
		return fmt.Errorf("%w: version %q exceeds %d bytes", errs.ErrMalformedHeader, h.Version, VersionSize)
	}

	return nil
}

// Bytes serializes the header into exactly HeaderSize bytes.
//
// Bytes does not validate; call Validate first for headers not built by HeaderBuilder.
func (h *FileHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetBigEndianEngine()

	putText(b[VersionOffset:VersionOffset+VersionSize], h.Version)
	putText(b[CompressorOffset:CompressorOffset+CompressorSize], h.Compression.String())
	engine.PutUint32(b[AddressWidthOffset:], uint32(h.Widths.AddressWidth))
	engine.PutUint32(b[TimestampWidthOffset:], uint32(h.Widths.TimestampWidth))
	copy(b[ExtensionOffset:ExtensionOffset+ExtensionSize], h.Extension[:])
	copy(b[EndMarkerOffset:HeaderSize], EndMarker)

	return b
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: errs.ErrMalformedHeader for a wrong size, end-marker mismatch or invalid
//     width; errs.ErrUnknownCompressor for an unsupported compressor identifier
func (h *FileHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", errs.ErrMalformedHeader, len(data), HeaderSize)
	}

	// The end marker is checked first so that a non-aerzip buffer is reported as such.
	if !bytes.Equal(data[EndMarkerOffset:HeaderSize], []byte(EndMarker)) {
		return fmt.Errorf("%w: end marker mismatch", errs.ErrMalformedHeader)
	}

	engine := endian.GetBigEndianEngine()

	compression, err := format.CompressionTypeFromIdentifier(getText(data[CompressorOffset : CompressorOffset+CompressorSize]))
	if err != nil {
		return err
	}

	aw := engine.Uint32(data[AddressWidthOffset:])
	tw := engine.Uint32(data[TimestampWidthOffset:])
	if aw > format.MaxFieldWidth || tw > format.MaxFieldWidth {
		return fmt.Errorf("%w: %w: address width %d, timestamp width %d",
			errs.ErrMalformedHeader, errs.ErrInvalidWidth, aw, tw)
	}
	widths := format.WidthSpec{AddressWidth: uint8(aw), TimestampWidth: uint8(tw)}
	if err := widths.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrMalformedHeader, err)
	}

	h.Version = getText(data[VersionOffset : VersionOffset+VersionSize])
	h.Compression = compression
	h.Widths = widths
	copy(h.Extension[:], data[ExtensionOffset:ExtensionOffset+ExtensionSize])

	return nil
}

// KnowsExtensionLayout reports whether this reader understands the extension layout of
// the writer's format version. If not, Extension must be treated as opaque bytes.
func (h *FileHeader) KnowsExtensionLayout() bool {
	_, ok := knownVersions[h.Version]
	return ok
}

// ParseFileHeader parses a FileHeader from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least HeaderSize bytes)
//
// Returns:
//   - FileHeader: Parsed header struct
//   - error: errs.ErrMalformedHeader or errs.ErrUnknownCompressor
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < HeaderSize {
		return FileHeader{}, fmt.Errorf("%w: need %d bytes, got %d", errs.ErrMalformedHeader, HeaderSize, len(data))
	}

	h := FileHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return FileHeader{}, err
	}

	return h, nil
}

// putText writes s left-justified into dst and pads the rest with spaces.
func putText(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = textPadding
	}
}

// getText decodes a padded text field.
func getText(src []byte) string {
	return strings.TrimRight(string(src), " \x00")
}
