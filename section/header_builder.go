package section

import (
	"fmt"

	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
)

// HeaderBuilder constructs a FileHeader.
//
// The only mutation it allows is appending bytes to the bounded extension region through
// an append cursor. Build finalizes the header; later appends fail with
// errs.ErrHeaderFinalized. A builder must not be shared between goroutines.
type HeaderBuilder struct {
	header FileHeader
	cursor int
	built  bool
}

// NewHeaderBuilder creates a builder for a header of the current FormatVersion.
//
// Returns:
//   - *HeaderBuilder: Builder with an empty extension region
//   - error: errs.ErrUnknownCompressor or errs.ErrInvalidWidth
func NewHeaderBuilder(compression format.CompressionType, widths format.WidthSpec) (*HeaderBuilder, error) {
	if !compression.IsValid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCompressor, uint8(compression))
	}
	if err := widths.Validate(); err != nil {
		return nil, err
	}

	return &HeaderBuilder{
		header: FileHeader{
			Version:     format.FormatVersion,
			Compression: compression,
			Widths:      widths,
		},
	}, nil
}

// AppendExtension copies data into the extension region at the append cursor.
//
// Returns errs.ErrExtensionFull, leaving the region untouched, if data does not fit.
func (b *HeaderBuilder) AppendExtension(data []byte) error {
	if b.built {
		return errs.ErrHeaderFinalized
	}
	if len(data) > b.Available() {
		return fmt.Errorf("%w: need %d bytes, %d available", errs.ErrExtensionFull, len(data), b.Available())
	}

	b.cursor += copy(b.header.Extension[b.cursor:], data)

	return nil
}

// AppendEntry appends a typed extension entry (tag, length, value).
func (b *HeaderBuilder) AppendEntry(tag ExtensionTag, value []byte) error {
	entry, err := encodeEntry(tag, value)
	if err != nil {
		return err
	}

	return b.AppendExtension(entry)
}

// Available returns the number of unused bytes left in the extension region.
func (b *HeaderBuilder) Available() int {
	return ExtensionSize - b.cursor
}

// Build finalizes and returns the header.
func (b *HeaderBuilder) Build() FileHeader {
	b.built = true
	return b.header
}
