package container

import (
	"fmt"

	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/section"
)

// Assemble concatenates the serialized header and the compressed payload.
//
// The header is validated first, so a file that Disassemble would reject is never
// produced. The returned slice is newly allocated; payload is not retained.
//
// Returns:
//   - []byte: Header followed by payload
//   - error: errs.ErrUnknownCompressor, errs.ErrInvalidWidth or errs.ErrMalformedHeader
func Assemble(h section.FileHeader, payload []byte) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	out := make([]byte, 0, section.HeaderSize+len(payload))
	out = append(out, h.Bytes()...)

	return append(out, payload...), nil
}

// Disassemble splits a file into its header and compressed payload.
//
// The payload is a sub-slice of data and runs to the end of the buffer.
//
// Returns:
//   - section.FileHeader: Parsed and validated header
//   - []byte: Compressed payload, possibly empty
//   - error: errs.ErrTruncatedFile if data is shorter than the header, or any header
//     parsing error
func Disassemble(data []byte) (section.FileHeader, []byte, error) {
	if len(data) < section.HeaderSize {
		return section.FileHeader{}, nil, fmt.Errorf("%w: %d bytes, header needs %d",
			errs.ErrTruncatedFile, len(data), section.HeaderSize)
	}

	h, err := section.ParseFileHeader(data)
	if err != nil {
		return section.FileHeader{}, nil, err
	}

	return h, data[section.HeaderSize:], nil
}
