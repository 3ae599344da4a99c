package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/aerzip/errs"
)

type (
	CompressionType uint8
	WidthPolicy     uint8
)

const (
	CompressionZstd CompressionType = 0x1 // CompressionZstd represents Zstandard compression.
	CompressionLZ4  CompressionType = 0x2 // CompressionLZ4 represents LZ4 frame compression.
	CompressionLZMA CompressionType = 0x3 // CompressionLZMA represents LZMA compression.

	WidthPolicyMinimal WidthPolicy = 0x1 // WidthPolicyMinimal stores records at the resolved widths.
	WidthPolicyFull    WidthPolicy = 0x2 // WidthPolicyFull always stores 4-byte addresses and timestamps.
)

// FormatVersion is the library version string written at the start of every header.
const FormatVersion = "AERzip v0.8.0"

// MaxFieldWidth is the widest field, in bytes, the format can represent.
const MaxFieldWidth = 4

// String returns the identifier stored in the header compressor field.
func (c CompressionType) String() string {
	switch c {
	case CompressionZstd:
		return "ZSTD"
	case CompressionLZ4:
		return "LZ4"
	case CompressionLZMA:
		return "LZMA"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is one of the supported backends.
func (c CompressionType) IsValid() bool {
	switch c {
	case CompressionZstd, CompressionLZ4, CompressionLZMA:
		return true
	default:
		return false
	}
}

// CompressionTypeFromIdentifier maps an exact header identifier ("ZSTD", "LZ4", "LZMA")
// to its CompressionType. No case folding or trimming is applied.
func CompressionTypeFromIdentifier(id string) (CompressionType, error) {
	for _, c := range []CompressionType{CompressionZstd, CompressionLZ4, CompressionLZMA} {
		if c.String() == id {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCompressor, id)
}

// ParseCompressionType parses a user-supplied compressor name such as "zstd".
//
// Surrounding whitespace is ignored and matching is case-insensitive; header fields go
// through CompressionTypeFromIdentifier instead.
// Identifiers outside {ZSTD, LZ4, LZMA} return errs.ErrUnknownCompressor.
func ParseCompressionType(s string) (CompressionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ZSTD":
		return CompressionZstd, nil
	case "LZ4":
		return CompressionLZ4, nil
	case "LZMA":
		return CompressionLZMA, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCompressor, s)
	}
}

func (p WidthPolicy) String() string {
	switch p {
	case WidthPolicyMinimal:
		return "minimal"
	case WidthPolicyFull:
		return "full"
	default:
		return "Unknown"
	}
}

// ParseWidthPolicy parses "minimal" or "full".
func ParseWidthPolicy(s string) (WidthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal", "":
		return WidthPolicyMinimal, nil
	case "full":
		return WidthPolicyFull, nil
	default:
		return 0, fmt.Errorf("invalid width policy: %q", s)
	}
}
