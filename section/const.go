package section

import "github.com/arloliu/aerzip/format"

// Field offsets and sizes of the fixed-layout file header.
//
// These are part of the format: changing any of them within a format version breaks
// every reader, since there is no length prefix to recover offsets from.
const (
	VersionOffset = 0  // byte offset of the library version string
	VersionSize   = 20 // space-padded library version string

	CompressorOffset = VersionOffset + VersionSize // 20
	CompressorSize   = 10                          // space-padded compressor identifier

	AddressWidthOffset = CompressorOffset + CompressorSize // 30
	AddressWidthSize   = 4                                 // big-endian uint32

	TimestampWidthOffset = AddressWidthOffset + AddressWidthSize // 34
	TimestampWidthSize   = 4                                     // big-endian uint32

	ExtensionOffset = TimestampWidthOffset + TimestampWidthSize // 38
	ExtensionSize   = 40                                        // zero-padded, append-only

	EndMarkerOffset = ExtensionOffset + ExtensionSize // 78
	EndMarkerSize   = 22                              // len(EndMarker)

	HeaderSize = EndMarkerOffset + EndMarkerSize // 100, payload starts here
)

// EndMarker terminates every header. It is the end-of-header line of generic AEDAT files.
const EndMarker = "#End Of ASCII Header\r\n"

// textPadding fills unused bytes of the version and compressor fields.
const textPadding = ' '

// knownVersions lists the format versions whose extension layout this reader understands.
var knownVersions = map[string]struct{}{
	format.FormatVersion: {},
}
