// Package errs defines the sentinel errors returned by aerzip packages.
//
// Errors are wrapped with context at the call site, so callers should match them
// with errors.Is rather than by equality:
//
//	if errors.Is(err, errs.ErrUnknownCompressor) {
//	    // ...
//	}
//
// None of these conditions are transient; the codec never retries.
package errs

import "errors"

// Width resolution and record packing errors.
var (
	// ErrWidthOverflow is returned when a quantity needs more than 4 bytes.
	ErrWidthOverflow = errors.New("width overflow: value needs more than 4 bytes")
	// ErrInvalidWidth is returned for a field width outside 1..4.
	ErrInvalidWidth = errors.New("invalid field width")
	// ErrValueTooLarge is returned when an address or timestamp does not fit its declared width.
	ErrValueTooLarge = errors.New("value too large for field width")
	// ErrIncompleteRecord is returned when a payload is not a whole number of records.
	ErrIncompleteRecord = errors.New("incomplete record: spikes are not a whole number")
)

// Compression errors.
var (
	// ErrUnknownCompressor is returned for a compressor identifier outside {ZSTD, LZ4, LZMA}.
	ErrUnknownCompressor = errors.New("unknown compressor")
	// ErrCorruptPayload is returned when a backend fails to decompress its input.
	ErrCorruptPayload = errors.New("corrupt payload")
)

// Header and container errors.
var (
	// ErrMalformedHeader is returned for an undersized header or an end-marker mismatch.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrExtensionFull is returned when an append would exceed the extension region.
	ErrExtensionFull = errors.New("header extension region is full")
	// ErrHeaderFinalized is returned when appending to a header builder after Build.
	ErrHeaderFinalized = errors.New("header already built")
	// ErrTruncatedFile is returned when a buffer is shorter than the header.
	ErrTruncatedFile = errors.New("truncated file")
	// ErrChecksumMismatch is returned when the payload checksum extension does not match.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
	// ErrFileExists is returned when writing over an existing file without overwrite.
	ErrFileExists = errors.New("compressed file already exists")
)
