package compress

import "github.com/arloliu/aerzip/format"

// ZstdCompressor provides Zstandard compression for packed spike records.
//
// Zstd gives the best ratio/speed balance on spike data, where addresses repeat
// within a small alphabet and timestamps grow slowly, and is the default backend.
//
// The default build uses the pure-Go klauspost/compress implementation. Building with
// cgo and the gozstd tag switches to valyala/gozstd; both produce standard zstd frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(records)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
