package compress

import (
	"fmt"
	"time"

	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
)

// Compressor compresses a whole in-memory buffer of packed spike records.
type Compressor interface {
	// Type returns the backend identifier written to the file header.
	Type() format.CompressionType

	// Compress compresses the input data and returns the compressed result.
	//
	// Compression is deterministic for a given backend version and input. An empty
	// input yields an empty output.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same backend.
//
// Example:
//
//	codec, _ := compress.GetCodec(header.Compression)
//	records, err := codec.Decompress(payload)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// Thread Safety: Decompressor implementations must be safe for concurrent use.
type Decompressor interface {
	// Type returns the backend identifier written to the file header.
	Type() format.CompressionType

	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns errs.ErrCorruptPayload, naming the backend, if the input is not valid
	//     output of this backend
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats provides detailed information about compression operations.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data (if applicable)
	DecompressionTimeNs int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses data with c and records sizes and elapsed time.
func Measure(c Compressor, data []byte) ([]byte, CompressionStats, error) {
	start := time.Now()
	compressed, err := c.Compress(data)
	elapsed := time.Since(start)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return compressed, CompressionStats{
		Algorithm:         c.Type(),
		OriginalSize:      int64(len(data)),
		CompressedSize:    int64(len(compressed)),
		CompressionTimeNs: elapsed.Nanoseconds(),
	}, nil
}

// MeasureDecompress decompresses data with d and records sizes and elapsed time.
func MeasureDecompress(d Decompressor, data []byte) ([]byte, CompressionStats, error) {
	start := time.Now()
	decompressed, err := d.Decompress(data)
	elapsed := time.Since(start)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	return decompressed, CompressionStats{
		Algorithm:           d.Type(),
		OriginalSize:        int64(len(decompressed)),
		CompressedSize:      int64(len(data)),
		DecompressionTimeNs: elapsed.Nanoseconds(),
	}, nil
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (Zstd, LZ4 or LZMA)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: errs.ErrUnknownCompressor for any other type; there is no fallback
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionLZMA:
		return NewLZMACompressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %d", errs.ErrUnknownCompressor, target, uint8(compressionType))
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionLZMA: NewLZMACompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: unsupported compression type: %d", errs.ErrUnknownCompressor, uint8(compressionType))
}

// corrupt wraps a backend failure as errs.ErrCorruptPayload naming the backend.
func corrupt(t format.CompressionType, err error) error {
	return fmt.Errorf("%w: %s: %w", errs.ErrCorruptPayload, t, err)
}
