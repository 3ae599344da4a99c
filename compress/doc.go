// Package compress provides the block compression backends of the aerzip format.
//
// Packed spike records are compressed as one whole in-memory buffer by one of three
// interchangeable backends, identified by format.CompressionType:
//
//   - ZSTD: Zstandard (klauspost/compress, or valyala/gozstd with -tags gozstd and cgo)
//   - LZ4:  LZ4 frame format (pierrec/lz4/v4)
//   - LZMA: classic LZMA stream with end marker (ulikunitz/xz/lzma)
//
// The backend identifier, not a hash of the output, is what the file header stores:
// compressed bytes may legitimately differ between library versions, while the
// decompressed bytes never do.
//
// # Architecture
//
//	type Compressor interface {
//	    Type() format.CompressionType
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Type() format.CompressionType
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Dispatch is a lookup on the closed enumeration; adding a backend means adding a
// CompressionType, a Codec implementation and a GetCodec entry, never touching callers:
//
//	codec, err := compress.GetCodec(format.CompressionLZ4)
//	compressed, err := codec.Compress(records)
//	original, err := codec.Decompress(compressed)
//
// An unrecognized type returns errs.ErrUnknownCompressor. There is no fallback
// backend, since a file written with a substitute would not match its header.
//
// # Choosing a Backend
//
// | Backend | Ratio on spike data | Compress speed | Decompress speed |
// |---------|---------------------|----------------|------------------|
// | ZSTD    | good                | fast           | fast             |
// | LZ4     | moderate            | very fast      | very fast        |
// | LZMA    | best                | slow           | moderate         |
//
// # Error Handling
//
// Decompression failures are wrapped as errs.ErrCorruptPayload and name the backend,
// for example "corrupt payload: LZ4: lz4: bad magic number".
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use; internal encoders,
// decoders and scratch buffers are recycled through sync.Pool.
package compress
