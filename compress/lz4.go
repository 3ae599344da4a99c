package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/internal/pool"
	"github.com/pierrec/lz4/v4"
)

// lz4WriterPool pools frame writers; Reset rebinds them to a new destination.
var lz4WriterPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(nil)
	},
}

// lz4ReaderPool pools frame readers.
var lz4ReaderPool = sync.Pool{
	New: func() any {
		return lz4.NewReader(nil)
	},
}

// LZ4Compressor provides LZ4 frame compression.
//
// The LZ4 frame format is self-describing (magic number, block sizes, end mark), so
// the decompressed size need not be known in advance. It trades ratio for very fast
// decompression.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data into a single LZ4 frame.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Compressed frame (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	zw, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(zw)
	zw.Reset(buf)

	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// Decompress decompresses an LZ4 frame.
//
// Returns errs.ErrCorruptPayload if data is not a valid LZ4 frame.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, _ := lz4ReaderPool.Get().(*lz4.Reader)
	defer lz4ReaderPool.Put(zr)
	zr.Reset(bytes.NewReader(data))

	decompressed, err := io.ReadAll(zr)
	if err != nil {
		return nil, corrupt(c.Type(), err)
	}

	return decompressed, nil
}
