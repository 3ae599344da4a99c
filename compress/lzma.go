package compress

import (
	"bytes"
	"io"

	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/internal/pool"
	"github.com/ulikunitz/xz/lzma"
)

// LZMACompressor provides classic LZMA (.lzma) compression.
//
// LZMA reaches the best ratio of the three backends but is by far the slowest to
// compress, which is why it pairs well with WidthPolicyMinimal: pruned records mean
// fewer bytes through the encoder.
type LZMACompressor struct{}

var _ Codec = (*LZMACompressor)(nil)

// NewLZMACompressor creates a new LZMA compressor.
func NewLZMACompressor() LZMACompressor {
	return LZMACompressor{}
}

// Type returns format.CompressionLZMA.
func (c LZMACompressor) Type() format.CompressionType {
	return format.CompressionLZMA
}

// Compress compresses the input data as an LZMA stream terminated by an end marker.
func (c LZMACompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	w, err := lzma.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Clone(), nil
}

// Decompress decompresses an LZMA stream.
//
// Returns errs.ErrCorruptPayload if data is not a valid LZMA stream.
func (c LZMACompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, corrupt(c.Type(), err)
	}

	decompressed, err := io.ReadAll(r)
	if err != nil {
		return nil, corrupt(c.Type(), err)
	}

	return decompressed, nil
}
