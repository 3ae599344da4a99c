package container

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/aerzip/compress"
	"github.com/arloliu/aerzip/encoding"
	"github.com/arloliu/aerzip/endian"
	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/section"
	"github.com/arloliu/aerzip/width"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var allCompressions = []format.CompressionType{
	format.CompressionZstd,
	format.CompressionLZ4,
	format.CompressionLZMA,
}

// nasEvents generates events from a 64-channel stereo on/off sensor (256 addresses).
func nasEvents(n int) []encoding.Event {
	rng := rand.New(rand.NewSource(42))
	events := make([]encoding.Event, n)
	ts := uint32(0)
	for i := range events {
		ts += uint32(rng.Intn(50))
		events[i] = encoding.Event{Address: uint32(rng.Intn(256)), Timestamp: ts}
	}

	return events
}

func TestAssembleDisassemble(t *testing.T) {
	b, err := section.NewHeaderBuilder(format.CompressionLZ4, format.WidthSpec{AddressWidth: 1, TimestampWidth: 2})
	require.NoError(t, err)
	header := b.Build()
	payload := []byte("compressed payload")

	data, err := Assemble(header, payload)
	require.NoError(t, err)
	require.Len(t, data, section.HeaderSize+len(payload))
	require.Equal(t, header.Bytes(), data[:section.HeaderSize])

	parsed, gotPayload, err := Disassemble(data)
	require.NoError(t, err)
	require.Equal(t, header, parsed)
	require.Equal(t, payload, gotPayload)

	t.Run("Empty payload", func(t *testing.T) {
		data, err := Assemble(header, nil)
		require.NoError(t, err)
		parsed, gotPayload, err := Disassemble(data)
		require.NoError(t, err)
		require.Equal(t, header, parsed)
		require.Empty(t, gotPayload)
	})

	t.Run("Invalid header is rejected", func(t *testing.T) {
		_, err := Assemble(section.FileHeader{}, payload)
		require.ErrorIs(t, err, errs.ErrUnknownCompressor)

		bad := header
		bad.Widths = format.WidthSpec{AddressWidth: 0, TimestampWidth: 2}
		_, err = Assemble(bad, payload)
		require.ErrorIs(t, err, errs.ErrInvalidWidth)

		bad = header
		bad.Compression = format.CompressionType(0x7F)
		_, err = Assemble(bad, payload)
		require.ErrorIs(t, err, errs.ErrUnknownCompressor)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, _, err := Disassemble(data[:section.HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrTruncatedFile)

		_, _, err = Disassemble(nil)
		require.ErrorIs(t, err, errs.ErrTruncatedFile)
	})

	t.Run("Bad end marker", func(t *testing.T) {
		corrupted := bytes.Clone(data)
		corrupted[section.EndMarkerOffset] = 'X'
		_, _, err := Disassemble(corrupted)
		require.ErrorIs(t, err, errs.ErrMalformedHeader)
	})
}

func TestEncode_KnownLayout(t *testing.T) {
	events := []encoding.Event{{Address: 5, Timestamp: 100}, {Address: 300, Timestamp: 65600}}

	enc, err := NewEncoder(
		WithCompression(format.CompressionZstd),
		WithAddressSpaceSize(512),
	)
	require.NoError(t, err)

	widths, err := enc.ResolveWidths(events)
	require.NoError(t, err)
	require.Equal(t, format.WidthSpec{AddressWidth: 2, TimestampWidth: 3}, widths)

	data, err := enc.Encode(events)
	require.NoError(t, err)

	require.Equal(t, "ZSTD      ", string(data[section.CompressorOffset:section.AddressWidthOffset]))
	require.Equal(t, []byte{0, 0, 0, 2, 0, 0, 0, 3}, data[section.AddressWidthOffset:section.ExtensionOffset])

	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	packed, err := codec.Decompress(data[section.HeaderSize:])
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x05, 0x00, 0x00, 0x64, 0x01, 0x2C, 0x01, 0x00, 0x40}, packed)

	result, err := NewDecoder().Decode(data)
	require.NoError(t, err)
	require.Equal(t, events, result.Events)
	require.Equal(t, format.WidthSpec{AddressWidth: 2, TimestampWidth: 4}, result.Widths)
	require.Equal(t, format.WidthSpec{AddressWidth: 2, TimestampWidth: 3}, result.Header.Widths)
	require.Equal(t, format.FormatVersion, result.Header.Version)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	events := nasEvents(5000)
	space := width.AddressSpace{Channels: 64, Stereo: true, OnOffBoth: true}

	for _, comp := range allCompressions {
		for _, policy := range []format.WidthPolicy{format.WidthPolicyMinimal, format.WidthPolicyFull} {
			t.Run(comp.String()+"/"+policy.String(), func(t *testing.T) {
				enc, err := NewEncoder(
					WithCompression(comp),
					WithAddressSpace(space),
					WithWidthPolicy(policy),
					WithChecksum(true),
					WithAddressSpaceExtension(true),
				)
				require.NoError(t, err)

				data, err := enc.Encode(events)
				require.NoError(t, err)

				result, err := NewDecoder().Decode(data)
				require.NoError(t, err)
				require.Equal(t, events, result.Events)
				require.Equal(t, comp, result.Header.Compression)

				if policy == format.WidthPolicyFull {
					require.Equal(t, format.FullWidths, result.Header.Widths)
				} else {
					require.Equal(t, uint8(1), result.Header.Widths.AddressWidth)
				}

				gotSpace, ok := result.AddressSpace()
				require.True(t, ok)
				require.Equal(t, space, gotSpace)
			})
		}
	}
}

func TestEncodeDecode_AllWidths(t *testing.T) {
	for a := uint8(1); a <= 4; a++ {
		for ts := uint8(1); ts <= 4; ts++ {
			widths := format.WidthSpec{AddressWidth: a, TimestampWidth: ts}
			maxAddr := uint32(endian.MaxUintN(int(a)))
			maxTs := uint32(endian.MaxUintN(int(ts)))
			events := []encoding.Event{
				{Address: 0, Timestamp: 0},
				{Address: maxAddr, Timestamp: maxTs},
				{Address: maxAddr / 2, Timestamp: maxTs / 3},
			}

			t.Run(widths.String(), func(t *testing.T) {
				enc, err := NewEncoder(WithWidths(widths), WithCompression(format.CompressionLZ4))
				require.NoError(t, err)

				data, err := enc.Encode(events)
				require.NoError(t, err)

				result, err := NewDecoder().Decode(data)
				require.NoError(t, err)
				require.Equal(t, events, result.Events)
				require.Equal(t, widths, result.Header.Widths)
				require.Equal(t, widths.Native(), result.Widths)
			})
		}
	}
}

func TestEncode_EmptySequence(t *testing.T) {
	for _, comp := range allCompressions {
		t.Run(comp.String(), func(t *testing.T) {
			enc, err := NewEncoder(WithCompression(comp), WithChecksum(true))
			require.NoError(t, err)

			data, err := enc.Encode(nil)
			require.NoError(t, err)
			require.Len(t, data, section.HeaderSize)
			require.Equal(t, format.WidthSpec{AddressWidth: 1, TimestampWidth: 1}, mustHeader(t, data).Widths)

			result, err := NewDecoder().Decode(data)
			require.NoError(t, err)
			require.Empty(t, result.Events)
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Run("Value too large for explicit widths", func(t *testing.T) {
		enc, err := NewEncoder(WithWidths(format.WidthSpec{AddressWidth: 1, TimestampWidth: 4}))
		require.NoError(t, err)

		_, err = enc.Encode([]encoding.Event{{Address: 256, Timestamp: 1}})
		require.ErrorIs(t, err, errs.ErrValueTooLarge)
	})

	t.Run("Address outside declared space", func(t *testing.T) {
		enc, err := NewEncoder(WithAddressSpaceSize(256))
		require.NoError(t, err)

		_, err = enc.Encode([]encoding.Event{{Address: 300, Timestamp: 1}})
		require.ErrorIs(t, err, errs.ErrValueTooLarge)
	})

	t.Run("Address space overflow", func(t *testing.T) {
		enc, err := NewEncoder(WithAddressSpaceSize(1 << 33))
		require.NoError(t, err)

		_, err = enc.Encode(nasEvents(10))
		require.ErrorIs(t, err, errs.ErrWidthOverflow)
	})

	t.Run("Extension full", func(t *testing.T) {
		enc, err := NewEncoder(
			WithChecksum(true),
			WithExtensionEntry(section.ExtensionTag(0x10), make([]byte, 30)),
		)
		require.NoError(t, err)

		_, err = enc.Encode(nasEvents(10))
		require.ErrorIs(t, err, errs.ErrExtensionFull)
	})
}

func TestNewEncoder_OptionErrors(t *testing.T) {
	_, err := NewEncoder(WithCompression(format.CompressionType(9)))
	require.ErrorIs(t, err, errs.ErrUnknownCompressor)

	_, err = NewEncoder(WithCompressionName("GZIP"))
	require.ErrorIs(t, err, errs.ErrUnknownCompressor)

	_, err = NewEncoder(WithWidths(format.WidthSpec{AddressWidth: 0, TimestampWidth: 2}))
	require.ErrorIs(t, err, errs.ErrInvalidWidth)

	_, err = NewEncoder(WithWidthPolicy(format.WidthPolicy(0)))
	require.Error(t, err)

	_, err = NewEncoder(WithExtensionEntry(section.ExtEnd, nil))
	require.ErrorIs(t, err, errs.ErrMalformedHeader)

	_, err = NewEncoder(WithAddressSpaceExtension(true))
	require.Error(t, err)

	enc, err := NewEncoder(WithCompressionName(" lzma "))
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZMA, enc.Compression())
	require.Equal(t, format.WidthPolicyMinimal, enc.Policy())
}

func TestEncode_ObservedAddressRange(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	widths, err := enc.ResolveWidths([]encoding.Event{{Address: 255, Timestamp: 70000}})
	require.NoError(t, err)
	require.Equal(t, format.WidthSpec{AddressWidth: 1, TimestampWidth: 3}, widths)

	widths, err = enc.ResolveWidths([]encoding.Event{{Address: 256, Timestamp: 0}})
	require.NoError(t, err)
	require.Equal(t, format.WidthSpec{AddressWidth: 2, TimestampWidth: 1}, widths)
}

func TestEncode_CustomExtensions(t *testing.T) {
	enc, err := NewEncoder(
		WithExtensionEntry(section.ExtensionTag(0x20), []byte("run-7")),
		WithExtension([]byte{0x00}),
	)
	require.NoError(t, err)

	data, err := enc.Encode(nasEvents(4))
	require.NoError(t, err)

	header := mustHeader(t, data)
	entry, ok, err := header.Lookup(section.ExtensionTag(0x20))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("run-7"), entry.Value)

	result, err := NewDecoder().Decode(data)
	require.NoError(t, err)
	_, ok = result.AddressSpace()
	require.False(t, ok)
}

func TestDecode_Errors(t *testing.T) {
	enc, err := NewEncoder(WithCompression(format.CompressionLZ4), WithChecksum(true))
	require.NoError(t, err)
	data, err := enc.Encode(nasEvents(1001))
	require.NoError(t, err)

	t.Run("Truncated header", func(t *testing.T) {
		_, err := NewDecoder().Decode(data[:50])
		require.ErrorIs(t, err, errs.ErrTruncatedFile)
	})

	t.Run("Unknown compressor", func(t *testing.T) {
		corrupted := bytes.Clone(data)
		copy(corrupted[section.CompressorOffset:section.AddressWidthOffset], "GZIP      ")
		_, err := NewDecoder().Decode(corrupted)
		require.ErrorIs(t, err, errs.ErrUnknownCompressor)
	})

	t.Run("Corrupt payload", func(t *testing.T) {
		corrupted := bytes.Clone(data[:section.HeaderSize])
		corrupted = append(corrupted, 0xFF, 0xFF, 0xFF, 0xFF, 0x00)
		_, err := NewDecoder().Decode(corrupted)
		require.ErrorIs(t, err, errs.ErrCorruptPayload)
	})

	t.Run("Width change breaks record count", func(t *testing.T) {
		// 1001 records of 1+2 bytes are not a whole number of 1+4 byte records.
		corrupted := bytes.Clone(data)
		copy(corrupted[section.TimestampWidthOffset:], []byte{0, 0, 0, 4})
		_, err := NewDecoder(WithChecksumVerification(false)).Decode(corrupted)
		require.ErrorIs(t, err, errs.ErrIncompleteRecord)
	})

	t.Run("Checksum mismatch", func(t *testing.T) {
		header := mustHeader(t, data)
		packed, err := encoding.Pack(nasEvents(999), header.Widths)
		require.NoError(t, err)
		codec, err := compress.GetCodec(format.CompressionLZ4)
		require.NoError(t, err)
		payload, err := codec.Compress(packed)
		require.NoError(t, err)

		swapped, err := Assemble(header, payload)
		require.NoError(t, err)
		_, err = NewDecoder().Decode(swapped)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)

		result, err := NewDecoder(WithChecksumVerification(false)).Decode(swapped)
		require.NoError(t, err)
		require.Len(t, result.Events, 999)
	})
}

func TestEncoder_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	enc, err := NewEncoder(WithLogger(logger))
	require.NoError(t, err)
	data, err := enc.Encode(nasEvents(100))
	require.NoError(t, err)

	_, err = NewDecoder(WithDecoderLogger(logger)).Decode(data)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "encoded spike file", entries[0].Message)
	require.Equal(t, int64(100), entries[0].ContextMap()["events"])
	require.Equal(t, "ZSTD", entries[0].ContextMap()["compression"])
	require.Equal(t, "decoded spike file", entries[1].Message)
}

func TestEncodeWithStats(t *testing.T) {
	events := nasEvents(1000)
	enc, err := NewEncoder(WithCompression(format.CompressionLZMA), WithAddressSpaceSize(256))
	require.NoError(t, err)

	data, stats, err := enc.EncodeWithStats(events)
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZMA, stats.Algorithm)
	require.Equal(t, int64(len(events)*3), stats.OriginalSize)
	require.Equal(t, int64(len(data)-section.HeaderSize), stats.CompressedSize)
}

func TestWriteReadFile(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(nasEvents(50))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "dir", "spikes.aerzip")

	require.NoError(t, WriteFile(path, data, false))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, data, loaded)

	t.Run("Existing file without overwrite", func(t *testing.T) {
		err := WriteFile(path, []byte("other"), false)
		require.ErrorIs(t, err, errs.ErrFileExists)

		loaded, err := ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, data, loaded)
	})

	t.Run("Existing file with overwrite", func(t *testing.T) {
		shorter, err := enc.Encode(nasEvents(5))
		require.NoError(t, err)
		require.NoError(t, WriteFile(path, shorter, true))

		loaded, err := ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, shorter, loaded)
	})

	t.Run("Not an aerzip file", func(t *testing.T) {
		junk := filepath.Join(t.TempDir(), "junk.bin")
		require.NoError(t, os.WriteFile(junk, []byte("short"), 0o600))

		_, err := ReadFile(junk)
		require.ErrorIs(t, err, errs.ErrTruncatedFile)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "missing"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestEncoder_ConcurrentUse(t *testing.T) {
	enc, err := NewEncoder(WithChecksum(true))
	require.NoError(t, err)
	dec := NewDecoder()
	events := nasEvents(500)

	done := make(chan error, 8)
	for range 8 {
		go func() {
			data, err := enc.Encode(events)
			if err != nil {
				done <- err
				return
			}
			_, err = dec.Decode(data)
			done <- err
		}()
	}
	for range 8 {
		require.NoError(t, <-done)
	}
}

func mustHeader(t *testing.T, data []byte) section.FileHeader {
	t.Helper()

	h, _, err := Disassemble(data)
	require.NoError(t, err)

	return h
}
