// Package aerzip stores neuromorphic spike events in compact, self-describing files.
//
// A spike event is an (address, timestamp) pair. aerzip packs a sequence of events
// into the narrowest whole-byte field widths that can hold them, compresses the packed
// records with ZSTD, LZ4 or LZMA, and prepends a fixed 100-byte header recording how to
// reverse the process. Decoding restores the original sequence exactly.
//
// # Basic Usage
//
// Compressing events from a 64-channel stereo cochlea with on/off spikes:
//
//	import "github.com/arloliu/aerzip"
//
//	events := []aerzip.Event{{Address: 5, Timestamp: 100}, {Address: 130, Timestamp: 65600}}
//	data, err := aerzip.Compress(events,
//	    container.WithCompression(format.CompressionLZ4),
//	    container.WithAddressSpace(width.AddressSpace{Channels: 64, Stereo: true, OnOffBoth: true}),
//	)
//
// Decompressing:
//
//	events, err := aerzip.Decompress(data)
//
// Inspecting a file without decompressing the payload:
//
//	header, err := aerzip.Inspect(data)
//	fmt.Println(header.Compression, header.Widths)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the container package.
// For statistics, checksum control or file I/O use container directly; the lower
// layers are width (width resolution), encoding (record packing), compress
// (backends) and section (header layout).
package aerzip

import (
	"github.com/arloliu/aerzip/container"
	"github.com/arloliu/aerzip/encoding"
	"github.com/arloliu/aerzip/section"
)

// Event is a single spike event.
type Event = encoding.Event

// Compress encodes events into a complete aerzip file.
//
// Without options the payload is compressed with ZSTD and the address width is taken
// from the largest address present. Declaring the sensor address space with
// container.WithAddressSpace is recommended so the width covers every possible address.
//
// Parameters:
//   - events: Events to store, in the order they should be restored
//   - opts: Encoder options from the container package
//
// Returns:
//   - []byte: Header followed by the compressed payload
//   - error: Option, width or compression error
func Compress(events []Event, opts ...container.EncoderOption) ([]byte, error) {
	enc, err := container.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(events)
}

// Decompress decodes an aerzip file back into its events.
//
// A payload checksum, if present, is verified.
func Decompress(data []byte) ([]Event, error) {
	result, err := container.NewDecoder().Decode(data)
	if err != nil {
		return nil, err
	}

	return result.Events, nil
}

// Inspect parses and validates the header of an aerzip file.
//
// The payload is not decompressed.
func Inspect(data []byte) (section.FileHeader, error) {
	h, _, err := container.Disassemble(data)
	return h, err
}
