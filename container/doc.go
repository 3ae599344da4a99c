// Package container assembles complete aerzip files.
//
// A file is the 100-byte header from package section followed by the compressed
// packed records, with nothing in between and nothing after:
//
//	file = header.Bytes() ++ codec.Compress(encoding.Pack(events, widths))
//
// Assemble and Disassemble are the two primitive operations. Encoder and Decoder
// layer the full pipeline on top of them:
//
//	encode: resolve widths -> pack -> compress -> build header -> assemble
//	decode: disassemble -> decompress -> verify checksum -> unpack
//
// Example:
//
//	enc, err := container.NewEncoder(
//	    container.WithCompression(format.CompressionZstd),
//	    container.WithAddressSpace(width.AddressSpace{Channels: 64, Stereo: true, OnOffBoth: true}),
//	    container.WithChecksum(true),
//	)
//	data, err := enc.Encode(events)
//
//	result, err := container.NewDecoder().Decode(data)
//
// Encoder and Decoder hold only configuration and may be shared between goroutines.
package container
