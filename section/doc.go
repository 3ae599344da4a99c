// Package section defines the fixed-layout file header of the aerzip format.
//
// # File Structure
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header (100 bytes, fixed)                                │
//	│  - Version (20 bytes): "AERzip v0.8.0", space-padded     │
//	│  - Compressor (10 bytes): "ZSTD"/"LZ4"/"LZMA", padded    │
//	│  - AddressWidth (4 bytes): big-endian uint32, 1..4       │
//	│  - TimestampWidth (4 bytes): big-endian uint32, 1..4     │
//	│  - Extension (40 bytes): zero-padded typed entries       │
//	│  - End marker (22 bytes): "#End Of ASCII Header\r\n"     │
//	├──────────────────────────────────────────────────────────┤
//	│ Payload (rest of file)                                   │
//	│  - compressed packed records                             │
//	└──────────────────────────────────────────────────────────┘
//
// There is no length field anywhere: the header size is a constant of the format
// version and the payload runs to the end of the buffer.
//
// # Extension Region
//
// The extension region lets later revisions add metadata without moving any of the
// fields before it. HeaderBuilder fills it through an append-only cursor and fails with
// errs.ErrExtensionFull rather than growing. Typed entries use a tag/length/value
// layout; a reader only interprets them when it knows the writer's format version
// (FileHeader.KnowsExtensionLayout) and otherwise treats the region as opaque.
//
//	b, _ := section.NewHeaderBuilder(format.CompressionZstd, widths)
//	_ = b.AppendChecksum(sum)
//	header := b.Build()
//	data := header.Bytes()
//
//	parsed, err := section.ParseFileHeader(data)
package section
