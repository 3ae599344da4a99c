package section

import (
	"fmt"
	"math"

	"github.com/arloliu/aerzip/endian"
	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/width"
)

// ExtensionTag identifies a typed entry in the header extension region.
//
// Entries are laid out back to back as [tag:1][length:1][value:length]. A zero tag
// marks the end of the entries (the region is zero-padded). Readers skip tags they
// do not know, so new entry types can be added without a format version bump.
type ExtensionTag uint8

const (
	ExtEnd             ExtensionTag = 0x00 // ExtEnd marks the end of the entries.
	ExtAddressSpace    ExtensionTag = 0x01 // ExtAddressSpace holds the sensor address space (6 bytes).
	ExtPayloadChecksum ExtensionTag = 0x02 // ExtPayloadChecksum holds the xxHash64 of the packed records (8 bytes).
)

const (
	entryHeaderSize     = 2
	addressSpaceSize    = 6
	payloadChecksumSize = 8
)

func (t ExtensionTag) String() string {
	switch t {
	case ExtEnd:
		return "End"
	case ExtAddressSpace:
		return "AddressSpace"
	case ExtPayloadChecksum:
		return "PayloadChecksum"
	default:
		return fmt.Sprintf("Tag(0x%02x)", uint8(t))
	}
}

// ExtensionEntry is one typed entry of the extension region.
type ExtensionEntry struct {
	Tag   ExtensionTag
	Value []byte
}

// AddressSpace decodes an ExtAddressSpace entry.
func (e ExtensionEntry) AddressSpace() (width.AddressSpace, error) {
	if e.Tag != ExtAddressSpace || len(e.Value) != addressSpaceSize {
		return width.AddressSpace{}, fmt.Errorf("%w: not an address space entry: %s/%d bytes",
			errs.ErrMalformedHeader, e.Tag, len(e.Value))
	}

	engine := endian.GetBigEndianEngine()

	return width.AddressSpace{
		Channels:  engine.Uint32(e.Value[0:4]),
		Stereo:    e.Value[4] != 0,
		OnOffBoth: e.Value[5] != 0,
	}, nil
}

// Checksum decodes an ExtPayloadChecksum entry.
func (e ExtensionEntry) Checksum() (uint64, error) {
	if e.Tag != ExtPayloadChecksum || len(e.Value) != payloadChecksumSize {
		return 0, fmt.Errorf("%w: not a checksum entry: %s/%d bytes",
			errs.ErrMalformedHeader, e.Tag, len(e.Value))
	}

	return endian.GetBigEndianEngine().Uint64(e.Value), nil
}

// AppendAddressSpace appends an ExtAddressSpace entry to the builder.
func (b *HeaderBuilder) AppendAddressSpace(space width.AddressSpace) error {
	value := endian.GetBigEndianEngine().AppendUint32(make([]byte, 0, addressSpaceSize), space.Channels)
	value = append(value, boolByte(space.Stereo), boolByte(space.OnOffBoth))

	return b.AppendEntry(ExtAddressSpace, value)
}

// AppendChecksum appends an ExtPayloadChecksum entry to the builder.
func (b *HeaderBuilder) AppendChecksum(sum uint64) error {
	value := endian.GetBigEndianEngine().AppendUint64(make([]byte, 0, payloadChecksumSize), sum)

	return b.AppendEntry(ExtPayloadChecksum, value)
}

// Extensions parses the typed entries of the extension region.
//
// If the writer's format version is unknown to this reader, the region is opaque and
// no entries are returned. Parsing stops at the first ExtEnd tag. Entries decoded
// before a malformed one are returned together with an errs.ErrMalformedHeader error.
func (h *FileHeader) Extensions() ([]ExtensionEntry, error) {
	if !h.KnowsExtensionLayout() {
		return nil, nil
	}

	var entries []ExtensionEntry
	ext := h.Extension[:]
	for off := 0; off < len(ext); {
		tag := ExtensionTag(ext[off])
		if tag == ExtEnd {
			break
		}
		if off+entryHeaderSize > len(ext) {
			return entries, fmt.Errorf("%w: truncated extension entry at offset %d", errs.ErrMalformedHeader, off)
		}

		n := int(ext[off+1])
		start := off + entryHeaderSize
		if start+n > len(ext) {
			return entries, fmt.Errorf("%w: extension entry %s overruns region", errs.ErrMalformedHeader, tag)
		}

		entries = append(entries, ExtensionEntry{Tag: tag, Value: append([]byte(nil), ext[start:start+n]...)})
		off = start + n
	}

	return entries, nil
}

// Lookup returns the first extension entry with the given tag.
func (h *FileHeader) Lookup(tag ExtensionTag) (ExtensionEntry, bool, error) {
	entries, err := h.Extensions()
	for _, e := range entries {
		if e.Tag == tag {
			return e, true, nil
		}
	}

	return ExtensionEntry{}, false, err
}

func encodeEntry(tag ExtensionTag, value []byte) ([]byte, error) {
	if tag == ExtEnd {
		return nil, fmt.Errorf("%w: tag 0 is reserved", errs.ErrMalformedHeader)
	}
	if len(value) > math.MaxUint8 || len(value)+entryHeaderSize > ExtensionSize {
		return nil, fmt.Errorf("%w: %s entry of %d bytes", errs.ErrExtensionFull, tag, len(value))
	}

	entry := make([]byte, 0, entryHeaderSize+len(value))
	entry = append(entry, byte(tag), byte(len(value)))

	return append(entry, value...), nil
}

func boolByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}
