// Package encoding packs spike events into fixed-size binary records and back.
//
// A record is the event address followed by its timestamp, each written big-endian in
// the number of bytes given by a format.WidthSpec (1..4 per field):
//
//	widths 2/3:  [addr hi][addr lo][ts b2][ts b1][ts b0]
//
// Records are concatenated without padding, so a buffer of n events is exactly
// n * spec.RecordSize() bytes long.
//
// # 3-byte Fields
//
// Go has no 3-byte integer type. A 3-byte field is written by truncating the 4-byte
// big-endian form of the value to its low 3 bytes, and read back by zero-extending it
// to 4 bytes. Unpack therefore reports 3-byte fields at a native width of 4; the
// numeric values are unchanged.
//
// # Usage
//
//	packed, err := encoding.Pack(events, format.WidthSpec{AddressWidth: 2, TimestampWidth: 3})
//	events, native, err := encoding.Unpack(packed, format.WidthSpec{AddressWidth: 2, TimestampWidth: 3})
//	// native == {AddressWidth: 2, TimestampWidth: 4}
//
// For incremental packing use RecordEncoder, and RecordDecoder for iteration or random
// access without materializing the whole sequence.
//
// Values that do not fit their field are rejected with errs.ErrValueTooLarge, and a
// buffer that is not a whole number of records is rejected with errs.ErrIncompleteRecord.
package encoding
