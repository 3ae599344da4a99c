package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/aerzip/endian"
	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
	"github.com/arloliu/aerzip/internal/pool"
)

// Event is a single spike: the address of the emitting neuron and the time it fired.
type Event struct {
	Address   uint32 `csv:"address"`
	Timestamp uint32 `csv:"timestamp"`
}

// MaxTimestamp returns the largest timestamp in events, or 0 for an empty sequence.
//
// Events are usually in timestamp order, but that is not assumed.
func MaxTimestamp(events []Event) uint32 {
	var maxTs uint32
	for _, ev := range events {
		if ev.Timestamp > maxTs {
			maxTs = ev.Timestamp
		}
	}

	return maxTs
}

// RecordEncoder packs spike events into fixed-size big-endian records.
//
// Each record is the address in exactly WidthSpec.AddressWidth bytes immediately followed
// by the timestamp in exactly WidthSpec.TimestampWidth bytes, with no padding or separators.
type RecordEncoder struct {
	buf     *pool.ByteBuffer
	engine  endian.EndianEngine
	spec    format.WidthSpec
	maxAddr uint64
	maxTs   uint64
	count   int
}

// NewRecordEncoder creates a record encoder for the given widths.
//
// Parameters:
//   - spec: Field widths of each record (1..4 bytes each)
//
// Returns:
//   - *RecordEncoder: A new encoder backed by a pooled buffer
//   - error: errs.ErrInvalidWidth if spec is out of range
func NewRecordEncoder(spec format.WidthSpec) (*RecordEncoder, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &RecordEncoder{
		buf:     pool.GetRecordBuffer(),
		engine:  endian.GetBigEndianEngine(),
		spec:    spec,
		maxAddr: endian.MaxUintN(int(spec.AddressWidth)),
		maxTs:   endian.MaxUintN(int(spec.TimestampWidth)),
	}, nil
}

// Write appends a single event as one record.
//
// Values that do not fit their declared width are rejected with errs.ErrValueTooLarge;
// high-order bytes are never silently dropped. On error nothing is written.
func (e *RecordEncoder) Write(ev Event) error {
	if err := e.check(e.count, ev); err != nil {
		return err
	}

	e.buf.Grow(e.spec.RecordSize())
	e.write(ev)
	e.count++

	return nil
}

// WriteSlice appends all events, pre-growing the buffer once.
//
// The whole slice is validated before anything is written, so a failing call leaves
// the encoder unchanged.
func (e *RecordEncoder) WriteSlice(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	for i, ev := range events {
		if err := e.check(e.count+i, ev); err != nil {
			return err
		}
	}

	e.buf.Grow(len(events) * e.spec.RecordSize())
	for _, ev := range events {
		e.write(ev)
	}
	e.count += len(events)

	return nil
}

// Bytes returns the packed records.
// The returned slice is valid until the next Write, WriteSlice or Finish call.
func (e *RecordEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of packed records.
func (e *RecordEncoder) Len() int {
	return e.count
}

// Size returns the packed size in bytes.
func (e *RecordEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the internal buffer to the pool.
//
// The encoder must not be used afterwards; copy Bytes() first if the data is needed.
func (e *RecordEncoder) Finish() {
	pool.PutRecordBuffer(e.buf)
	e.buf = nil
}

func (e *RecordEncoder) check(index int, ev Event) error {
	if uint64(ev.Address) > e.maxAddr {
		return fmt.Errorf("%w: event %d address %d exceeds %d-byte field",
			errs.ErrValueTooLarge, index, ev.Address, e.spec.AddressWidth)
	}
	if uint64(ev.Timestamp) > e.maxTs {
		return fmt.Errorf("%w: event %d timestamp %d exceeds %d-byte field",
			errs.ErrValueTooLarge, index, ev.Timestamp, e.spec.TimestampWidth)
	}

	return nil
}

func (e *RecordEncoder) write(ev Event) {
	b := e.buf.B
	b = endian.AppendUintN(e.engine, b, ev.Address, int(e.spec.AddressWidth))
	b = endian.AppendUintN(e.engine, b, ev.Timestamp, int(e.spec.TimestampWidth))
	e.buf.B = b
}

// RecordDecoder reads spike events back from packed records.
//
// The decoder is stateless and safe for concurrent use.
type RecordDecoder struct {
	engine endian.EndianEngine
	spec   format.WidthSpec
}

// NewRecordDecoder creates a record decoder for the given widths.
func NewRecordDecoder(spec format.WidthSpec) (RecordDecoder, error) {
	if err := spec.Validate(); err != nil {
		return RecordDecoder{}, err
	}

	return RecordDecoder{engine: endian.GetBigEndianEngine(), spec: spec}, nil
}

// Count returns the number of records in data.
//
// Returns errs.ErrIncompleteRecord when len(data) is not a multiple of the record size.
func (d RecordDecoder) Count(data []byte) (int, error) {
	size := d.spec.RecordSize()
	if len(data)%size != 0 {
		return 0, fmt.Errorf("%w: %d bytes is not a multiple of the %d-byte record size",
			errs.ErrIncompleteRecord, len(data), size)
	}

	return len(data) / size, nil
}

// All returns an iterator over every record in data.
//
// A partial trailing record is not yielded; use Count to detect it.
func (d RecordDecoder) All(data []byte) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		size := d.spec.RecordSize()
		for off := 0; off+size <= len(data); off += size {
			if !yield(d.read(data[off:])) {
				return
			}
		}
	}
}

// At returns the record at index, or false if index is out of range.
func (d RecordDecoder) At(data []byte, index int) (Event, bool) {
	size := d.spec.RecordSize()
	if index < 0 || (index+1)*size > len(data) {
		return Event{}, false
	}

	return d.read(data[index*size:]), true
}

func (d RecordDecoder) read(rec []byte) Event {
	aw := int(d.spec.AddressWidth)

	return Event{
		Address:   endian.UintN(d.engine, rec, aw),
		Timestamp: endian.UintN(d.engine, rec[aw:], int(d.spec.TimestampWidth)),
	}
}

// Pack converts events into a tightly packed record buffer.
//
// The result has exactly len(events) * spec.RecordSize() bytes and is owned by the caller.
//
// Returns:
//   - []byte: Packed records
//   - error: errs.ErrInvalidWidth or errs.ErrValueTooLarge
func Pack(events []Event, spec format.WidthSpec) ([]byte, error) {
	enc, err := NewRecordEncoder(spec)
	if err != nil {
		return nil, err
	}
	defer enc.Finish()

	if err := enc.WriteSlice(events); err != nil {
		return nil, err
	}

	return enc.buf.Clone(), nil
}

// Unpack converts a packed record buffer back into events.
//
// The returned WidthSpec is spec.Native(): a field stored in 3 bytes is reported as
// 4 bytes wide, since that is the narrowest in-memory integer able to hold it. The
// numeric values are unchanged.
//
// Returns:
//   - []Event: Decoded events in record order
//   - format.WidthSpec: Native widths of the decoded values
//   - error: errs.ErrInvalidWidth or errs.ErrIncompleteRecord
func Unpack(data []byte, spec format.WidthSpec) ([]Event, format.WidthSpec, error) {
	dec, err := NewRecordDecoder(spec)
	if err != nil {
		return nil, format.WidthSpec{}, err
	}

	count, err := dec.Count(data)
	if err != nil {
		return nil, format.WidthSpec{}, err
	}

	events := make([]Event, 0, count)
	for ev := range dec.All(data) {
		events = append(events, ev)
	}

	return events, spec.Native(), nil
}
