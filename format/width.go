package format

import (
	"fmt"

	"github.com/arloliu/aerzip/errs"
)

// WidthSpec describes the byte width of each field of a packed record.
//
// Both widths are whole bytes in the range 1..4. A width of 3 is a valid on-disk
// width, but once decoded the values are surfaced as 4-byte wide (see Native).
type WidthSpec struct {
	AddressWidth   uint8
	TimestampWidth uint8
}

// FullWidths is the 4-byte/4-byte layout used by WidthPolicyFull.
var FullWidths = WidthSpec{AddressWidth: MaxFieldWidth, TimestampWidth: MaxFieldWidth}

// Validate checks that both widths are within 1..4.
func (w WidthSpec) Validate() error {
	if w.AddressWidth < 1 || w.AddressWidth > MaxFieldWidth {
		return fmt.Errorf("%w: address width %d", errs.ErrInvalidWidth, w.AddressWidth)
	}
	if w.TimestampWidth < 1 || w.TimestampWidth > MaxFieldWidth {
		return fmt.Errorf("%w: timestamp width %d", errs.ErrInvalidWidth, w.TimestampWidth)
	}

	return nil
}

// RecordSize returns the number of bytes one packed record occupies.
func (w WidthSpec) RecordSize() int {
	return int(w.AddressWidth) + int(w.TimestampWidth)
}

// Native returns the widths reported to callers after unpacking.
//
// There is no native 3-byte integer, so a 3-byte field is promoted to 4.
func (w WidthSpec) Native() WidthSpec {
	return WidthSpec{
		AddressWidth:   nativeWidth(w.AddressWidth),
		TimestampWidth: nativeWidth(w.TimestampWidth),
	}
}

// Apply returns the storage widths for the given policy.
func (p WidthPolicy) Apply(w WidthSpec) WidthSpec {
	if p == WidthPolicyFull {
		return FullWidths
	}

	return w
}

func (w WidthSpec) String() string {
	return fmt.Sprintf("%d-byte addresses, %d-byte timestamps", w.AddressWidth, w.TimestampWidth)
}

func nativeWidth(w uint8) uint8 {
	if w == 3 {
		return 4
	}

	return w
}
