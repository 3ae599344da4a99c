// Package width resolves the minimum whole-byte field widths ("pruning") needed to
// store spike addresses and timestamps without loss.
//
// Address widths are derived from the declared size of the sensor's address space,
// not from the addresses present in one recording, so every possible address fits.
// Timestamp widths are derived from the largest timestamp actually observed.
//
//	spec, err := width.Resolve(width.AddressSpace{Channels: 64, Stereo: true, OnOffBoth: true}.Size(), maxTs)
package width

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/aerzip/errs"
	"github.com/arloliu/aerzip/format"
)

// AddressSpace describes the address domain of a neuromorphic auditory sensor.
//
// Each channel emits ON and/or OFF spikes, optionally from two ears.
type AddressSpace struct {
	// Channels is the number of frequency channels per ear.
	Channels uint32 `yaml:"num_channels"`
	// Stereo is true for two-ear (left/right) recordings.
	Stereo bool `yaml:"stereo"`
	// OnOffBoth is true when ON and OFF spikes get distinct addresses.
	OnOffBoth bool `yaml:"on_off_both"`
}

// Size returns the number of distinct addresses in the space.
func (a AddressSpace) Size() uint64 {
	size := uint64(a.Channels)
	if a.Stereo {
		size *= 2
	}
	if a.OnOffBoth {
		size *= 2
	}

	return size
}

// ResolveAddressWidth returns the fewest bytes able to hold every address in an
// address space of the given size, i.e. addresses 0..addressSpaceSize-1.
//
// The result is at least 1, even for an empty space.
//
// Returns:
//   - uint8: Width in bytes (1..4)
//   - error: errs.ErrWidthOverflow if more than 4 bytes are required
func ResolveAddressWidth(addressSpaceSize uint64) (uint8, error) {
	if addressSpaceSize <= 1 {
		return 1, nil
	}

	w := bytesFor(addressSpaceSize - 1)
	if w > format.MaxFieldWidth {
		return 0, fmt.Errorf("%w: address space of %d values", errs.ErrWidthOverflow, addressSpaceSize)
	}

	return w, nil
}

// ResolveTimestampWidth returns the fewest bytes able to hold maxTimestamp.
//
// The result is at least 1, even when maxTimestamp is zero.
//
// Returns:
//   - uint8: Width in bytes (1..4)
//   - error: errs.ErrWidthOverflow if more than 4 bytes are required
func ResolveTimestampWidth(maxTimestamp uint64) (uint8, error) {
	w := bytesFor(maxTimestamp)
	if w > format.MaxFieldWidth {
		return 0, fmt.Errorf("%w: timestamp %d", errs.ErrWidthOverflow, maxTimestamp)
	}

	return w, nil
}

// Resolve returns the minimal WidthSpec for an address space size and the largest
// timestamp of a sequence.
func Resolve(addressSpaceSize uint64, maxTimestamp uint64) (format.WidthSpec, error) {
	aw, err := ResolveAddressWidth(addressSpaceSize)
	if err != nil {
		return format.WidthSpec{}, err
	}

	tw, err := ResolveTimestampWidth(maxTimestamp)
	if err != nil {
		return format.WidthSpec{}, err
	}

	return format.WidthSpec{AddressWidth: aw, TimestampWidth: tw}, nil
}

// bytesFor returns ceil(bitlen(v)/8), with a minimum of 1.
func bytesFor(v uint64) uint8 {
	n := (bits.Len64(v) + 7) / 8
	if n == 0 {
		return 1
	}

	return uint8(n)
}
