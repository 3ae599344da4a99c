// Package endian provides byte order utilities for the aerzip record and header layout.
//
// This package combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into a single EndianEngine, and adds width-aware helpers for the 1..4 byte fields of
// a packed spike record.
//
// # Byte Order
//
// Every integer in an aerzip file is big-endian:
//
//	engine := endian.GetBigEndianEngine()
//	buf = endian.AppendUintN(engine, buf, 0xABCDEF, 3) // AB CD EF
//
// # 3-byte Fields
//
// Go has no 3-byte integer type. A 3-byte field is written by encoding the value as a
// 4-byte big-endian integer and dropping the leading (zero) byte, and read back by
// zero-extending the 3 bytes into a 4-byte buffer before interpretation.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine used by the aerzip format.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendUintN appends v to dst using exactly width bytes.
//
// The caller must ensure that v fits in width bytes; higher-order bytes are dropped.
// Widths outside 1..4 panic.
func AppendUintN(engine EndianEngine, dst []byte, v uint32, width int) []byte {
	switch width {
	case 1:
		return append(dst, byte(v))
	case 2:
		return engine.AppendUint16(dst, uint16(v))
	case 3:
		var tmp [4]byte
		engine.PutUint32(tmp[:], v)
		if isBigEndian(engine) {
			return append(dst, tmp[1:]...)
		}

		return append(dst, tmp[:3]...)
	case 4:
		return engine.AppendUint32(dst, v)
	default:
		panic("endian: invalid field width")
	}
}

// UintN reads a width-byte unsigned integer from the start of src.
//
// src must hold at least width bytes. Widths outside 1..4 panic.
func UintN(engine EndianEngine, src []byte, width int) uint32 {
	switch width {
	case 1:
		return uint32(src[0])
	case 2:
		return uint32(engine.Uint16(src))
	case 3:
		var tmp [4]byte
		if isBigEndian(engine) {
			copy(tmp[1:], src[:3])
		} else {
			copy(tmp[:3], src[:3])
		}

		return engine.Uint32(tmp[:])
	case 4:
		return engine.Uint32(src)
	default:
		panic("endian: invalid field width")
	}
}

// MaxUintN returns the largest value representable in width bytes.
func MaxUintN(width int) uint64 {
	return 1<<(8*uint(width)) - 1
}

func isBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}
