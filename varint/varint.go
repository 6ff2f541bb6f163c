// Package varint implements the DEX primitive-I/O layer: the LEB128
// variable-width integer family and the n-byte packed integer/float
// readers used throughout EncodedValue and CodeItem.
//
// The n-byte signed/float/double paths are bit-precise: width w selects
// exactly w little-endian bytes, and the remaining high bits are produced
// by a shift-then-shift-back through a full 64/32-bit accumulator rather
// than any byte-granularity trick. This keeps decode and the minimum-width
// policy in package value trivially consistent with each other.
package varint

import (
	"math"

	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
)

// maxUleb128Bytes bounds a 32-bit-domain ULEB128/SLEB128 encoding: five
// groups of 7 bits cover 35 bits, more than enough for 32, and a sixth
// group always indicates a malformed stream.
const maxUleb128Bytes = 5

// DecodeUleb128 reads an unsigned LEB128 value: 7-bit groups, high bit of
// each non-final byte set, accumulated little-group-first.
func DecodeUleb128(r *cursor.Reader) (uint32, error) {
	var result uint32
	var shift uint
	for i := 0; i < maxUleb128Bytes; i++ {
		b, err := r.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, errs.ErrMalformedLEB128
}

// EncodeUleb128 writes v as unsigned LEB128.
func EncodeUleb128(w *sink.Writer, v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			w.WriteU8(b | 0x80)
			continue
		}
		w.WriteU8(b)
		return
	}
}

// SizeUleb128 returns the byte count EncodeUleb128 would emit for v.
func SizeUleb128(v uint32) int {
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}

// DecodeUleb128p1 decodes ULEB128p1: the wire value is x+1, so this
// returns the wire value minus one, and a wire zero decodes to x=-1. The
// result ranges over int64 because -1 must be representable alongside
// the full unsigned 32-bit domain.
func DecodeUleb128p1(r *cursor.Reader) (int64, error) {
	raw, err := DecodeUleb128(r)
	if err != nil {
		return 0, err
	}
	return int64(raw) - 1, nil
}

// EncodeUleb128p1 writes x+1 as ULEB128; x may be -1.
func EncodeUleb128p1(w *sink.Writer, x int64) {
	EncodeUleb128(w, uint32(x+1))
}

// SizeUleb128p1 returns the byte count EncodeUleb128p1 would emit for x.
func SizeUleb128p1(x int64) int {
	return SizeUleb128(uint32(x + 1))
}

// DecodeSleb128 reads a signed LEB128 value: same 7-bit chunking as
// ULEB128, sign-extended from bit 6 of the last emitted byte.
func DecodeSleb128(r *cursor.Reader) (int32, error) {
	var result int32
	var shift uint
	var b byte
	var err error
	for i := 0; i < maxUleb128Bytes; i++ {
		b, err = r.ReadU8()
		if err != nil {
			return 0, err
		}
		result |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < 32 && b&0x40 != 0 {
				result |= -1 << shift
			}
			return result, nil
		}
	}
	return 0, errs.ErrMalformedLEB128
}

// EncodeSleb128 writes v as signed LEB128: emit 7-bit groups, stop once
// the remaining sign-extended residue is redundant with the payload bit
// just emitted (residue 0 with bit6 clear, or residue -1 with bit6 set).
func EncodeSleb128(w *sink.Writer, v int32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		done := (v == 0 && !signBitSet) || (v == -1 && signBitSet)
		if done {
			w.WriteU8(b)
			return
		}
		w.WriteU8(b | 0x80)
	}
}

// SizeSleb128 returns the byte count EncodeSleb128 would emit for v.
func SizeSleb128(v int32) int {
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		n++
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			return n
		}
	}
}

// ReadUint reads w little-endian bytes (w in [1,8]) zero-extended into a uint64.
func ReadUint(r *cursor.Reader, w int) (uint64, error) {
	b, err := r.ReadN(w)
	if err != nil {
		return 0, err
	}
	var result uint64
	for i := w - 1; i >= 0; i-- {
		result = result<<8 | uint64(b[i])
	}
	return result, nil
}

// WriteUint writes the low w bytes of v, little-endian.
func WriteUint(w *sink.Writer, v uint64, width int) {
	for i := 0; i < width; i++ {
		w.WriteU8(byte(v))
		v >>= 8
	}
}

// ReadInt reads w little-endian bytes (w in [1,8]) and sign-extends them
// into an int64 by shifting left then arithmetic-shifting right by
// (8-w)*8 bits.
func ReadInt(r *cursor.Reader, width int) (int64, error) {
	raw, err := ReadUint(r, width)
	if err != nil {
		return 0, err
	}
	shift := uint((8 - width) * 8)
	return int64(raw<<shift) >> shift, nil
}

// WriteInt truncates v to its low width bytes, little-endian.
func WriteInt(w *sink.Writer, v int64, width int) {
	WriteUint(w, uint64(v), width)
}

// ReadFloat32 reads w bytes (w in [1,4]) into the high bits of an IEEE-754
// single: the bit pattern is right-zero-padded to full width, so decode
// reads w bytes into the low bits then shifts left by (4-w)*8.
func ReadFloat32(r *cursor.Reader, width int) (float32, error) {
	raw, err := ReadUint(r, width)
	if err != nil {
		return 0, err
	}
	bits := uint32(raw) << uint((4-width)*8)
	return math.Float32frombits(bits), nil
}

// WriteFloat32 writes the high width bytes of v's bit pattern, little-endian.
func WriteFloat32(w *sink.Writer, v float32, width int) {
	bits := math.Float32bits(v) >> uint((4-width)*8)
	WriteUint(w, uint64(bits), width)
}

// ReadFloat64 reads w bytes (w in [1,8]) into the high bits of an IEEE-754 double.
func ReadFloat64(r *cursor.Reader, width int) (float64, error) {
	raw, err := ReadUint(r, width)
	if err != nil {
		return 0, err
	}
	bits := raw << uint((8-width)*8)
	return math.Float64frombits(bits), nil
}

// WriteFloat64 writes the high width bytes of v's bit pattern, little-endian.
func WriteFloat64(w *sink.Writer, v float64, width int) {
	bits := math.Float64bits(v) >> uint((8-width)*8)
	WriteUint(w, bits, width)
}
