package varint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexcodec/dex/endian"
	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/pool"
	"github.com/dexcodec/dex/internal/sink"
)

func encodeULEB(v uint32) []byte {
	buf := pool.NewByteBuffer(8)
	w := sink.New(buf, endian.GetLittleEndianEngine())
	EncodeUleb128(w, v)
	return w.Bytes()
}

func encodeSLEB(v int32) []byte {
	buf := pool.NewByteBuffer(8)
	w := sink.New(buf, endian.GetLittleEndianEngine())
	EncodeSleb128(w, v)
	return w.Bytes()
}

func TestUleb128RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 11016, 300, 1 << 20, 0xFFFFFFFF}
	for _, v := range values {
		encoded := encodeULEB(v)
		require.Equal(t, len(encoded), SizeUleb128(v))

		r := cursor.New(encoded, endian.GetLittleEndianEngine())
		got, err := DecodeUleb128(r)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestUleb128MultiByte(t *testing.T) {
	// encode_uleb128(11016) followed by decode_uleb128 yields 11016.
	encoded := encodeULEB(11016)
	require.Greater(t, len(encoded), 1)

	r := cursor.New(encoded, endian.GetLittleEndianEngine())
	got, err := DecodeUleb128(r)
	require.NoError(t, err)
	require.Equal(t, uint32(11016), got)
}

func TestUleb128Malformed(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	r := cursor.New(data, endian.GetLittleEndianEngine())
	_, err := DecodeUleb128(r)
	require.ErrorIs(t, err, errs.ErrMalformedLEB128)
}

func TestSleb128RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, -64, 64, -65, 1000000, -1000000}
	for _, v := range values {
		encoded := encodeSLEB(v)
		require.Equal(t, len(encoded), SizeSleb128(v))

		r := cursor.New(encoded, endian.GetLittleEndianEngine())
		got, err := DecodeSleb128(r)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestSleb128One(t *testing.T) {
	// encode_sleb128(1) followed by decode_sleb128 yields 1.
	encoded := encodeSLEB(1)
	r := cursor.New(encoded, endian.GetLittleEndianEngine())
	got, err := DecodeSleb128(r)
	require.NoError(t, err)
	require.Equal(t, int32(1), got)
}

func TestUleb128p1RoundTrip(t *testing.T) {
	values := []int64{-1, 0, 1, 127, 128, 1 << 20}
	for _, v := range values {
		buf := pool.NewByteBuffer(8)
		w := sink.New(buf, endian.GetLittleEndianEngine())
		EncodeUleb128p1(w, v)
		require.Equal(t, w.Len(), SizeUleb128p1(v))

		r := cursor.New(w.Bytes(), endian.GetLittleEndianEngine())
		got, err := DecodeUleb128p1(r)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestNByteUnsignedRoundTrip(t *testing.T) {
	for width := 1; width <= 8; width++ {
		buf := pool.NewByteBuffer(8)
		w := sink.New(buf, endian.GetLittleEndianEngine())
		var v uint64 = 0x0102030405060708 & ((1 << uint(width*8)) - 1)
		if width == 8 {
			v = 0x0102030405060708
		}
		WriteUint(w, v, width)

		r := cursor.New(w.Bytes(), endian.GetLittleEndianEngine())
		got, err := ReadUint(r, width)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestNByteSignedSignExtension(t *testing.T) {
	// 239 in one byte reads back negative as int8; the minimum-width
	// policy in package value bumps width so this round-trips through 2
	// bytes instead. Here we verify the raw sign-extension primitive.
	buf := pool.NewByteBuffer(8)
	w := sink.New(buf, endian.GetLittleEndianEngine())
	WriteInt(w, -1, 1)
	r := cursor.New(w.Bytes(), endian.GetLittleEndianEngine())
	got, err := ReadInt(r, 1)
	require.NoError(t, err)
	require.Equal(t, int64(-1), got)
}

func TestFloat32RightZeroPad(t *testing.T) {
	// 66048.0 has a bit pattern with 16 trailing zero bits, so 2 bytes
	// suffice and the low 2 bytes read back as zero.
	v := float32(66048.0)
	buf := pool.NewByteBuffer(8)
	w := sink.New(buf, endian.GetLittleEndianEngine())
	WriteFloat32(w, v, 2)
	require.Equal(t, 2, w.Len())

	r := cursor.New(w.Bytes(), endian.GetLittleEndianEngine())
	got, err := ReadFloat32(r, 2)
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestFloat64RightZeroPad(t *testing.T) {
	// As a double, 66048.0 is 0x40F0200000000000: the top 3 bytes carry
	// set bits and the low 5 bytes read back as zero.
	v := 66048.0
	buf := pool.NewByteBuffer(8)
	w := sink.New(buf, endian.GetLittleEndianEngine())
	WriteFloat64(w, v, 3)
	require.Equal(t, 3, w.Len())

	r := cursor.New(w.Bytes(), endian.GetLittleEndianEngine())
	got, err := ReadFloat64(r, 3)
	require.NoError(t, err)
	require.Equal(t, v, got)
}
