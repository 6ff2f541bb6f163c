package instr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexcodec/dex/endian"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/pool"
	"github.com/dexcodec/dex/internal/sink"
)

func roundTripInsn(t *testing.T, insn Instruction) Instruction {
	t.Helper()
	buf := pool.NewByteBuffer(16)
	w := sink.New(buf, endian.GetLittleEndianEngine())
	insn.Encode(w)
	require.Equal(t, insn.Size(), w.Len())

	r := cursor.New(w.Bytes(), endian.GetLittleEndianEngine())
	got, err := DecodeOne(r)
	require.NoError(t, err)
	require.Equal(t, r.Pos(), r.Len())
	return got
}

func TestDecodeNop(t *testing.T) {
	got := roundTripInsn(t, &Ins10x{Op: 0x00})
	require.Equal(t, &Ins10x{Op: 0x00}, got)
	require.Equal(t, "nop", got.String())
}

func TestDecodeMove12x(t *testing.T) {
	in := &Ins12x{Op: 0x01, A: 1, B: 2}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
	require.Equal(t, "move v1, v2", got.String())
}

func TestDecodeConst4(t *testing.T) {
	in := &Ins11n{Op: 0x12, A: 3, B: -5}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecodeInvokeVirtual35c(t *testing.T) {
	in := &Ins35c{invoke5{Op: 0x6e, A: 2, B: 100, C: 1, D: 2}}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
	require.Contains(t, got.String(), "invoke-virtual")
}

func TestDecodeInvokeStaticRange(t *testing.T) {
	in := &Ins3rc{invokeRange{Op: 0x71, A: 3, B: 50, C: 10}}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
	require.Equal(t, uint16(12), in.lastReg())
}

func TestDecodeInvokePolymorphic45cc(t *testing.T) {
	in := &Ins45cc{invoke5: invoke5{Op: 0xfa, A: 2, B: 7, C: 1, D: 2}, H: 3}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecodeArithmeticRange23x(t *testing.T) {
	in := &Ins23x{Op: 0x90, A: 1, B: 2, C: 3}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecode2addrRange12x(t *testing.T) {
	in := &Ins12x{Op: 0xb0, A: 1, B: 2}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecodeLit16Range22s(t *testing.T) {
	in := &Ins22s{Op: 0xd0, A: 1, B: 2, C: -7}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecodeLit8Range22b(t *testing.T) {
	in := &Ins22b{Op: 0xd8, A: 1, B: 2, C: 9}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecodeUnusedQuickenedRangeIsNop(t *testing.T) {
	in := &Ins10x{Op: 0xe3}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecodeConstWide51l(t *testing.T) {
	in := &Ins51l{Op: 0x18, A: 0, B: -123456789012345}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecodeBadNopSubOpcode(t *testing.T) {
	buf := pool.NewByteBuffer(2)
	w := sink.New(buf, endian.GetLittleEndianEngine())
	w.WriteU8(0x00)
	w.WriteU8(0x04)
	r := cursor.New(w.Bytes(), endian.GetLittleEndianEngine())
	_, err := DecodeOne(r)
	require.Error(t, err)
}

func TestPackedSwitchPayloadRoundTrip(t *testing.T) {
	in := &PackedSwitchPayload{FirstKey: 10, Targets: []int32{1, 2, 3}}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestSparseSwitchPayloadRoundTrip(t *testing.T) {
	in := &SparseSwitchPayload{Keys: []int32{1, 5}, Targets: []int32{100, 200}}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestFillArrayDataPayloadRoundTripOddPadding(t *testing.T) {
	in := &FillArrayDataPayload{ElementWidth: 1, Data: []byte{1, 2, 3}}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
	require.Equal(t, 0, got.Size()%2)
}

func TestFillArrayDataPayloadRoundTripEven(t *testing.T) {
	in := &FillArrayDataPayload{ElementWidth: 2, Data: []byte{1, 2, 3, 4}}
	got := roundTripInsn(t, in)
	require.Equal(t, in, got)
}

func TestDecodeInsnsBudget(t *testing.T) {
	buf := pool.NewByteBuffer(16)
	w := sink.New(buf, endian.GetLittleEndianEngine())
	a := &Ins10x{Op: 0x00}
	b := &Ins12x{Op: 0x01, A: 1, B: 2}
	a.Encode(w)
	b.Encode(w)

	r := cursor.New(w.Bytes(), endian.GetLittleEndianEngine())
	insns, err := DecodeInsns(r, 2)
	require.NoError(t, err)
	require.Len(t, insns, 2)
	require.Equal(t, r.Pos(), r.Len())
}
