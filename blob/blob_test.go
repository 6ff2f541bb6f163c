package blob

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexcodec/dex/endian"
	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/section"
)

func minimalModel() *Model {
	m := newModel()
	m.Header = section.Header{
		Magic:         [8]byte{'d', 'e', 'x', '\n', '0', '3', '5', 0},
		HeaderSize:    section.HeaderSize,
		EndianTag:     endian.EndianConstant,
		FileSize:      0xBD,
		StringIDsSize: 1, StringIDsOff: 0x70,
		TypeIDsSize: 1, TypeIDsOff: 0x74,
		MapOff: 0x78,
	}
	m.StringIDs = []section.StringIDItem{{StringDataOff: 0xB8}}
	m.TypeIDs = []section.TypeIDItem{{DescriptorIdx: 0}}
	m.StringDataItems[0xB8] = &section.StringDataItem{UTF16Size: 3, Data: []byte("Foo")}
	m.MapList = section.MapList{List: []section.MapItem{
		{TypeCode: section.TypeHeaderItem, Size: 1, Offset: 0},
		{TypeCode: section.TypeStringIDItem, Size: 1, Offset: 0x70},
		{TypeCode: section.TypeTypeIDItem, Size: 1, Offset: 0x74},
		{TypeCode: section.TypeMapList, Size: 1, Offset: 0x78},
		{TypeCode: section.TypeStringDataItem, Size: 1, Offset: 0xB8},
	}}
	return m
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := minimalModel()

	enc, err := NewEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(m)
	require.NoError(t, err)
	require.Len(t, data, int(m.Header.FileSize))

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	got, err := dec.Decode()
	require.NoError(t, err)

	require.Equal(t, m.StringIDs, got.StringIDs)
	require.Equal(t, m.TypeIDs, got.TypeIDs)
	require.Equal(t, m.StringDataItems[0xB8], got.StringDataItems[0xB8])
	require.Equal(t, m.Header.FileSize, got.Header.FileSize)
	require.Equal(t, m.MapList, got.MapList)
}

func TestEncodeFileSizeOverride(t *testing.T) {
	m := minimalModel()
	m.Header.FileSize = 0 // caller hasn't computed it

	enc, err := NewEncoder(WithFileSizeOverride(0xBD))
	require.NoError(t, err)
	data, err := enc.Encode(m)
	require.NoError(t, err)
	require.Len(t, data, 0xBD)
	require.Equal(t, uint32(0), m.Header.FileSize, "override must not mutate the caller's Model")
}

func TestDecodeBadMagicRejected(t *testing.T) {
	m := minimalModel()
	enc, err := NewEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(m)
	require.NoError(t, err)
	data[0] = 'X'

	_, err = NewDecoder(data)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestHiddenapiClassDataRoundTripAndReject(t *testing.T) {
	m := newModel()
	m.Header = section.Header{
		Magic:      [8]byte{'d', 'e', 'x', '\n', '0', '3', '9', 0},
		HeaderSize: section.HeaderSize,
		EndianTag:  endian.EndianConstant,
		FileSize:   0xCE,
		StringIDsSize: 1, StringIDsOff: 0x70,
		TypeIDsSize: 1, TypeIDsOff: 0x74,
		MapOff: 0x78,
	}
	m.StringIDs = []section.StringIDItem{{StringDataOff: 0xC4}}
	m.TypeIDs = []section.TypeIDItem{{DescriptorIdx: 0}}
	m.StringDataItems[0xC4] = &section.StringDataItem{UTF16Size: 3, Data: []byte("Foo")}
	m.HiddenapiClassDataItem = &section.HiddenapiClassDataItem{
		Offsets:   nil,
		FlagsData: []byte{0xAA},
	}
	m.MapList = section.MapList{List: []section.MapItem{
		{TypeCode: section.TypeHeaderItem, Size: 1, Offset: 0},
		{TypeCode: section.TypeStringIDItem, Size: 1, Offset: 0x70},
		{TypeCode: section.TypeTypeIDItem, Size: 1, Offset: 0x74},
		{TypeCode: section.TypeMapList, Size: 1, Offset: 0x78},
		{TypeCode: section.TypeStringDataItem, Size: 1, Offset: 0xC4},
		{TypeCode: section.TypeHiddenapiClassDataItem, Size: 1, Offset: 0xC9},
	}}

	enc, err := NewEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(m)
	require.NoError(t, err)
	require.Len(t, data, int(m.Header.FileSize))

	dec, err := NewDecoder(data)
	require.NoError(t, err)
	got, err := dec.Decode()
	require.NoError(t, err)
	require.Equal(t, m.HiddenapiClassDataItem.FlagsData, got.HiddenapiClassDataItem.FlagsData)

	rejectDec, err := NewDecoder(data, WithRejectHiddenapi())
	require.NoError(t, err)
	_, err = rejectDec.Decode()
	require.ErrorIs(t, err, errs.ErrUnsupportedFeature)
}
