package dex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexcodec/dex/blob"
	"github.com/dexcodec/dex/endian"
	"github.com/dexcodec/dex/section"
)

func minimalModel() *blob.Model {
	return &blob.Model{
		Header: section.Header{
			Magic:         [8]byte{'d', 'e', 'x', '\n', '0', '3', '5', 0},
			HeaderSize:    section.HeaderSize,
			EndianTag:     endian.EndianConstant,
			FileSize:      0xBD,
			StringIDsSize: 1, StringIDsOff: 0x70,
			TypeIDsSize: 1, TypeIDsOff: 0x74,
			MapOff: 0x78,
		},
		StringIDs:       []section.StringIDItem{{StringDataOff: 0xB8}},
		TypeIDs:         []section.TypeIDItem{{DescriptorIdx: 0}},
		StringDataItems: map[uint32]*section.StringDataItem{0xB8: {UTF16Size: 3, Data: []byte("Foo")}},
		MapList: section.MapList{List: []section.MapItem{
			{TypeCode: section.TypeHeaderItem, Size: 1, Offset: 0},
			{TypeCode: section.TypeStringIDItem, Size: 1, Offset: 0x70},
			{TypeCode: section.TypeTypeIDItem, Size: 1, Offset: 0x74},
			{TypeCode: section.TypeMapList, Size: 1, Offset: 0x78},
			{TypeCode: section.TypeStringDataItem, Size: 1, Offset: 0xB8},
		}},
		TypeLists:                 map[uint32]*section.TypeList{},
		AnnotationSetRefLists:     map[uint32]*section.AnnotationSetRefList{},
		AnnotationSetItems:        map[uint32]*section.AnnotationSetItem{},
		AnnotationItems:           map[uint32]*section.AnnotationItem{},
		AnnotationsDirectoryItems: map[uint32]*section.AnnotationsDirectoryItem{},
		EncodedArrayItems:         map[uint32]*section.EncodedArrayItem{},
		ClassDataItems:            map[uint32]*section.ClassDataItem{},
		DebugInfoItems:            map[uint32]*section.DebugInfoItem{},
		CodeItems:                 map[uint32]*section.CodeItem{},
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	m := minimalModel()

	data, err := Serialize(m)
	require.NoError(t, err)
	require.Len(t, data, int(m.Header.FileSize))

	got, err := Deserialize(data)
	require.NoError(t, err)
	require.Equal(t, m.StringIDs, got.StringIDs)
	require.Equal(t, m.TypeIDs, got.TypeIDs)

	again, err := Serialize(got)
	require.NoError(t, err)
	require.Equal(t, data, again)
}
