package section

import (
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
	"github.com/dexcodec/dex/varint"
)

// StringDataItem holds a string's declared UTF-16 code unit count plus its
// raw MUTF-8 encoded bytes, terminated on the wire by a single NUL that is
// not part of Data.
type StringDataItem struct {
	UTF16Size uint32
	Data      []byte
}

func DecodeStringDataItem(r *cursor.Reader) (*StringDataItem, error) {
	size, err := varint.DecodeUleb128(r)
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadUntil(0x00)
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(raw)-1)
	copy(data, raw[:len(raw)-1])
	return &StringDataItem{UTF16Size: size, Data: data}, nil
}

func (s *StringDataItem) Encode(w *sink.Writer) {
	varint.EncodeUleb128(w, s.UTF16Size)
	w.WriteBytes(s.Data)
	w.WriteU8(0x00)
}

func (s *StringDataItem) Size() int {
	return varint.SizeUleb128(s.UTF16Size) + len(s.Data) + 1
}

// TypeList is a length-prefixed array of type indices, used for method
// parameter lists and class interface lists.
type TypeList struct {
	List []TypeItem
}

type TypeItem struct {
	TypeIdx uint16
}

func DecodeTypeList(r *cursor.Reader) (*TypeList, error) {
	size, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	list := make([]TypeItem, size)
	for i := range list {
		v, err := r.ReadU16()
		if err != nil {
			return nil, err
		}
		list[i] = TypeItem{TypeIdx: v}
	}
	return &TypeList{List: list}, nil
}

func (t *TypeList) Encode(w *sink.Writer) {
	w.WriteU32(uint32(len(t.List)))
	for _, it := range t.List {
		w.WriteU16(it.TypeIdx)
	}
	if len(t.List)%2 == 1 {
		w.Pad(2)
	}
}

func (t *TypeList) Size() int {
	size := 4 + len(t.List)*2
	if size%4 != 0 {
		size += 4 - size%4
	}
	return size
}
