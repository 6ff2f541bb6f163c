package section

import (
	"fmt"

	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
)

// TypeCode identifies the kind of item a MapItem entry addresses.
type TypeCode uint16

const (
	TypeHeaderItem               TypeCode = 0x0000
	TypeStringIDItem             TypeCode = 0x0001
	TypeTypeIDItem               TypeCode = 0x0002
	TypeProtoIDItem              TypeCode = 0x0003
	TypeFieldIDItem              TypeCode = 0x0004
	TypeMethodIDItem             TypeCode = 0x0005
	TypeClassDefItem             TypeCode = 0x0006
	TypeCallSiteIDItem           TypeCode = 0x0007
	TypeMethodHandleItem         TypeCode = 0x0008
	TypeMapList                  TypeCode = 0x1000
	TypeTypeList                 TypeCode = 0x1001
	TypeAnnotationSetRefList     TypeCode = 0x1002
	TypeAnnotationSetItem        TypeCode = 0x1003
	TypeClassDataItem            TypeCode = 0x2000
	TypeCodeItem                 TypeCode = 0x2001
	TypeStringDataItem           TypeCode = 0x2002
	TypeDebugInfoItem            TypeCode = 0x2003
	TypeAnnotationItem           TypeCode = 0x2004
	TypeEncodedArrayItem         TypeCode = 0x2005
	TypeAnnotationsDirectoryItem TypeCode = 0x2006
	TypeHiddenapiClassDataItem   TypeCode = 0xF000
)

// MapItem: one entry in the map list, a (type, count, offset) triple
// describing a homogeneous run of items of that type.
type MapItem struct {
	TypeCode TypeCode
	Unused   uint16
	Size     uint32
	Offset   uint32
}

func decodeMapItem(r *cursor.Reader) (*MapItem, error) {
	tc, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	unused, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	size, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	off, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &MapItem{TypeCode: TypeCode(tc), Unused: unused, Size: size, Offset: off}, nil
}

func (m *MapItem) Encode(w *sink.Writer) {
	w.WriteU16(uint16(m.TypeCode))
	w.WriteU16(m.Unused)
	w.WriteU32(m.Size)
	w.WriteU32(m.Offset)
}

func (m *MapItem) Size0() int { return 12 }

// MapList is the variable-width table that every other section (except the
// header and fixed ID tables reachable directly from it) is discovered
// through: the container orchestrator seeks to header.MapOff, decodes this
// list, then dispatches each entry's Offset/Size/TypeCode to the matching
// per-item decoder.
type MapList struct {
	List []MapItem
}

func DecodeMapList(r *cursor.Reader) (*MapList, error) {
	size, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	list := make([]MapItem, size)
	for i := range list {
		m, err := decodeMapItem(r)
		if err != nil {
			return nil, err
		}
		list[i] = *m
	}
	return &MapList{List: list}, nil
}

func (m *MapList) Encode(w *sink.Writer) {
	w.WriteU32(uint32(len(m.List)))
	for _, item := range m.List {
		item.Encode(w)
	}
}

func (m *MapList) Size() int { return 4 + len(m.List)*12 }

// Get returns the last entry matching tc, mirroring how multiple map
// entries of the same type are resolved to the most recent one.
func (m *MapList) Get(tc TypeCode) (MapItem, bool) {
	var found MapItem
	ok := false
	for _, item := range m.List {
		if item.TypeCode == tc {
			found = item
			ok = true
		}
	}
	return found, ok
}

// RequireUnique returns an error if tc appears more than once, used for
// the fixed-position sections a map is only supposed to name once.
func (m *MapList) RequireUnique(tc TypeCode) error {
	count := 0
	for _, item := range m.List {
		if item.TypeCode == tc {
			count++
		}
	}
	if count > 1 {
		return fmt.Errorf("%w: type 0x%04x appears %d times", errs.ErrDuplicateMapType, tc, count)
	}
	return nil
}
