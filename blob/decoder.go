package blob

import (
	"fmt"

	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/options"
	"github.com/dexcodec/dex/section"
)

// Decoder parses one dex file's bytes into a Model. Construction resolves
// the endian tag and decodes the header eagerly; Decode then walks the
// fixed ID tables and the map list to materialize every section.
type Decoder struct {
	data   []byte
	header *section.Header
	cfg    decoderConfig
}

// NewDecoder resolves data's endian tag and decodes its header, returning
// an error immediately if either fails so callers never hold a Decoder
// over unparseable input.
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	engine, err := section.ResolveEndian(data)
	if err != nil {
		return nil, err
	}
	r := cursor.New(data, engine)
	header, err := section.DecodeHeader(r)
	if err != nil {
		return nil, err
	}
	d := &Decoder{data: data, header: header}
	if err := options.Apply(&d.cfg, opts...); err != nil {
		return nil, err
	}
	return d, nil
}

// Decode walks the fixed ID tables and the map list, materializing every
// section reachable from them into a Model.
func (d *Decoder) Decode() (*Model, error) {
	engine, err := section.ResolveEndian(d.data)
	if err != nil {
		return nil, err
	}
	r := cursor.New(d.data, engine)
	h := d.header
	m := newModel()
	m.Header = *h

	if m.StringIDs, err = decodeFixedTable(r, h.StringIDsOff, h.StringIDsSize, section.DecodeStringIDItem); err != nil {
		return nil, fmt.Errorf("string_ids: %w", err)
	}
	if m.TypeIDs, err = decodeFixedTable(r, h.TypeIDsOff, h.TypeIDsSize, section.DecodeTypeIDItem); err != nil {
		return nil, fmt.Errorf("type_ids: %w", err)
	}
	if m.ProtoIDs, err = decodeFixedTable(r, h.ProtoIDsOff, h.ProtoIDsSize, section.DecodeProtoIDItem); err != nil {
		return nil, fmt.Errorf("proto_ids: %w", err)
	}
	if m.FieldIDs, err = decodeFixedTable(r, h.FieldIDsOff, h.FieldIDsSize, section.DecodeFieldIDItem); err != nil {
		return nil, fmt.Errorf("field_ids: %w", err)
	}
	if m.MethodIDs, err = decodeFixedTable(r, h.MethodIDsOff, h.MethodIDsSize, section.DecodeMethodIDItem); err != nil {
		return nil, fmt.Errorf("method_ids: %w", err)
	}
	if m.ClassDefs, err = decodeFixedTable(r, h.ClassDefsOff, h.ClassDefsSize, section.DecodeClassDefItem); err != nil {
		return nil, fmt.Errorf("class_defs: %w", err)
	}

	if err := r.Seek(int(h.MapOff)); err != nil {
		return nil, err
	}
	mapList, err := section.DecodeMapList(r)
	if err != nil {
		return nil, fmt.Errorf("map_list: %w", err)
	}
	m.MapList = *mapList

	if err := requireOrderedOffsets(mapList); err != nil {
		return nil, err
	}
	for _, tc := range []section.TypeCode{
		section.TypeHeaderItem, section.TypeStringIDItem, section.TypeTypeIDItem,
		section.TypeProtoIDItem, section.TypeFieldIDItem, section.TypeMethodIDItem,
		section.TypeClassDefItem, section.TypeMapList,
	} {
		if err := mapList.RequireUnique(tc); err != nil {
			return nil, err
		}
	}

	if item, ok := mapList.Get(section.TypeCallSiteIDItem); ok {
		if m.CallSiteIDs, err = decodeFixedTable(r, item.Offset, item.Size, section.DecodeCallSiteIDItem); err != nil {
			return nil, fmt.Errorf("call_site_ids: %w", err)
		}
	}
	if item, ok := mapList.Get(section.TypeMethodHandleItem); ok {
		if m.MethodHandles, err = decodeFixedTable(r, item.Offset, item.Size, section.DecodeMethodHandleItem); err != nil {
			return nil, fmt.Errorf("method_handles: %w", err)
		}
	}

	for _, item := range mapList.List {
		switch item.TypeCode {
		case section.TypeTypeList:
			if err := decodeOffsetKeyed(r, item, 4, m.TypeLists, section.DecodeTypeList); err != nil {
				return nil, fmt.Errorf("type_list: %w", err)
			}
		case section.TypeStringDataItem:
			if err := decodeOffsetKeyed(r, item, 1, m.StringDataItems, section.DecodeStringDataItem); err != nil {
				return nil, fmt.Errorf("string_data_item: %w", err)
			}
		case section.TypeAnnotationSetRefList:
			if err := decodeOffsetKeyed(r, item, 4, m.AnnotationSetRefLists, section.DecodeAnnotationSetRefList); err != nil {
				return nil, fmt.Errorf("annotation_set_ref_list: %w", err)
			}
		case section.TypeAnnotationSetItem:
			if err := decodeOffsetKeyed(r, item, 4, m.AnnotationSetItems, section.DecodeAnnotationSetItem); err != nil {
				return nil, fmt.Errorf("annotation_set_item: %w", err)
			}
		case section.TypeAnnotationItem:
			if err := decodeOffsetKeyed(r, item, 1, m.AnnotationItems, section.DecodeAnnotationItem); err != nil {
				return nil, fmt.Errorf("annotation_item: %w", err)
			}
		case section.TypeAnnotationsDirectoryItem:
			if err := decodeOffsetKeyed(r, item, 4, m.AnnotationsDirectoryItems, section.DecodeAnnotationsDirectoryItem); err != nil {
				return nil, fmt.Errorf("annotations_directory_item: %w", err)
			}
		case section.TypeEncodedArrayItem:
			if err := decodeOffsetKeyed(r, item, 1, m.EncodedArrayItems, section.DecodeEncodedArrayItem); err != nil {
				return nil, fmt.Errorf("encoded_array_item: %w", err)
			}
		case section.TypeClassDataItem:
			if err := decodeOffsetKeyed(r, item, 1, m.ClassDataItems, section.DecodeClassDataItem); err != nil {
				return nil, fmt.Errorf("class_data_item: %w", err)
			}
		case section.TypeDebugInfoItem:
			if err := decodeOffsetKeyed(r, item, 1, m.DebugInfoItems, section.DecodeDebugInfoItem); err != nil {
				return nil, fmt.Errorf("debug_info_item: %w", err)
			}
		case section.TypeCodeItem:
			if err := decodeOffsetKeyed(r, item, 4, m.CodeItems, section.DecodeCodeItem); err != nil {
				return nil, fmt.Errorf("code_item: %w", err)
			}
		case section.TypeHiddenapiClassDataItem:
			if d.cfg.rejectHiddenapi {
				return nil, fmt.Errorf("%w: hiddenapi_class_data", errs.ErrUnsupportedFeature)
			}
			size := sectionByteSize(mapList, item.Offset, h.FileSize)
			if err := r.Seek(int(item.Offset)); err != nil {
				return nil, err
			}
			hc, err := section.DecodeHiddenapiClassDataItem(r, uint32(size), h.ClassDefsSize)
			if err != nil {
				return nil, fmt.Errorf("hiddenapi_class_data: %w", err)
			}
			m.HiddenapiClassDataItem = hc
		case section.TypeHeaderItem, section.TypeStringIDItem, section.TypeTypeIDItem,
			section.TypeProtoIDItem, section.TypeFieldIDItem, section.TypeMethodIDItem,
			section.TypeClassDefItem, section.TypeMapList,
			section.TypeCallSiteIDItem, section.TypeMethodHandleItem:
			// handled above
		default:
			return nil, fmt.Errorf("%w: 0x%04x", errs.ErrUnknownMapType, item.TypeCode)
		}
	}

	if h.LinkSize > 0 {
		if err := r.Seek(int(h.LinkOff)); err != nil {
			return nil, err
		}
		link, err := r.ReadN(int(h.LinkSize))
		if err != nil {
			return nil, fmt.Errorf("link_data: %w", err)
		}
		m.LinkData = append([]byte(nil), link...)
	}

	return m, nil
}

func decodeFixedTable[T any](r *cursor.Reader, off, size uint32, decode func(*cursor.Reader) (*T, error)) ([]T, error) {
	if size == 0 {
		return nil, nil
	}
	if err := r.Seek(int(off)); err != nil {
		return nil, err
	}
	out := make([]T, size)
	for i := range out {
		v, err := decode(r)
		if err != nil {
			return nil, err
		}
		out[i] = *v
	}
	return out, nil
}

func decodeOffsetKeyed[T any](r *cursor.Reader, item section.MapItem, align int, dst map[uint32]*T, decode func(*cursor.Reader) (*T, error)) error {
	if err := r.Seek(int(item.Offset)); err != nil {
		return err
	}
	for i := uint32(0); i < item.Size; i++ {
		if err := r.Align(align); err != nil {
			return err
		}
		itemOff := uint32(r.Pos())
		v, err := decode(r)
		if err != nil {
			return err
		}
		dst[itemOff] = v
	}
	return nil
}

// sectionByteSize returns the byte span from offset to the next larger
// offset declared anywhere in the map list, or to fileSize if offset
// belongs to the last section. Used by item kinds (hiddenapi_class_data)
// whose own encoding does not self-terminate.
func sectionByteSize(mapList *section.MapList, offset uint32, fileSize uint32) int {
	next := fileSize
	for _, item := range mapList.List {
		if item.Offset > offset && item.Offset < next {
			next = item.Offset
		}
	}
	return int(next - offset)
}

func requireOrderedOffsets(mapList *section.MapList) error {
	prev := uint32(0)
	for i, item := range mapList.List {
		if i > 0 && item.Offset < prev {
			return fmt.Errorf("%w: entry %d offset 0x%x precedes 0x%x", errs.ErrMapEntriesUnordered, i, item.Offset, prev)
		}
		prev = item.Offset
	}
	return nil
}
