package blob

import (
	"fmt"

	"github.com/dexcodec/dex/endian"
	"github.com/dexcodec/dex/internal/options"
	"github.com/dexcodec/dex/internal/pool"
	"github.com/dexcodec/dex/internal/sink"
	"github.com/dexcodec/dex/section"
)

// Encoder renders a Model back into its byte layout. The zero value is
// ready to use; NewEncoder exists to accept EncoderOption the same way
// NewDecoder accepts DecoderOption.
type Encoder struct {
	cfg encoderConfig
}

// NewEncoder applies opts to a new Encoder.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{}
	if err := options.Apply(&e.cfg, opts...); err != nil {
		return nil, err
	}
	return e, nil
}

// Encode renders m back into the exact byte layout it was decoded from:
// every section is written at the offset recorded on its Model entry (the
// fixed ID table offsets on Header, the map entry offsets for everything
// else), rather than a freshly computed layout. This is what makes
// Encode(Decode(data)) reproduce data byte-for-byte.
func (e *Encoder) Encode(m *Model) ([]byte, error) {
	header := m.Header
	if e.cfg.fileSizeOverride != nil {
		header.FileSize = *e.cfg.fileSizeOverride
	}
	engine, err := endian.ForTag(header.EndianTag)
	if err != nil {
		return nil, err
	}
	out := make([]byte, header.FileSize)

	place(out, 0, renderItem(&header, engine))

	if err := placeFixedTable(out, engine, m.Header.StringIDsOff, m.StringIDs, (*section.StringIDItem).Encode); err != nil {
		return nil, fmt.Errorf("string_ids: %w", err)
	}
	if err := placeFixedTable(out, engine, m.Header.TypeIDsOff, m.TypeIDs, (*section.TypeIDItem).Encode); err != nil {
		return nil, fmt.Errorf("type_ids: %w", err)
	}
	if err := placeFixedTable(out, engine, m.Header.ProtoIDsOff, m.ProtoIDs, (*section.ProtoIDItem).Encode); err != nil {
		return nil, fmt.Errorf("proto_ids: %w", err)
	}
	if err := placeFixedTable(out, engine, m.Header.FieldIDsOff, m.FieldIDs, (*section.FieldIDItem).Encode); err != nil {
		return nil, fmt.Errorf("field_ids: %w", err)
	}
	if err := placeFixedTable(out, engine, m.Header.MethodIDsOff, m.MethodIDs, (*section.MethodIDItem).Encode); err != nil {
		return nil, fmt.Errorf("method_ids: %w", err)
	}
	if err := placeFixedTable(out, engine, m.Header.ClassDefsOff, m.ClassDefs, (*section.ClassDefItem).Encode); err != nil {
		return nil, fmt.Errorf("class_defs: %w", err)
	}

	if item, ok := m.MapList.Get(section.TypeCallSiteIDItem); ok {
		if err := placeFixedTable(out, engine, item.Offset, m.CallSiteIDs, (*section.CallSiteIDItem).Encode); err != nil {
			return nil, fmt.Errorf("call_site_ids: %w", err)
		}
	}
	if item, ok := m.MapList.Get(section.TypeMethodHandleItem); ok {
		if err := placeFixedTable(out, engine, item.Offset, m.MethodHandles, (*section.MethodHandleItem).Encode); err != nil {
			return nil, fmt.Errorf("method_handles: %w", err)
		}
	}

	for off, v := range m.TypeLists {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.StringDataItems {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.AnnotationSetRefLists {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.AnnotationSetItems {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.AnnotationItems {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.AnnotationsDirectoryItems {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.EncodedArrayItems {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.ClassDataItems {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.DebugInfoItems {
		place(out, off, renderItem(v, engine))
	}
	for off, v := range m.CodeItems {
		place(out, off, renderItem(v, engine))
	}

	if m.HiddenapiClassDataItem != nil {
		if item, ok := m.MapList.Get(section.TypeHiddenapiClassDataItem); ok {
			place(out, item.Offset, renderItem(m.HiddenapiClassDataItem, engine))
		}
	}

	place(out, m.Header.MapOff, renderItem(&m.MapList, engine))

	if m.Header.LinkSize > 0 {
		copy(out[m.Header.LinkOff:m.Header.LinkOff+m.Header.LinkSize], m.LinkData)
	}

	return out, nil
}

type encodable interface {
	Encode(w *sink.Writer)
}

func renderItem(item encodable, engine endian.EndianEngine) []byte {
	buf := pool.NewByteBuffer(64)
	w := sink.New(buf, engine)
	item.Encode(w)
	return w.Bytes()
}

func place(out []byte, offset uint32, data []byte) {
	copy(out[offset:], data)
}

func placeFixedTable[T any](out []byte, engine endian.EndianEngine, off uint32, items []T, encode func(*T, *sink.Writer)) error {
	if len(items) == 0 {
		return nil
	}
	buf := pool.NewByteBuffer(64 * len(items))
	w := sink.New(buf, engine)
	for i := range items {
		encode(&items[i], w)
	}
	place(out, off, w.Bytes())
	return nil
}
