package section

import (
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
)

// StringIDItem points at the offset of its StringDataItem.
type StringIDItem struct {
	StringDataOff uint32
}

func DecodeStringIDItem(r *cursor.Reader) (*StringIDItem, error) {
	off, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &StringIDItem{StringDataOff: off}, nil
}
func (i *StringIDItem) Encode(w *sink.Writer) { w.WriteU32(i.StringDataOff) }
func (i *StringIDItem) Size() int             { return 4 }

// TypeIDItem indexes a descriptor string.
type TypeIDItem struct {
	DescriptorIdx uint32
}

func DecodeTypeIDItem(r *cursor.Reader) (*TypeIDItem, error) {
	v, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &TypeIDItem{DescriptorIdx: v}, nil
}
func (i *TypeIDItem) Encode(w *sink.Writer) { w.WriteU32(i.DescriptorIdx) }
func (i *TypeIDItem) Size() int             { return 4 }

// ProtoIDItem: method prototype (shorty form, return type, parameter list offset).
type ProtoIDItem struct {
	ShortyIdx     uint32
	ReturnTypeIdx uint32
	ParametersOff uint32
}

func DecodeProtoIDItem(r *cursor.Reader) (*ProtoIDItem, error) {
	p := &ProtoIDItem{}
	var err error
	if p.ShortyIdx, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if p.ReturnTypeIdx, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if p.ParametersOff, err = r.ReadU32(); err != nil {
		return nil, err
	}
	return p, nil
}
func (p *ProtoIDItem) Encode(w *sink.Writer) {
	w.WriteU32(p.ShortyIdx)
	w.WriteU32(p.ReturnTypeIdx)
	w.WriteU32(p.ParametersOff)
}
func (p *ProtoIDItem) Size() int { return 12 }

// FieldIDItem identifies a field by declaring class, type, and name.
type FieldIDItem struct {
	ClassIdx uint16
	TypeIdx  uint16
	NameIdx  uint32
}

func DecodeFieldIDItem(r *cursor.Reader) (*FieldIDItem, error) {
	f := &FieldIDItem{}
	var err error
	if f.ClassIdx, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if f.TypeIdx, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if f.NameIdx, err = r.ReadU32(); err != nil {
		return nil, err
	}
	return f, nil
}
func (f *FieldIDItem) Encode(w *sink.Writer) {
	w.WriteU16(f.ClassIdx)
	w.WriteU16(f.TypeIdx)
	w.WriteU32(f.NameIdx)
}
func (f *FieldIDItem) Size() int { return 8 }

// MethodIDItem identifies a method by declaring class, prototype, and name.
type MethodIDItem struct {
	ClassIdx uint16
	ProtoIdx uint16
	NameIdx  uint32
}

func DecodeMethodIDItem(r *cursor.Reader) (*MethodIDItem, error) {
	m := &MethodIDItem{}
	var err error
	if m.ClassIdx, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if m.ProtoIdx, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if m.NameIdx, err = r.ReadU32(); err != nil {
		return nil, err
	}
	return m, nil
}
func (m *MethodIDItem) Encode(w *sink.Writer) {
	w.WriteU16(m.ClassIdx)
	w.WriteU16(m.ProtoIdx)
	w.WriteU32(m.NameIdx)
}
func (m *MethodIDItem) Size() int { return 8 }

// ClassDefItem: one per defined class, referencing its class data,
// interfaces, annotations, and static field initializers by offset.
type ClassDefItem struct {
	ClassIdx        uint32
	AccessFlags     uint32
	SuperclassIdx   uint32
	InterfacesOff   uint32
	SourceFileIdx   uint32
	AnnotationsOff  uint32
	ClassDataOff    uint32
	StaticValuesOff uint32
}

func DecodeClassDefItem(r *cursor.Reader) (*ClassDefItem, error) {
	c := &ClassDefItem{}
	fields := []*uint32{
		&c.ClassIdx, &c.AccessFlags, &c.SuperclassIdx, &c.InterfacesOff,
		&c.SourceFileIdx, &c.AnnotationsOff, &c.ClassDataOff, &c.StaticValuesOff,
	}
	for _, f := range fields {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	return c, nil
}
func (c *ClassDefItem) Encode(w *sink.Writer) {
	for _, v := range []uint32{
		c.ClassIdx, c.AccessFlags, c.SuperclassIdx, c.InterfacesOff,
		c.SourceFileIdx, c.AnnotationsOff, c.ClassDataOff, c.StaticValuesOff,
	} {
		w.WriteU32(v)
	}
}
func (c *ClassDefItem) Size() int { return 32 }

// CallSiteIDItem points at a call_site_item, itself an EncodedArrayItem.
type CallSiteIDItem struct {
	CallSiteOff uint32
}

func DecodeCallSiteIDItem(r *cursor.Reader) (*CallSiteIDItem, error) {
	v, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &CallSiteIDItem{CallSiteOff: v}, nil
}
func (c *CallSiteIDItem) Encode(w *sink.Writer) { w.WriteU32(c.CallSiteOff) }
func (c *CallSiteIDItem) Size() int             { return 4 }

// MethodHandleItem: a method handle's kind and its target field or method.
type MethodHandleItem struct {
	MethodHandleType uint16
	Unused1          uint16
	FieldOrMethodID  uint16
	Unused2          uint16
}

func DecodeMethodHandleItem(r *cursor.Reader) (*MethodHandleItem, error) {
	m := &MethodHandleItem{}
	var err error
	if m.MethodHandleType, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if m.Unused1, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if m.FieldOrMethodID, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if m.Unused2, err = r.ReadU16(); err != nil {
		return nil, err
	}
	return m, nil
}
func (m *MethodHandleItem) Encode(w *sink.Writer) {
	w.WriteU16(m.MethodHandleType)
	w.WriteU16(m.Unused1)
	w.WriteU16(m.FieldOrMethodID)
	w.WriteU16(m.Unused2)
}
func (m *MethodHandleItem) Size() int { return 8 }
