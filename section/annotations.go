package section

import (
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
	"github.com/dexcodec/dex/value"
)

// AnnotationsDirectoryItem gathers every annotation attached to a class,
// its fields, its methods, and its method parameters.
type AnnotationsDirectoryItem struct {
	ClassAnnotationsOff  uint32
	FieldAnnotations     []FieldAnnotation
	MethodAnnotations    []MethodAnnotation
	ParameterAnnotations []ParameterAnnotation
}

func DecodeAnnotationsDirectoryItem(r *cursor.Reader) (*AnnotationsDirectoryItem, error) {
	classOff, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	fieldsSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	methodsSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	paramsSize, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	fields := make([]FieldAnnotation, fieldsSize)
	for i := range fields {
		v, err := decodeFieldAnnotation(r)
		if err != nil {
			return nil, err
		}
		fields[i] = *v
	}
	methods := make([]MethodAnnotation, methodsSize)
	for i := range methods {
		v, err := decodeMethodAnnotation(r)
		if err != nil {
			return nil, err
		}
		methods[i] = *v
	}
	params := make([]ParameterAnnotation, paramsSize)
	for i := range params {
		v, err := decodeParameterAnnotation(r)
		if err != nil {
			return nil, err
		}
		params[i] = *v
	}
	return &AnnotationsDirectoryItem{
		ClassAnnotationsOff:  classOff,
		FieldAnnotations:     fields,
		MethodAnnotations:    methods,
		ParameterAnnotations: params,
	}, nil
}

func (a *AnnotationsDirectoryItem) Encode(w *sink.Writer) {
	w.WriteU32(a.ClassAnnotationsOff)
	w.WriteU32(uint32(len(a.FieldAnnotations)))
	w.WriteU32(uint32(len(a.MethodAnnotations)))
	w.WriteU32(uint32(len(a.ParameterAnnotations)))
	for _, f := range a.FieldAnnotations {
		f.Encode(w)
	}
	for _, m := range a.MethodAnnotations {
		m.Encode(w)
	}
	for _, p := range a.ParameterAnnotations {
		p.Encode(w)
	}
}

func (a *AnnotationsDirectoryItem) Size() int {
	return 16 + len(a.FieldAnnotations)*8 + len(a.MethodAnnotations)*8 + len(a.ParameterAnnotations)*8
}

type FieldAnnotation struct {
	FieldIdx       uint32
	AnnotationsOff uint32
}

func decodeFieldAnnotation(r *cursor.Reader) (*FieldAnnotation, error) {
	idx, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	off, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &FieldAnnotation{FieldIdx: idx, AnnotationsOff: off}, nil
}
func (f *FieldAnnotation) Encode(w *sink.Writer) { w.WriteU32(f.FieldIdx); w.WriteU32(f.AnnotationsOff) }

type MethodAnnotation struct {
	MethodIdx      uint32
	AnnotationsOff uint32
}

func decodeMethodAnnotation(r *cursor.Reader) (*MethodAnnotation, error) {
	idx, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	off, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &MethodAnnotation{MethodIdx: idx, AnnotationsOff: off}, nil
}
func (m *MethodAnnotation) Encode(w *sink.Writer) { w.WriteU32(m.MethodIdx); w.WriteU32(m.AnnotationsOff) }

type ParameterAnnotation struct {
	MethodIdx      uint32
	AnnotationsOff uint32
}

func decodeParameterAnnotation(r *cursor.Reader) (*ParameterAnnotation, error) {
	idx, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	off, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &ParameterAnnotation{MethodIdx: idx, AnnotationsOff: off}, nil
}
func (p *ParameterAnnotation) Encode(w *sink.Writer) { w.WriteU32(p.MethodIdx); w.WriteU32(p.AnnotationsOff) }

// AnnotationSetRefList: a class's per-parameter annotation set list.
type AnnotationSetRefList struct {
	List []uint32 // each entry is an annotations_off, 0 if none
}

func DecodeAnnotationSetRefList(r *cursor.Reader) (*AnnotationSetRefList, error) {
	size, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	list := make([]uint32, size)
	for i := range list {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		list[i] = v
	}
	return &AnnotationSetRefList{List: list}, nil
}

func (a *AnnotationSetRefList) Encode(w *sink.Writer) {
	w.WriteU32(uint32(len(a.List)))
	for _, off := range a.List {
		w.WriteU32(off)
	}
}

func (a *AnnotationSetRefList) Size() int { return 4 + len(a.List)*4 }

// AnnotationSetItem: the set of annotations attached to one class, field,
// method, or parameter, each referenced by offset into AnnotationItem.
type AnnotationSetItem struct {
	Entries []uint32
}

func DecodeAnnotationSetItem(r *cursor.Reader) (*AnnotationSetItem, error) {
	size, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	entries := make([]uint32, size)
	for i := range entries {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		entries[i] = v
	}
	return &AnnotationSetItem{Entries: entries}, nil
}

func (a *AnnotationSetItem) Encode(w *sink.Writer) {
	w.WriteU32(uint32(len(a.Entries)))
	for _, off := range a.Entries {
		w.WriteU32(off)
	}
}

func (a *AnnotationSetItem) Size() int { return 4 + len(a.Entries)*4 }

// AnnotationItem: one visibility-tagged annotation instance.
type AnnotationItem struct {
	Visibility byte
	Annotation value.EncodedAnnotation
}

func DecodeAnnotationItem(r *cursor.Reader) (*AnnotationItem, error) {
	vis, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	annot, err := value.DecodeEncodedAnnotation(r)
	if err != nil {
		return nil, err
	}
	return &AnnotationItem{Visibility: vis, Annotation: annot}, nil
}

func (a *AnnotationItem) Encode(w *sink.Writer) {
	w.WriteU8(a.Visibility)
	value.EncodeEncodedAnnotation(w, a.Annotation)
}

func (a *AnnotationItem) Size() int {
	return 1 + value.SizeEncodedAnnotation(a.Annotation)
}

// EncodedArrayItem wraps an array of encoded values, used both standalone
// (static field initializers) and as the payload of a call_site_item.
type EncodedArrayItem struct {
	Value value.EncodedArray
}

func DecodeEncodedArrayItem(r *cursor.Reader) (*EncodedArrayItem, error) {
	v, err := value.DecodeEncodedArray(r)
	if err != nil {
		return nil, err
	}
	return &EncodedArrayItem{Value: v}, nil
}

func (e *EncodedArrayItem) Encode(w *sink.Writer) { value.EncodeEncodedArray(w, e.Value) }
func (e *EncodedArrayItem) Size() int             { return value.SizeEncodedArray(e.Value) }
