// Package value implements the encoded-value / encoded-annotation codec:
// a tagged sum over 18 variants with a packed width prefix, recursive for
// the array and annotation cases.
package value

import (
	"fmt"

	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
	"github.com/dexcodec/dex/varint"
)

// Tag identifies an EncodedValue variant by its low-5-bits wire value_type.
type Tag byte

const (
	TagByte         Tag = 0x00
	TagShort        Tag = 0x02
	TagChar         Tag = 0x03
	TagInt          Tag = 0x04
	TagLong         Tag = 0x06
	TagFloat        Tag = 0x10
	TagDouble       Tag = 0x11
	TagMethodType   Tag = 0x15
	TagMethodHandle Tag = 0x16
	TagString       Tag = 0x17
	TagType         Tag = 0x18
	TagField        Tag = 0x19
	TagMethod       Tag = 0x1a
	TagEnum         Tag = 0x1b
	TagArray        Tag = 0x1c
	TagAnnotation   Tag = 0x1d
	TagNull         Tag = 0x1e
	TagBoolean      Tag = 0x1f
)

// Value is a decoded EncodedValue. Exactly one field is meaningful,
// selected by Tag; Array/Annotation recurse into EncodedArray/EncodedAnnotation.
type Value struct {
	Tag Tag

	Byte    int8
	Short   int16
	Char    uint16
	Int     int32
	Long    int64
	Float   float32
	Double  float64
	Index   uint32 // MethodType/MethodHandle/String/Type/Field/Method/Enum index
	Array   EncodedArray
	Annot   EncodedAnnotation
	Boolean bool
}

// EncodedArray is a ULEB128-counted sequence of encoded values, 1-byte aligned.
type EncodedArray struct {
	Values []Value
}

// AnnotationElement is a (name_idx, value) pair inside an EncodedAnnotation.
type AnnotationElement struct {
	NameIdx uint32
	Value   Value
}

// EncodedAnnotation is type_idx plus a ULEB128-counted sequence of elements.
type EncodedAnnotation struct {
	TypeIdx  uint32
	Elements []AnnotationElement
}

// Decode reads one EncodedValue starting at the cursor's current position.
func Decode(r *cursor.Reader) (Value, error) {
	header, err := r.ReadU8()
	if err != nil {
		return Value{}, err
	}
	tag := Tag(header & 0x1f)
	arg := int((header >> 5) & 0x7)
	width := arg + 1

	switch tag {
	case TagByte:
		b, err := r.ReadI8()
		return Value{Tag: tag, Byte: b}, err
	case TagShort:
		v, err := varint.ReadInt(r, width)
		return Value{Tag: tag, Short: int16(v)}, err
	case TagChar:
		v, err := varint.ReadUint(r, width)
		return Value{Tag: tag, Char: uint16(v)}, err
	case TagInt:
		v, err := varint.ReadInt(r, width)
		return Value{Tag: tag, Int: int32(v)}, err
	case TagLong:
		v, err := varint.ReadInt(r, width)
		return Value{Tag: tag, Long: v}, err
	case TagFloat:
		v, err := varint.ReadFloat32(r, width)
		return Value{Tag: tag, Float: v}, err
	case TagDouble:
		v, err := varint.ReadFloat64(r, width)
		return Value{Tag: tag, Double: v}, err
	case TagMethodType, TagMethodHandle, TagString, TagType, TagField, TagMethod, TagEnum:
		v, err := varint.ReadUint(r, width)
		return Value{Tag: tag, Index: uint32(v)}, err
	case TagArray:
		arr, err := decodeEncodedArray(r)
		return Value{Tag: tag, Array: arr}, err
	case TagAnnotation:
		ann, err := decodeEncodedAnnotation(r)
		return Value{Tag: tag, Annot: ann}, err
	case TagNull:
		return Value{Tag: tag}, nil
	case TagBoolean:
		return Value{Tag: tag, Boolean: arg != 0}, nil
	default:
		return Value{}, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidEncodedValueTag, header)
	}
}

// width returns the arg+1 byte width this value would be encoded with,
// per the minimum-width policy, or 0 for shapes with no payload width.
func (v Value) width() int {
	switch v.Tag {
	case TagByte:
		return 1
	case TagShort, TagInt, TagLong:
		return RequiredBytesSigned(v.signedPayload())
	case TagChar, TagMethodType, TagMethodHandle, TagString, TagType, TagField, TagMethod, TagEnum:
		return RequiredBytesUnsigned(v.unsignedPayload())
	case TagFloat:
		return RequiredBytesFloat32(v.Float)
	case TagDouble:
		return RequiredBytesFloat64(v.Double)
	default:
		return 0
	}
}

func (v Value) signedPayload() int64 {
	switch v.Tag {
	case TagShort:
		return int64(v.Short)
	case TagInt:
		return int64(v.Int)
	case TagLong:
		return v.Long
	default:
		return 0
	}
}

func (v Value) unsignedPayload() uint64 {
	switch v.Tag {
	case TagChar:
		return uint64(v.Char)
	default:
		return uint64(v.Index)
	}
}

// header returns the encoded tag byte: low 5 bits value_type, high 3 bits value_arg.
func (v Value) header() byte {
	arg := 0
	switch v.Tag {
	case TagByte, TagArray, TagAnnotation, TagNull:
		arg = 0
	case TagBoolean:
		if v.Boolean {
			arg = 1
		}
	default:
		w := v.width()
		if w > 0 {
			arg = w - 1
		}
	}
	return byte(arg<<5) | byte(v.Tag)
}

// Encode writes v in minimum-width form.
func Encode(w *sink.Writer, v Value) {
	w.WriteU8(v.header())

	switch v.Tag {
	case TagByte:
		w.WriteI8(v.Byte)
	case TagShort:
		varint.WriteInt(w, int64(v.Short), v.width())
	case TagChar:
		varint.WriteUint(w, uint64(v.Char), v.width())
	case TagInt:
		varint.WriteInt(w, int64(v.Int), v.width())
	case TagLong:
		varint.WriteInt(w, v.Long, v.width())
	case TagFloat:
		varint.WriteFloat32(w, v.Float, v.width())
	case TagDouble:
		varint.WriteFloat64(w, v.Double, v.width())
	case TagMethodType, TagMethodHandle, TagString, TagType, TagField, TagMethod, TagEnum:
		varint.WriteUint(w, uint64(v.Index), v.width())
	case TagArray:
		encodeEncodedArray(w, v.Array)
	case TagAnnotation:
		encodeEncodedAnnotation(w, v.Annot)
	case TagNull, TagBoolean:
		// no payload
	}
}

// Size returns the exact byte count Encode would emit for v.
func Size(v Value) int {
	switch v.Tag {
	case TagByte:
		return 2
	case TagShort, TagChar, TagInt, TagLong, TagFloat, TagDouble,
		TagMethodType, TagMethodHandle, TagString, TagType, TagField, TagMethod, TagEnum:
		return 1 + v.width()
	case TagArray:
		return 1 + sizeEncodedArray(v.Array)
	case TagAnnotation:
		return 1 + sizeEncodedAnnotation(v.Annot)
	case TagNull, TagBoolean:
		return 1
	default:
		return 1
	}
}

// DecodeEncodedArray reads a ULEB128-counted array of encoded values,
// exported for use by section items (EncodedArrayItem, call_site_item)
// that embed an array directly rather than behind a TagArray Value.
func DecodeEncodedArray(r *cursor.Reader) (EncodedArray, error) { return decodeEncodedArray(r) }

// EncodeEncodedArray writes arr in the same form DecodeEncodedArray reads.
func EncodeEncodedArray(w *sink.Writer, arr EncodedArray) { encodeEncodedArray(w, arr) }

// SizeEncodedArray returns the exact byte count EncodeEncodedArray would emit.
func SizeEncodedArray(arr EncodedArray) int { return sizeEncodedArray(arr) }

// DecodeEncodedAnnotation reads a standalone encoded_annotation, exported
// for AnnotationItem which carries one without a TagAnnotation wrapper.
func DecodeEncodedAnnotation(r *cursor.Reader) (EncodedAnnotation, error) {
	return decodeEncodedAnnotation(r)
}

// EncodeEncodedAnnotation writes ann in the same form DecodeEncodedAnnotation reads.
func EncodeEncodedAnnotation(w *sink.Writer, ann EncodedAnnotation) { encodeEncodedAnnotation(w, ann) }

// SizeEncodedAnnotation returns the exact byte count EncodeEncodedAnnotation would emit.
func SizeEncodedAnnotation(ann EncodedAnnotation) int { return sizeEncodedAnnotation(ann) }

func decodeEncodedArray(r *cursor.Reader) (EncodedArray, error) {
	count, err := varint.DecodeUleb128(r)
	if err != nil {
		return EncodedArray{}, err
	}
	values := make([]Value, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := Decode(r)
		if err != nil {
			return EncodedArray{}, err
		}
		values = append(values, v)
	}
	return EncodedArray{Values: values}, nil
}

func encodeEncodedArray(w *sink.Writer, arr EncodedArray) {
	varint.EncodeUleb128(w, uint32(len(arr.Values)))
	for _, v := range arr.Values {
		Encode(w, v)
	}
}

func sizeEncodedArray(arr EncodedArray) int {
	n := varint.SizeUleb128(uint32(len(arr.Values)))
	for _, v := range arr.Values {
		n += Size(v)
	}
	return n
}

func decodeEncodedAnnotation(r *cursor.Reader) (EncodedAnnotation, error) {
	typeIdx, err := varint.DecodeUleb128(r)
	if err != nil {
		return EncodedAnnotation{}, err
	}
	count, err := varint.DecodeUleb128(r)
	if err != nil {
		return EncodedAnnotation{}, err
	}
	elements := make([]AnnotationElement, 0, count)
	for i := uint32(0); i < count; i++ {
		nameIdx, err := varint.DecodeUleb128(r)
		if err != nil {
			return EncodedAnnotation{}, err
		}
		v, err := Decode(r)
		if err != nil {
			return EncodedAnnotation{}, err
		}
		elements = append(elements, AnnotationElement{NameIdx: nameIdx, Value: v})
	}
	return EncodedAnnotation{TypeIdx: typeIdx, Elements: elements}, nil
}

func encodeEncodedAnnotation(w *sink.Writer, ann EncodedAnnotation) {
	varint.EncodeUleb128(w, ann.TypeIdx)
	varint.EncodeUleb128(w, uint32(len(ann.Elements)))
	for _, el := range ann.Elements {
		varint.EncodeUleb128(w, el.NameIdx)
		Encode(w, el.Value)
	}
}

func sizeEncodedAnnotation(ann EncodedAnnotation) int {
	n := varint.SizeUleb128(ann.TypeIdx) + varint.SizeUleb128(uint32(len(ann.Elements)))
	for _, el := range ann.Elements {
		n += varint.SizeUleb128(el.NameIdx) + Size(el.Value)
	}
	return n
}
