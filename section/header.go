// Package section implements the per-record codecs for every fixed and
// variable-width table in a dex container: the header, the five fixed ID
// tables, class definitions, and the offset-addressed item kinds a map
// entry can point at (string data, code, debug info, annotations, and so
// on). Each item follows the decode(cursor)/Encode(sink)/Size() contract
// from the instr package, generalized here to heterogeneous field layouts
// instead of one opcode-keyed dispatch.
package section

import (
	"fmt"

	"github.com/dexcodec/dex/endian"
	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
)

var dexMagic = [4]byte{'d', 'e', 'x', '\n'}

// HeaderSize is the fixed byte size of Header, matching header_size for
// every dex version this codec accepts.
const HeaderSize = 0x70

// Header mirrors the leading 0x70-byte struct every dex file opens with.
type Header struct {
	Magic         [8]byte
	Checksum      uint32
	Signature     [20]byte
	FileSize      uint32
	HeaderSize    uint32
	EndianTag     uint32
	LinkSize      uint32
	LinkOff       uint32
	MapOff        uint32
	StringIDsSize uint32
	StringIDsOff  uint32
	TypeIDsSize   uint32
	TypeIDsOff    uint32
	ProtoIDsSize  uint32
	ProtoIDsOff   uint32
	FieldIDsSize  uint32
	FieldIDsOff   uint32
	MethodIDsSize uint32
	MethodIDsOff  uint32
	ClassDefsSize uint32
	ClassDefsOff  uint32
	DataSize      uint32
	DataOff       uint32
}

// DecodeHeader reads the header at the cursor's current position (expected
// to be offset 0) without validating the endian tag — callers resolve the
// tag first and re-open the cursor with the matching engine.
func DecodeHeader(r *cursor.Reader) (*Header, error) {
	h := &Header{}
	magic, err := r.ReadN(8)
	if err != nil {
		return nil, err
	}
	copy(h.Magic[:], magic)
	if h.Magic[0] != dexMagic[0] || h.Magic[1] != dexMagic[1] || h.Magic[2] != dexMagic[2] || h.Magic[3] != dexMagic[3] {
		return nil, fmt.Errorf("%w: magic %q", errs.ErrBadMagic, h.Magic[:4])
	}
	if h.Checksum, err = r.ReadU32(); err != nil {
		return nil, err
	}
	sig, err := r.ReadN(20)
	if err != nil {
		return nil, err
	}
	copy(h.Signature[:], sig)
	fields := []*uint32{
		&h.FileSize, &h.HeaderSize, &h.EndianTag, &h.LinkSize, &h.LinkOff, &h.MapOff,
		&h.StringIDsSize, &h.StringIDsOff, &h.TypeIDsSize, &h.TypeIDsOff,
		&h.ProtoIDsSize, &h.ProtoIDsOff, &h.FieldIDsSize, &h.FieldIDsOff,
		&h.MethodIDsSize, &h.MethodIDsOff, &h.ClassDefsSize, &h.ClassDefsOff,
		&h.DataSize, &h.DataOff,
	}
	for _, f := range fields {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	if h.HeaderSize != HeaderSize {
		return nil, fmt.Errorf("%w: header_size %d", errs.ErrInvalidHeaderSize, h.HeaderSize)
	}
	return h, nil
}

func (h *Header) Encode(w *sink.Writer) {
	w.WriteBytes(h.Magic[:])
	w.WriteU32(h.Checksum)
	w.WriteBytes(h.Signature[:])
	for _, v := range []uint32{
		h.FileSize, h.HeaderSize, h.EndianTag, h.LinkSize, h.LinkOff, h.MapOff,
		h.StringIDsSize, h.StringIDsOff, h.TypeIDsSize, h.TypeIDsOff,
		h.ProtoIDsSize, h.ProtoIDsOff, h.FieldIDsSize, h.FieldIDsOff,
		h.MethodIDsSize, h.MethodIDsOff, h.ClassDefsSize, h.ClassDefsOff,
		h.DataSize, h.DataOff,
	} {
		w.WriteU32(v)
	}
}

func (h *Header) Size() int { return HeaderSize }

// ResolveEndian peeks the endian_tag field of a raw dex buffer (fixed
// offset 40) and returns the matching engine without consuming input.
func ResolveEndian(data []byte) (endian.EndianEngine, error) {
	r := cursor.New(data, endian.GetLittleEndianEngine())
	if err := r.Seek(40); err != nil {
		return nil, err
	}
	tag, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return endian.ForTag(tag)
}
