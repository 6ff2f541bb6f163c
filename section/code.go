package section

import (
	"github.com/dexcodec/dex/instr"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
	"github.com/dexcodec/dex/varint"
)

// CodeItem holds a method body: register layout, the decoded instruction
// stream, and optional exception handler tables. A single padding code
// unit sits between insns and tries when tries is non-empty and insns_size
// is odd, keeping TryItem's 4-byte alignment.
type CodeItem struct {
	RegistersSize uint16
	InsSize       uint16
	OutsSize      uint16
	DebugInfoOff  uint32
	InsnsSize     uint32
	Insns         []instr.Instruction
	Tries         []TryItem
	Handlers      *EncodedCatchHandlerList
}

func DecodeCodeItem(r *cursor.Reader) (*CodeItem, error) {
	c := &CodeItem{}
	var err error
	if c.RegistersSize, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if c.InsSize, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if c.OutsSize, err = r.ReadU16(); err != nil {
		return nil, err
	}
	triesSize, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	if c.DebugInfoOff, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if c.InsnsSize, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if c.Insns, err = instr.DecodeInsns(r, c.InsnsSize); err != nil {
		return nil, err
	}
	if triesSize != 0 && c.InsnsSize%2 == 1 {
		if _, err := r.ReadU16(); err != nil {
			return nil, err
		}
	}
	c.Tries = make([]TryItem, triesSize)
	for i := range c.Tries {
		t, err := decodeTryItem(r)
		if err != nil {
			return nil, err
		}
		c.Tries[i] = *t
	}
	if triesSize != 0 {
		h, err := decodeEncodedCatchHandlerList(r)
		if err != nil {
			return nil, err
		}
		c.Handlers = h
	}
	return c, nil
}

func (c *CodeItem) insnsByteSize() int {
	n := 0
	for _, insn := range c.Insns {
		n += insn.Size()
	}
	return n
}

func (c *CodeItem) Encode(w *sink.Writer) {
	w.WriteU16(c.RegistersSize)
	w.WriteU16(c.InsSize)
	w.WriteU16(c.OutsSize)
	w.WriteU16(uint16(len(c.Tries)))
	w.WriteU32(c.DebugInfoOff)
	w.WriteU32(c.InsnsSize)
	instr.EncodeInsns(w, c.Insns)
	if len(c.Tries) != 0 && c.InsnsSize%2 == 1 {
		w.Pad(2)
	}
	for _, t := range c.Tries {
		t.Encode(w)
	}
	if len(c.Tries) != 0 && c.Handlers != nil {
		c.Handlers.Encode(w)
	}
}

func (c *CodeItem) Size() int {
	size := 16 + c.insnsByteSize()
	if len(c.Tries) != 0 && c.InsnsSize%2 == 1 {
		size += 2
	}
	size += len(c.Tries) * 8
	if len(c.Tries) != 0 && c.Handlers != nil {
		size += c.Handlers.Size()
	}
	return size
}

// TryItem: one guarded address range and the offset of its handler list
// within the owning EncodedCatchHandlerList.
type TryItem struct {
	StartAddr  uint32
	InsnCount  uint16
	HandlerOff uint16
}

func decodeTryItem(r *cursor.Reader) (*TryItem, error) {
	t := &TryItem{}
	var err error
	if t.StartAddr, err = r.ReadU32(); err != nil {
		return nil, err
	}
	if t.InsnCount, err = r.ReadU16(); err != nil {
		return nil, err
	}
	if t.HandlerOff, err = r.ReadU16(); err != nil {
		return nil, err
	}
	return t, nil
}
func (t *TryItem) Encode(w *sink.Writer) {
	w.WriteU32(t.StartAddr)
	w.WriteU16(t.InsnCount)
	w.WriteU16(t.HandlerOff)
}

// EncodedCatchHandlerList is itself uleb128-size-prefixed, unlike most
// lists in the format, since try_items reference individual handlers
// within it by byte offset from the list's start.
type EncodedCatchHandlerList struct {
	List []EncodedCatchHandler
}

func decodeEncodedCatchHandlerList(r *cursor.Reader) (*EncodedCatchHandlerList, error) {
	size, err := varint.DecodeUleb128(r)
	if err != nil {
		return nil, err
	}
	list := make([]EncodedCatchHandler, size)
	for i := range list {
		h, err := decodeEncodedCatchHandler(r)
		if err != nil {
			return nil, err
		}
		list[i] = *h
	}
	return &EncodedCatchHandlerList{List: list}, nil
}

func (l *EncodedCatchHandlerList) Encode(w *sink.Writer) {
	varint.EncodeUleb128(w, uint32(len(l.List)))
	for _, h := range l.List {
		h.Encode(w)
	}
}

func (l *EncodedCatchHandlerList) Size() int {
	size := varint.SizeUleb128(uint32(len(l.List)))
	for _, h := range l.List {
		size += h.size()
	}
	return size
}

// EncodedCatchHandler: a signed handler count (zero or negative signals a
// trailing catch-all address) followed by that many typed handlers.
type EncodedCatchHandler struct {
	Handlers     []EncodedTypeAddressPair
	CatchAllAddr uint32
	HasCatchAll  bool
}

func decodeEncodedCatchHandler(r *cursor.Reader) (*EncodedCatchHandler, error) {
	size, err := varint.DecodeSleb128(r)
	if err != nil {
		return nil, err
	}
	count := size
	if count < 0 {
		count = -count
	}
	handlers := make([]EncodedTypeAddressPair, count)
	for i := range handlers {
		p, err := decodeEncodedTypeAddressPair(r)
		if err != nil {
			return nil, err
		}
		handlers[i] = *p
	}
	h := &EncodedCatchHandler{Handlers: handlers}
	if size <= 0 {
		addr, err := varint.DecodeUleb128(r)
		if err != nil {
			return nil, err
		}
		h.CatchAllAddr = addr
		h.HasCatchAll = true
	}
	return h, nil
}

func (h *EncodedCatchHandler) signedSize() int32 {
	n := int32(len(h.Handlers))
	if h.HasCatchAll {
		return -n
	}
	return n
}

func (h *EncodedCatchHandler) Encode(w *sink.Writer) {
	varint.EncodeSleb128(w, h.signedSize())
	for _, p := range h.Handlers {
		p.Encode(w)
	}
	if h.HasCatchAll {
		varint.EncodeUleb128(w, h.CatchAllAddr)
	}
}

func (h *EncodedCatchHandler) size() int {
	size := varint.SizeSleb128(h.signedSize())
	for _, p := range h.Handlers {
		size += p.size()
	}
	if h.HasCatchAll {
		size += varint.SizeUleb128(h.CatchAllAddr)
	}
	return size
}

// EncodedTypeAddressPair: one exception type and its handler entry address.
type EncodedTypeAddressPair struct {
	TypeIdx uint32
	Addr    uint32
}

func decodeEncodedTypeAddressPair(r *cursor.Reader) (*EncodedTypeAddressPair, error) {
	typeIdx, err := varint.DecodeUleb128(r)
	if err != nil {
		return nil, err
	}
	addr, err := varint.DecodeUleb128(r)
	if err != nil {
		return nil, err
	}
	return &EncodedTypeAddressPair{TypeIdx: typeIdx, Addr: addr}, nil
}

func (p *EncodedTypeAddressPair) Encode(w *sink.Writer) {
	varint.EncodeUleb128(w, p.TypeIdx)
	varint.EncodeUleb128(w, p.Addr)
}

func (p *EncodedTypeAddressPair) size() int {
	return varint.SizeUleb128(p.TypeIdx) + varint.SizeUleb128(p.Addr)
}

// DebugInfoItem: the line-number/local-variable program for one method,
// terminated by a 0x00 DBG_END_SEQUENCE opcode that DecodeDebugInfoItem
// keeps as the final byte of Bytecode.
type DebugInfoItem struct {
	LineStart       uint32
	ParameterNames  []int64
	Bytecode        []byte
}

func DecodeDebugInfoItem(r *cursor.Reader) (*DebugInfoItem, error) {
	lineStart, err := varint.DecodeUleb128(r)
	if err != nil {
		return nil, err
	}
	paramCount, err := varint.DecodeUleb128(r)
	if err != nil {
		return nil, err
	}
	params := make([]int64, paramCount)
	for i := range params {
		v, err := varint.DecodeUleb128p1(r)
		if err != nil {
			return nil, err
		}
		params[i] = v
	}
	raw, err := r.ReadUntil(0x00)
	if err != nil {
		return nil, err
	}
	bytecode := make([]byte, len(raw))
	copy(bytecode, raw)
	return &DebugInfoItem{LineStart: lineStart, ParameterNames: params, Bytecode: bytecode}, nil
}

func (d *DebugInfoItem) Encode(w *sink.Writer) {
	varint.EncodeUleb128(w, d.LineStart)
	varint.EncodeUleb128(w, uint32(len(d.ParameterNames)))
	for _, p := range d.ParameterNames {
		varint.EncodeUleb128p1(w, p)
	}
	w.WriteBytes(d.Bytecode)
}

func (d *DebugInfoItem) Size() int {
	size := varint.SizeUleb128(d.LineStart) + varint.SizeUleb128(uint32(len(d.ParameterNames)))
	for _, p := range d.ParameterNames {
		size += varint.SizeUleb128p1(p)
	}
	return size + len(d.Bytecode)
}
