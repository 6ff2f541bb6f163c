package instr

import (
	"fmt"
	"strings"

	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
)

// PackedSwitchPayload: introduced by opcode 0x00 0x01. u16 size, i32
// first_key, then size i32 targets. Byte size = size*4 + 8.
type PackedSwitchPayload struct {
	FirstKey int32
	Targets  []int32
}

func decodePackedSwitchPayload(r *cursor.Reader) (*PackedSwitchPayload, error) {
	size, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	firstKey, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	targets := make([]int32, size)
	for i := range targets {
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		targets[i] = v
	}
	return &PackedSwitchPayload{FirstKey: firstKey, Targets: targets}, nil
}

func (p *PackedSwitchPayload) Encode(w *sink.Writer) {
	w.WriteU8(0x00)
	w.WriteU8(0x01)
	w.WriteU16(uint16(len(p.Targets)))
	w.WriteI32(p.FirstKey)
	for _, t := range p.Targets {
		w.WriteI32(t)
	}
}

func (p *PackedSwitchPayload) Size() int { return len(p.Targets)*4 + 8 }

func (p *PackedSwitchPayload) String() string {
	parts := make([]string, len(p.Targets))
	for i, t := range p.Targets {
		parts[i] = fmt.Sprintf("%d", t)
	}
	return "packed-switch-payload " + strings.Join(parts, " ")
}

// SparseSwitchPayload: introduced by opcode 0x00 0x02. u16 size, then size
// keys followed by size targets (i32 each). Byte size = size*8 + 4.
type SparseSwitchPayload struct {
	Keys    []int32
	Targets []int32
}

func decodeSparseSwitchPayload(r *cursor.Reader) (*SparseSwitchPayload, error) {
	size, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	keys := make([]int32, size)
	for i := range keys {
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		keys[i] = v
	}
	targets := make([]int32, size)
	for i := range targets {
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		targets[i] = v
	}
	return &SparseSwitchPayload{Keys: keys, Targets: targets}, nil
}

func (p *SparseSwitchPayload) Encode(w *sink.Writer) {
	w.WriteU8(0x00)
	w.WriteU8(0x02)
	w.WriteU16(uint16(len(p.Keys)))
	for _, k := range p.Keys {
		w.WriteI32(k)
	}
	for _, t := range p.Targets {
		w.WriteI32(t)
	}
}

func (p *SparseSwitchPayload) Size() int { return len(p.Keys)*8 + 4 }

func (p *SparseSwitchPayload) String() string {
	parts := make([]string, len(p.Keys))
	for i := range p.Keys {
		parts[i] = fmt.Sprintf("%d -> %d", p.Keys[i], p.Targets[i])
	}
	return "sparse-switch-payload " + strings.Join(parts, " ")
}

// FillArrayDataPayload: introduced by opcode 0x00 0x03. u16 element_width,
// u32 size, then size*element_width data bytes, with one padding byte if
// that total is odd so the payload stays aligned to 16-bit code units.
type FillArrayDataPayload struct {
	ElementWidth uint16
	Data         []byte
}

func decodeFillArrayDataPayload(r *cursor.Reader) (*FillArrayDataPayload, error) {
	elementWidth, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	size, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	n := int(elementWidth) * int(size)
	data, err := r.ReadN(n)
	if err != nil {
		return nil, err
	}
	dataCopy := make([]byte, n)
	copy(dataCopy, data)
	if n%2 == 1 {
		if _, err := r.ReadU8(); err != nil {
			return nil, err
		}
	}
	return &FillArrayDataPayload{ElementWidth: elementWidth, Data: dataCopy}, nil
}

func (p *FillArrayDataPayload) elementCount() uint32 {
	if p.ElementWidth == 0 {
		return 0
	}
	return uint32(len(p.Data)) / uint32(p.ElementWidth)
}

func (p *FillArrayDataPayload) Encode(w *sink.Writer) {
	w.WriteU8(0x00)
	w.WriteU8(0x03)
	w.WriteU16(p.ElementWidth)
	w.WriteU32(p.elementCount())
	w.WriteBytes(p.Data)
	if len(p.Data)%2 == 1 {
		w.WriteU8(0x00)
	}
}

func (p *FillArrayDataPayload) Size() int {
	size := len(p.Data) + 8
	if size%2 == 1 {
		return size + 1
	}
	return size
}

func (p *FillArrayDataPayload) String() string {
	parts := make([]string, len(p.Data))
	for i, b := range p.Data {
		parts[i] = fmt.Sprintf("0x%X", b)
	}
	return fmt.Sprintf("fill-array-data-payload width: %d size: %d bytes: %s",
		p.ElementWidth, p.elementCount(), strings.Join(parts, " "))
}
