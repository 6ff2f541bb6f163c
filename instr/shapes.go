// Package instr implements the bytecode instruction codec: one struct per
// instruction shape, keyed off a single opcode byte via the switch in
// DecodeOne, plus the three payload pseudo-instructions introduced
// by opcode 0x00.
package instr

import (
	"fmt"

	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
)

// Instruction is the uniform per-instruction codec contract: every shape
// and payload pseudo-instruction implements Encode/Size/String. Decoding
// is free-function (DecodeOne/DecodeInsns) since the shape to construct
// is only known after inspecting the opcode byte.
type Instruction interface {
	Encode(w *sink.Writer)
	// Size returns the exact byte count Encode would emit.
	Size() int
	// String returns a human-readable mnemonic rendering, matching the
	// disassembly feature original_source carries alongside the codec.
	String() string
}

// Ins10x: opcode plus one reserved zero byte. 2 bytes.
type Ins10x struct{ Op byte }

func decodeIns10x(r *cursor.Reader, op byte) (*Ins10x, error) {
	rest, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if rest != 0x00 {
		return nil, fmt.Errorf("%w: Ins10x reserved byte 0x%02x", errs.ErrNonZeroPadding, rest)
	}
	return &Ins10x{Op: op}, nil
}
func (i *Ins10x) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(0x00) }
func (i *Ins10x) Size() int             { return 2 }
func (i *Ins10x) String() string        { return opName(i.Op) }

// Ins12x: two nybble-packed 4-bit registers a,b. 2 bytes.
type Ins12x struct {
	Op   byte
	A, B uint8
}

func decodeIns12x(r *cursor.Reader, op byte) (*Ins12x, error) {
	regs, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	return &Ins12x{Op: op, A: regs & 0x0f, B: regs >> 4}, nil
}
func (i *Ins12x) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.B<<4 | i.A) }
func (i *Ins12x) Size() int             { return 2 }
func (i *Ins12x) String() string        { return fmt.Sprintf("%s v%d, v%d", opName(i.Op), i.A, i.B) }

// Ins11n: register a (low nybble) and signed immediate b (high nybble). 2 bytes.
type Ins11n struct {
	Op byte
	A  uint8
	B  int8
}

func decodeIns11n(r *cursor.Reader, op byte) (*Ins11n, error) {
	data, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	return &Ins11n{Op: op, A: data & 0x0f, B: int8(data) >> 4}, nil
}
func (i *Ins11n) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(uint8(i.B)<<4 | i.A) }
func (i *Ins11n) Size() int             { return 2 }
func (i *Ins11n) String() string        { return fmt.Sprintf("%s v%d, #%d", opName(i.Op), i.A, i.B) }

// Ins11x: single 8-bit register a. 2 bytes.
type Ins11x struct {
	Op byte
	A  uint8
}

func decodeIns11x(r *cursor.Reader, op byte) (*Ins11x, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	return &Ins11x{Op: op, A: a}, nil
}
func (i *Ins11x) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A) }
func (i *Ins11x) Size() int             { return 2 }
func (i *Ins11x) String() string        { return fmt.Sprintf("%s v%d", opName(i.Op), i.A) }

// Ins10t: signed 8-bit branch offset a. 2 bytes.
type Ins10t struct {
	Op byte
	A  int8
}

func decodeIns10t(r *cursor.Reader, op byte) (*Ins10t, error) {
	a, err := r.ReadI8()
	if err != nil {
		return nil, err
	}
	return &Ins10t{Op: op, A: a}, nil
}
func (i *Ins10t) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteI8(i.A) }
func (i *Ins10t) Size() int             { return 2 }
func (i *Ins10t) String() string        { return fmt.Sprintf("%s %d", opName(i.Op), i.A) }

// Ins20t: reserved zero byte, signed 16-bit branch offset a. 4 bytes.
type Ins20t struct {
	Op byte
	A  int16
}

func decodeIns20t(r *cursor.Reader, op byte) (*Ins20t, error) {
	rest, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if rest != 0x00 {
		return nil, fmt.Errorf("%w: Ins20t reserved byte 0x%02x", errs.ErrNonZeroPadding, rest)
	}
	a, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	return &Ins20t{Op: op, A: a}, nil
}
func (i *Ins20t) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(0x00); w.WriteI16(i.A) }
func (i *Ins20t) Size() int             { return 4 }
func (i *Ins20t) String() string        { return fmt.Sprintf("%s %d", opName(i.Op), i.A) }

// Ins20bc: signed 8-bit a, 16-bit kind index b. 4 bytes.
type Ins20bc struct {
	Op byte
	A  int8
	B  uint16
}

func decodeIns20bc(r *cursor.Reader, op byte) (*Ins20bc, error) {
	a, err := r.ReadI8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return &Ins20bc{Op: op, A: a, B: b}, nil
}
func (i *Ins20bc) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteI8(i.A); w.WriteU16(i.B) }
func (i *Ins20bc) Size() int             { return 4 }
func (i *Ins20bc) String() string {
	return fmt.Sprintf("%s %d, kind@%d", opName(i.Op), i.A, i.B)
}

// Ins22x: register a (8-bit), register/index b (16-bit). 4 bytes.
type Ins22x struct {
	Op byte
	A  uint8
	B  uint16
}

func decodeIns22x(r *cursor.Reader, op byte) (*Ins22x, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return &Ins22x{Op: op, A: a, B: b}, nil
}
func (i *Ins22x) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteU16(i.B) }
func (i *Ins22x) Size() int             { return 4 }
func (i *Ins22x) String() string        { return fmt.Sprintf("%s v%d, v%d", opName(i.Op), i.A, i.B) }

// Ins21t: register a (8-bit), signed 16-bit branch offset b. 4 bytes.
type Ins21t struct {
	Op byte
	A  uint8
	B  int16
}

func decodeIns21t(r *cursor.Reader, op byte) (*Ins21t, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	return &Ins21t{Op: op, A: a, B: b}, nil
}
func (i *Ins21t) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteI16(i.B) }
func (i *Ins21t) Size() int             { return 4 }
func (i *Ins21t) String() string        { return fmt.Sprintf("%s v%d, %d", opName(i.Op), i.A, i.B) }

// Ins21s: register a, signed 16-bit immediate b. 4 bytes.
type Ins21s struct {
	Op byte
	A  uint8
	B  int16
}

func decodeIns21s(r *cursor.Reader, op byte) (*Ins21s, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	return &Ins21s{Op: op, A: a, B: b}, nil
}
func (i *Ins21s) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteI16(i.B) }
func (i *Ins21s) Size() int             { return 4 }
func (i *Ins21s) String() string        { return fmt.Sprintf("%s v%d, %d", opName(i.Op), i.A, i.B) }

// Ins21h: register a, signed 16-bit high-order immediate b. 4 bytes.
type Ins21h struct {
	Op byte
	A  uint8
	B  int16
}

func decodeIns21h(r *cursor.Reader, op byte) (*Ins21h, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	return &Ins21h{Op: op, A: a, B: b}, nil
}
func (i *Ins21h) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteI16(i.B) }
func (i *Ins21h) Size() int             { return 4 }
func (i *Ins21h) String() string        { return fmt.Sprintf("%s v%d, #%d", opName(i.Op), i.A, i.B) }

// Ins21c: register a, 16-bit kind index b. 4 bytes.
type Ins21c struct {
	Op byte
	A  uint8
	B  uint16
}

func decodeIns21c(r *cursor.Reader, op byte) (*Ins21c, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return &Ins21c{Op: op, A: a, B: b}, nil
}
func (i *Ins21c) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteU16(i.B) }
func (i *Ins21c) Size() int             { return 4 }
func (i *Ins21c) String() string {
	return fmt.Sprintf("%s v%d, kind@%d", opName(i.Op), i.A, i.B)
}

// Ins23x: three 8-bit registers. 4 bytes.
type Ins23x struct {
	Op      byte
	A, B, C uint8
}

func decodeIns23x(r *cursor.Reader, op byte) (*Ins23x, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	c, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	return &Ins23x{Op: op, A: a, B: b, C: c}, nil
}
func (i *Ins23x) Encode(w *sink.Writer) {
	w.WriteU8(i.Op)
	w.WriteU8(i.A)
	w.WriteU8(i.B)
	w.WriteU8(i.C)
}
func (i *Ins23x) Size() int { return 4 }
func (i *Ins23x) String() string {
	return fmt.Sprintf("%s v%d, v%d, v%d", opName(i.Op), i.A, i.B, i.C)
}

// Ins22b: registers a,b (8-bit), signed 8-bit immediate c. 4 bytes.
type Ins22b struct {
	Op   byte
	A, B uint8
	C    int8
}

func decodeIns22b(r *cursor.Reader, op byte) (*Ins22b, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	c, err := r.ReadI8()
	if err != nil {
		return nil, err
	}
	return &Ins22b{Op: op, A: a, B: b, C: c}, nil
}
func (i *Ins22b) Encode(w *sink.Writer) {
	w.WriteU8(i.Op)
	w.WriteU8(i.A)
	w.WriteU8(i.B)
	w.WriteI8(i.C)
}
func (i *Ins22b) Size() int { return 4 }
func (i *Ins22b) String() string {
	return fmt.Sprintf("%s v%d, v%d, #%d", opName(i.Op), i.A, i.B, i.C)
}

// Ins22t: nybble-packed registers a,b, signed 16-bit branch offset c. 4 bytes.
type Ins22t struct {
	Op   byte
	A, B uint8
	C    int16
}

func decodeIns22t(r *cursor.Reader, op byte) (*Ins22t, error) {
	ba, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	c, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	return &Ins22t{Op: op, A: ba & 0xf, B: ba >> 4, C: c}, nil
}
func (i *Ins22t) Encode(w *sink.Writer) {
	w.WriteU8(i.Op)
	w.WriteU8(i.B<<4 | i.A)
	w.WriteI16(i.C)
}
func (i *Ins22t) Size() int { return 4 }
func (i *Ins22t) String() string {
	return fmt.Sprintf("%s v%d, v%d, %d", opName(i.Op), i.A, i.B, i.C)
}

// Ins22s: nybble-packed registers a,b, signed 16-bit immediate c. 4 bytes.
type Ins22s struct {
	Op   byte
	A, B uint8
	C    int16
}

func decodeIns22s(r *cursor.Reader, op byte) (*Ins22s, error) {
	ba, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	c, err := r.ReadI16()
	if err != nil {
		return nil, err
	}
	return &Ins22s{Op: op, A: ba & 0xf, B: ba >> 4, C: c}, nil
}
func (i *Ins22s) Encode(w *sink.Writer) {
	w.WriteU8(i.Op)
	w.WriteU8(i.B<<4 | i.A)
	w.WriteI16(i.C)
}
func (i *Ins22s) Size() int { return 4 }
func (i *Ins22s) String() string {
	return fmt.Sprintf("%s v%d, v%d, #%d", opName(i.Op), i.A, i.B, i.C)
}

// Ins22c: nybble-packed registers a,b, 16-bit kind index c. 4 bytes.
type Ins22c struct {
	Op   byte
	A, B uint8
	C    uint16
}

func decodeIns22c(r *cursor.Reader, op byte) (*Ins22c, error) {
	ba, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	c, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return &Ins22c{Op: op, A: ba & 0xf, B: ba >> 4, C: c}, nil
}
func (i *Ins22c) Encode(w *sink.Writer) {
	w.WriteU8(i.Op)
	w.WriteU8(i.B<<4 | i.A)
	w.WriteU16(i.C)
}
func (i *Ins22c) Size() int { return 4 }
func (i *Ins22c) String() string {
	return fmt.Sprintf("%s v%d, v%d, kind@%d", opName(i.Op), i.A, i.B, i.C)
}

// Ins22cs: same wire layout as Ins22c, used for quickened field offsets. 4 bytes.
type Ins22cs struct {
	Op   byte
	A, B uint8
	C    uint16
}

func decodeIns22cs(r *cursor.Reader, op byte) (*Ins22cs, error) {
	ba, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	c, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return &Ins22cs{Op: op, A: ba & 0xf, B: ba >> 4, C: c}, nil
}
func (i *Ins22cs) Encode(w *sink.Writer) {
	w.WriteU8(i.Op)
	w.WriteU8(i.B<<4 | i.A)
	w.WriteU16(i.C)
}
func (i *Ins22cs) Size() int { return 4 }
func (i *Ins22cs) String() string {
	return fmt.Sprintf("%s v%d, v%d, fieldoff@%d", opName(i.Op), i.A, i.B, i.C)
}

// Ins30t: reserved zero byte, signed 32-bit branch offset a. 6 bytes.
type Ins30t struct {
	Op byte
	A  int32
}

func decodeIns30t(r *cursor.Reader, op byte) (*Ins30t, error) {
	null, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if null != 0x00 {
		return nil, fmt.Errorf("%w: Ins30t reserved byte 0x%02x", errs.ErrNonZeroPadding, null)
	}
	a, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	return &Ins30t{Op: op, A: a}, nil
}
func (i *Ins30t) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(0x00); w.WriteI32(i.A) }
func (i *Ins30t) Size() int             { return 6 }
func (i *Ins30t) String() string        { return fmt.Sprintf("%s %d", opName(i.Op), i.A) }

// Ins32x: reserved zero byte, 16-bit registers a,b. 6 bytes.
type Ins32x struct {
	Op   byte
	A, B uint16
}

func decodeIns32x(r *cursor.Reader, op byte) (*Ins32x, error) {
	null, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if null != 0x00 {
		return nil, fmt.Errorf("%w: Ins32x reserved byte 0x%02x", errs.ErrNonZeroPadding, null)
	}
	a, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return &Ins32x{Op: op, A: a, B: b}, nil
}
func (i *Ins32x) Encode(w *sink.Writer) {
	w.WriteU8(i.Op)
	w.WriteU8(0x00)
	w.WriteU16(i.A)
	w.WriteU16(i.B)
}
func (i *Ins32x) Size() int      { return 6 }
func (i *Ins32x) String() string { return fmt.Sprintf("%s v%d, v%d", opName(i.Op), i.A, i.B) }

// Ins31i: register a (8-bit), signed 32-bit immediate b. 6 bytes.
type Ins31i struct {
	Op byte
	A  uint8
	B  int32
}

func decodeIns31i(r *cursor.Reader, op byte) (*Ins31i, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	return &Ins31i{Op: op, A: a, B: b}, nil
}
func (i *Ins31i) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteI32(i.B) }
func (i *Ins31i) Size() int             { return 6 }
func (i *Ins31i) String() string        { return fmt.Sprintf("%s v%d, #%d", opName(i.Op), i.A, i.B) }

// Ins31t: register a, signed 32-bit branch/table offset b. 6 bytes.
type Ins31t struct {
	Op byte
	A  uint8
	B  int32
}

func decodeIns31t(r *cursor.Reader, op byte) (*Ins31t, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadI32()
	if err != nil {
		return nil, err
	}
	return &Ins31t{Op: op, A: a, B: b}, nil
}
func (i *Ins31t) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteI32(i.B) }
func (i *Ins31t) Size() int             { return 6 }
func (i *Ins31t) String() string        { return fmt.Sprintf("%s v%d, %d", opName(i.Op), i.A, i.B) }

// Ins31c: register a, 32-bit string index b. 6 bytes.
type Ins31c struct {
	Op byte
	A  uint8
	B  uint32
}

func decodeIns31c(r *cursor.Reader, op byte) (*Ins31c, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return &Ins31c{Op: op, A: a, B: b}, nil
}
func (i *Ins31c) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteU32(i.B) }
func (i *Ins31c) Size() int             { return 6 }
func (i *Ins31c) String() string {
	return fmt.Sprintf("%s v%d, string@%d", opName(i.Op), i.A, i.B)
}

// Ins51l: register a, signed 64-bit wide immediate b. 10 bytes.
type Ins51l struct {
	Op byte
	A  uint8
	B  int64
}

func decodeIns51l(r *cursor.Reader, op byte) (*Ins51l, error) {
	a, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadI64()
	if err != nil {
		return nil, err
	}
	return &Ins51l{Op: op, A: a, B: b}, nil
}
func (i *Ins51l) Encode(w *sink.Writer) { w.WriteU8(i.Op); w.WriteU8(i.A); w.WriteI64(i.B) }
func (i *Ins51l) Size() int             { return 10 }
func (i *Ins51l) String() string        { return fmt.Sprintf("%s v%d, #%d", opName(i.Op), i.A, i.B) }
