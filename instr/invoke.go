package instr

import (
	"fmt"

	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
)

// invoke5 holds the common register/kind-index layout shared by
// Ins35c/Ins35ms/Ins35mi: a packs the argument count, b is a 16-bit kind
// index, and c,d,e,f,g are up to five 4-bit argument registers.
type invoke5 struct {
	Op      byte
	A       uint8
	B       uint16
	C, D, E, F, G uint8
}

func decodeInvoke5(r *cursor.Reader, op byte) (invoke5, error) {
	ag, err := r.ReadU8()
	if err != nil {
		return invoke5{}, err
	}
	b, err := r.ReadU16()
	if err != nil {
		return invoke5{}, err
	}
	dc, err := r.ReadU8()
	if err != nil {
		return invoke5{}, err
	}
	fe, err := r.ReadU8()
	if err != nil {
		return invoke5{}, err
	}
	return invoke5{
		Op: op,
		A:  ag >> 4,
		B:  b,
		C:  dc & 0xf,
		D:  dc >> 4,
		E:  fe & 0xf,
		F:  fe >> 4,
		G:  ag & 0xf,
	}, nil
}

func (v invoke5) encode(w *sink.Writer) {
	w.WriteU8(v.Op)
	w.WriteU8(v.A<<4 | v.G)
	w.WriteU16(v.B)
	w.WriteU8(v.D<<4 | v.C)
	w.WriteU8(v.F<<4 | v.E)
}

// Ins35c: "invoke-kind" with up to 5 inline argument registers and a
// 16-bit method/type kind index. 6 bytes.
type Ins35c struct{ invoke5 }

func decodeIns35c(r *cursor.Reader, op byte) (*Ins35c, error) {
	v, err := decodeInvoke5(r, op)
	if err != nil {
		return nil, err
	}
	return &Ins35c{v}, nil
}
func (i *Ins35c) Encode(w *sink.Writer) { i.invoke5.encode(w) }
func (i *Ins35c) Size() int             { return 6 }
func (i *Ins35c) String() string {
	return fmt.Sprintf("%s %d v%d, v%d, v%d, v%d, v%d, kind@%d",
		opName(i.Op), i.A, i.C, i.D, i.E, i.F, i.G, i.B)
}

// Ins35ms: quickened invoke-virtual via vtable offset. 6 bytes.
type Ins35ms struct{ invoke5 }

func decodeIns35ms(r *cursor.Reader, op byte) (*Ins35ms, error) {
	v, err := decodeInvoke5(r, op)
	if err != nil {
		return nil, err
	}
	return &Ins35ms{v}, nil
}
func (i *Ins35ms) Encode(w *sink.Writer) { i.invoke5.encode(w) }
func (i *Ins35ms) Size() int             { return 6 }
func (i *Ins35ms) String() string {
	return fmt.Sprintf("%s %d v%d, v%d, v%d, v%d, v%d, vtaboff@%d",
		opName(i.Op), i.A, i.C, i.D, i.E, i.F, i.G, i.B)
}

// Ins35mi: quickened invoke via inline method table. 6 bytes.
type Ins35mi struct{ invoke5 }

func decodeIns35mi(r *cursor.Reader, op byte) (*Ins35mi, error) {
	v, err := decodeInvoke5(r, op)
	if err != nil {
		return nil, err
	}
	return &Ins35mi{v}, nil
}
func (i *Ins35mi) Encode(w *sink.Writer) { i.invoke5.encode(w) }
func (i *Ins35mi) Size() int             { return 6 }
func (i *Ins35mi) String() string {
	return fmt.Sprintf("%s %d v%d, v%d, v%d, v%d, v%d, inline@%d",
		opName(i.Op), i.A, i.C, i.D, i.E, i.F, i.G, i.B)
}

// invokeRange holds the common layout shared by Ins3rc/Ins3rms/Ins3rmi: a
// register count, a 16-bit kind index, and c the first register of a
// contiguous range.
type invokeRange struct {
	Op byte
	A  uint8
	B  uint16
	C  uint16
}

func decodeInvokeRange(r *cursor.Reader, op byte) (invokeRange, error) {
	a, err := r.ReadU8()
	if err != nil {
		return invokeRange{}, err
	}
	b, err := r.ReadU16()
	if err != nil {
		return invokeRange{}, err
	}
	c, err := r.ReadU16()
	if err != nil {
		return invokeRange{}, err
	}
	return invokeRange{Op: op, A: a, B: b, C: c}, nil
}

func (v invokeRange) encode(w *sink.Writer) {
	w.WriteU8(v.Op)
	w.WriteU8(v.A)
	w.WriteU16(v.B)
	w.WriteU16(v.C)
}

func (v invokeRange) lastReg() uint16 {
	return v.C + uint16(v.A) - 1
}

// Ins3rc: "invoke-kind/range" over a contiguous register range. 6 bytes.
type Ins3rc struct{ invokeRange }

func decodeIns3rc(r *cursor.Reader, op byte) (*Ins3rc, error) {
	v, err := decodeInvokeRange(r, op)
	if err != nil {
		return nil, err
	}
	return &Ins3rc{v}, nil
}
func (i *Ins3rc) Encode(w *sink.Writer) { i.invokeRange.encode(w) }
func (i *Ins3rc) Size() int             { return 6 }
func (i *Ins3rc) String() string {
	return fmt.Sprintf("%s {v%d .. v%d}, kind@%d", opName(i.Op), i.C, i.lastReg(), i.B)
}

// Ins3rms: quickened invoke-virtual/range via vtable offset. 6 bytes.
type Ins3rms struct{ invokeRange }

func decodeIns3rms(r *cursor.Reader, op byte) (*Ins3rms, error) {
	v, err := decodeInvokeRange(r, op)
	if err != nil {
		return nil, err
	}
	return &Ins3rms{v}, nil
}
func (i *Ins3rms) Encode(w *sink.Writer) { i.invokeRange.encode(w) }
func (i *Ins3rms) Size() int             { return 6 }
func (i *Ins3rms) String() string {
	return fmt.Sprintf("%s {v%d .. v%d}, vtaboff@%d", opName(i.Op), i.C, i.lastReg(), i.B)
}

// Ins3rmi: quickened invoke/range via inline method table. 6 bytes.
type Ins3rmi struct{ invokeRange }

func decodeIns3rmi(r *cursor.Reader, op byte) (*Ins3rmi, error) {
	v, err := decodeInvokeRange(r, op)
	if err != nil {
		return nil, err
	}
	return &Ins3rmi{v}, nil
}
func (i *Ins3rmi) Encode(w *sink.Writer) { i.invokeRange.encode(w) }
func (i *Ins3rmi) Size() int             { return 6 }
func (i *Ins3rmi) String() string {
	return fmt.Sprintf("%s {v%d .. v%d}, inline@%d", opName(i.Op), i.C, i.lastReg(), i.B)
}

// Ins45cc: invoke-polymorphic, invoke5 layout plus a trailing 16-bit proto
// index h. 8 bytes.
type Ins45cc struct {
	invoke5
	H uint16
}

func decodeIns45cc(r *cursor.Reader, op byte) (*Ins45cc, error) {
	v, err := decodeInvoke5(r, op)
	if err != nil {
		return nil, err
	}
	h, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return &Ins45cc{invoke5: v, H: h}, nil
}
func (i *Ins45cc) Encode(w *sink.Writer) { i.invoke5.encode(w); w.WriteU16(i.H) }
func (i *Ins45cc) Size() int             { return 8 }
func (i *Ins45cc) String() string {
	return fmt.Sprintf("%s %d v%d, v%d, v%d, v%d, v%d, meth@%d, proto@%d",
		opName(i.Op), i.A, i.C, i.D, i.E, i.F, i.G, i.B, i.H)
}

// Ins4rcc: invoke-polymorphic/range, invokeRange layout plus a trailing
// 16-bit proto index h. 8 bytes.
type Ins4rcc struct {
	invokeRange
	H uint16
}

func decodeIns4rcc(r *cursor.Reader, op byte) (*Ins4rcc, error) {
	v, err := decodeInvokeRange(r, op)
	if err != nil {
		return nil, err
	}
	h, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return &Ins4rcc{invokeRange: v, H: h}, nil
}
func (i *Ins4rcc) Encode(w *sink.Writer) { i.invokeRange.encode(w); w.WriteU16(i.H) }
func (i *Ins4rcc) Size() int             { return 8 }
func (i *Ins4rcc) String() string {
	return fmt.Sprintf("%s {v%d .. v%d}, meth@%d, proto@%d", opName(i.Op), i.C, i.lastReg(), i.B, i.H)
}
