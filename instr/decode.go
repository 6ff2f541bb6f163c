package instr

import (
	"fmt"

	"github.com/dexcodec/dex/errs"
	"github.com/dexcodec/dex/internal/cursor"
	"github.com/dexcodec/dex/internal/sink"
)

// DecodeOne reads a single instruction or payload pseudo-instruction
// starting at the cursor's current position, dispatching on the opcode
// byte through the switch below.
func DecodeOne(r *cursor.Reader) (Instruction, error) {
	op, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	switch {
	case op == 0x00:
		sub, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		switch sub {
		case 0x00:
			return &Ins10x{Op: op}, nil
		case 0x01:
			return decodePackedSwitchPayload(r)
		case 0x02:
			return decodeSparseSwitchPayload(r)
		case 0x03:
			return decodeFillArrayDataPayload(r)
		default:
			return nil, fmt.Errorf("%w: 0x%02x", errs.ErrBadNopSubOpcode, sub)
		}
	case op == 0x01:
		return decodeIns12x(r, op)
	case op == 0x02:
		return decodeIns22x(r, op)
	case op == 0x03:
		return decodeIns32x(r, op)
	case op == 0x04:
		return decodeIns12x(r, op)
	case op == 0x05:
		return decodeIns22x(r, op)
	case op == 0x06:
		return decodeIns32x(r, op)
	case op == 0x07:
		return decodeIns12x(r, op)
	case op == 0x08:
		return decodeIns22x(r, op)
	case op == 0x09:
		return decodeIns32x(r, op)
	case op == 0x0a, op == 0x0b, op == 0x0c, op == 0x0d:
		return decodeIns11x(r, op)
	case op == 0x0e:
		return decodeIns10x(r, op)
	case op == 0x0f, op == 0x10, op == 0x11:
		return decodeIns11x(r, op)
	case op == 0x12:
		return decodeIns11n(r, op)
	case op == 0x13:
		return decodeIns21s(r, op)
	case op == 0x14:
		return decodeIns31i(r, op)
	case op == 0x15:
		return decodeIns21h(r, op)
	case op == 0x16:
		return decodeIns21s(r, op)
	case op == 0x17:
		return decodeIns31i(r, op)
	case op == 0x18:
		return decodeIns51l(r, op)
	case op == 0x19:
		return decodeIns21h(r, op)
	case op == 0x1a:
		return decodeIns21c(r, op)
	case op == 0x1b:
		return decodeIns31c(r, op)
	case op == 0x1c:
		return decodeIns21c(r, op)
	case op == 0x1d, op == 0x1e:
		return decodeIns11x(r, op)
	case op == 0x1f:
		return decodeIns21c(r, op)
	case op == 0x20:
		return decodeIns22c(r, op)
	case op == 0x21:
		return decodeIns12x(r, op)
	case op == 0x22:
		return decodeIns21c(r, op)
	case op == 0x23:
		return decodeIns22c(r, op)
	case op == 0x24:
		return decodeIns35c(r, op)
	case op == 0x25:
		return decodeIns3rc(r, op)
	case op == 0x26:
		return decodeIns31t(r, op)
	case op == 0x27:
		return decodeIns11x(r, op)
	case op == 0x28:
		return decodeIns10t(r, op)
	case op == 0x29:
		return decodeIns20t(r, op)
	case op == 0x2a:
		return decodeIns30t(r, op)
	case op == 0x2b, op == 0x2c:
		return decodeIns31t(r, op)
	case op >= 0x2d && op <= 0x31:
		return decodeIns23x(r, op)
	case op >= 0x32 && op <= 0x37:
		return decodeIns22t(r, op)
	case op >= 0x38 && op <= 0x3d:
		return decodeIns21t(r, op)
	case op >= 0x3e && op <= 0x43:
		return decodeIns10x(r, op)
	case op >= 0x44 && op <= 0x51:
		return decodeIns23x(r, op)
	case op >= 0x52 && op <= 0x5f:
		return decodeIns22c(r, op)
	case op >= 0x60 && op <= 0x6d:
		return decodeIns21c(r, op)
	case op >= 0x6e && op <= 0x72:
		return decodeIns35c(r, op)
	case op == 0x73:
		return decodeIns10x(r, op)
	case op >= 0x74 && op <= 0x78:
		return decodeIns3rc(r, op)
	case op >= 0x79 && op <= 0x7a:
		return decodeIns10x(r, op)
	case op >= 0x7b && op <= 0x8f:
		return decodeIns12x(r, op)
	case op >= 0x90 && op <= 0xaf:
		return decodeIns23x(r, op)
	case op >= 0xb0 && op <= 0xcf:
		return decodeIns12x(r, op)
	case op >= 0xd0 && op <= 0xd7:
		return decodeIns22s(r, op)
	case op >= 0xd8 && op <= 0xe2:
		return decodeIns22b(r, op)
	case op >= 0xe3 && op <= 0xf9:
		return decodeIns10x(r, op)
	case op == 0xfa:
		return decodeIns45cc(r, op)
	case op == 0xfb:
		return decodeIns4rcc(r, op)
	case op == 0xfc:
		return decodeIns35c(r, op)
	case op == 0xfd:
		return decodeIns3rc(r, op)
	case op == 0xfe, op == 0xff:
		return decodeIns21c(r, op)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownOpcodeRange, op)
	}
}

// DecodeInsns reads instructions from the current cursor position until
// insnsSize 16-bit code units have been consumed. A code unit is two
// bytes, so each decoded instruction subtracts Size()/2 from the budget.
func DecodeInsns(r *cursor.Reader, insnsSize uint32) ([]Instruction, error) {
	remaining := int(insnsSize)
	var insns []Instruction
	for remaining > 0 {
		start := r.Pos()
		insn, err := DecodeOne(r)
		if err != nil {
			return nil, err
		}
		insns = append(insns, insn)
		consumed := r.Pos() - start
		remaining -= consumed / 2
	}
	return insns, nil
}

// EncodeInsns writes each instruction in order with no additional padding;
// callers are responsible for insnsSize matching the resulting code-unit
// count when emitting the owning CodeItem.
func EncodeInsns(w *sink.Writer, insns []Instruction) {
	for _, insn := range insns {
		insn.Encode(w)
	}
}
