// Package cursor provides a seekable byte reader used by every record
// codec. The container orchestrator (package blob) jumps to arbitrary
// map-declared offsets, so a plain io.Reader is not enough: each section
// decoder needs to seek, align, and report its own position.
package cursor

import (
	"fmt"

	"github.com/dexcodec/dex/endian"
	"github.com/dexcodec/dex/errs"
)

// Reader walks a fully materialized byte slice. The entire input is
// loaded before decoding begins, matching the codec's "seekable cursor"
// resource model: the orchestrator must be able to jump to any declared
// offset without re-reading from the start.
type Reader struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// New creates a Reader over data using engine for multi-byte field
// interpretation.
func New(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// Pos returns the current byte offset.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int { return len(r.data) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// Seek moves the cursor to an absolute offset.
func (r *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return fmt.Errorf("%w: offset %d, length %d", errs.ErrSeekOutOfRange, offset, len(r.data))
	}
	r.pos = offset
	return nil
}

// Align advances the cursor to the next multiple of a, consuming filler
// bytes. Per the container orchestrator's decode algorithm, those bytes
// are expected to be zero but are not required to be; non-zero padding is
// tolerated since some toolchains emit garbage there.
func (r *Reader) Align(a int) error {
	if a <= 1 {
		return nil
	}
	rem := r.pos % a
	if rem == 0 {
		return nil
	}
	return r.Seek(r.pos + (a - rem))
}

// ReadN consumes and returns the next n bytes without copying.
func (r *Reader) ReadN(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrUnexpectedEOF, n, r.pos, len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// PeekN returns the next n bytes without advancing the cursor.
func (r *Reader) PeekN(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrUnexpectedEOF, n, r.pos, len(r.data)-r.pos)
	}
	return r.data[r.pos : r.pos+n], nil
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.ReadN(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadN(2)
	if err != nil {
		return 0, err
	}
	return r.engine.Uint16(b), nil
}

func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadN(4)
	if err != nil {
		return 0, err
	}
	return r.engine.Uint32(b), nil
}

func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadN(8)
	if err != nil {
		return 0, err
	}
	return r.engine.Uint64(b), nil
}

func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadUntil consumes bytes up to and including the first occurrence of
// delim, returning the consumed slice (delimiter included). Used by
// DebugInfoItem, whose state-machine bytecode is terminated by opcode
// 0x00 inclusive, and by StringDataItem's NUL-terminated MUTF-8 payload.
func (r *Reader) ReadUntil(delim byte) ([]byte, error) {
	start := r.pos
	for r.pos < len(r.data) {
		if r.data[r.pos] == delim {
			r.pos++
			return r.data[start:r.pos], nil
		}
		r.pos++
	}
	r.pos = start
	return nil, errs.ErrUnexpectedEOF
}
