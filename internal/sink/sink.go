// Package sink provides the append-only byte sink every record encoder
// writes into. The container orchestrator copies each record's rendered
// bytes into the right slot of the final output buffer (see blob.Encoder),
// so record-level encoders only ever append.
package sink

import (
	"github.com/dexcodec/dex/endian"
	"github.com/dexcodec/dex/internal/pool"
)

// Writer appends encoded fields to a pooled byte buffer in a fixed
// endianness.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// New wraps buf for appends using engine's byte order.
func New(buf *pool.ByteBuffer, engine endian.EndianEngine) *Writer {
	return &Writer{buf: buf, engine: engine}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return w.buf.Len() }

func (w *Writer) WriteU8(v uint8) {
	w.buf.MustWrite([]byte{v})
}

func (w *Writer) WriteI8(v int8) {
	w.WriteU8(uint8(v))
}

func (w *Writer) WriteU16(v uint16) {
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

func (w *Writer) WriteI16(v int16) {
	w.WriteU16(uint16(v))
}

func (w *Writer) WriteU32(v uint32) {
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

func (w *Writer) WriteU64(v uint64) {
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)
}

func (w *Writer) WriteI64(v int64) {
	w.WriteU64(uint64(v))
}

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.MustWrite(b)
}

// Pad appends n zero bytes.
func (w *Writer) Pad(n int) {
	for i := 0; i < n; i++ {
		w.WriteU8(0)
	}
}
