package binary

import (
	"encoding/binary"
	"math"
	"strings"
)

// Writer appends fixed-width values and NUL-terminated strings to a growable
// in-memory buffer.
type Writer struct {
	buf   []byte
	order binary.ByteOrder
}

// NewWriter creates a writer with the given configuration and an initial
// capacity hint.
func NewWriter(cfg Config, sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{
		buf:   make([]byte, 0, sizeHint),
		order: cfg.ByteOrder,
	}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends data unchanged.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	var tmp [4]byte
	w.order.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	var tmp [8]byte
	w.order.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// WriteInt64 writes a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteFloat64 writes an IEEE-754 double.
func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteCString writes s followed by a NUL terminator. Strings containing a
// NUL byte cannot be represented and are rejected.
func (w *Writer) WriteCString(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return ErrEmbeddedNul
	}
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
	return nil
}

// WriteInt32s writes each value as a signed 32-bit integer.
func (w *Writer) WriteInt32s(vs []int32) {
	w.buf = growBy(w.buf, 4*len(vs))
	for _, v := range vs {
		w.WriteUint32(uint32(v))
	}
}

// WriteInt64s writes each value as a signed 64-bit integer.
func (w *Writer) WriteInt64s(vs []int64) {
	w.buf = growBy(w.buf, 8*len(vs))
	for _, v := range vs {
		w.WriteUint64(uint64(v))
	}
}

// WriteFloat64s writes each value as an IEEE-754 double.
func (w *Writer) WriteFloat64s(vs []float64) {
	w.buf = growBy(w.buf, 8*len(vs))
	for _, v := range vs {
		w.WriteUint64(math.Float64bits(v))
	}
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}

func growBy(buf []byte, n int) []byte {
	if cap(buf)-len(buf) >= n {
		return buf
	}
	grown := make([]byte, len(buf), len(buf)+n)
	copy(grown, buf)
	return grown
}
