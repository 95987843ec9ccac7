// Package binary provides low-level byte reading and writing for GWY
// serialization.
package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a read requires.
	ErrTruncated = errors.New("truncated input")

	// ErrEmbeddedNul is returned when a string to be written contains a NUL byte.
	ErrEmbeddedNul = errors.New("string contains embedded NUL")
)

// Config holds reader and writer configuration.
type Config struct {
	ByteOrder binary.ByteOrder
}

// DefaultConfig returns the configuration used by GWY files, which are
// always little-endian.
func DefaultConfig() Config {
	return Config{ByteOrder: binary.LittleEndian}
}

// Reader reads fixed-width values and NUL-terminated strings from an
// in-memory buffer. Every read is bounds-checked against the buffer.
type Reader struct {
	buf   []byte
	order binary.ByteOrder
	pos   int
	base  int64 // absolute offset of buf[0] in the original input
}

// NewReader creates a reader over buf with the given configuration.
func NewReader(buf []byte, cfg Config) *Reader {
	return &Reader{
		buf:   buf,
		order: cfg.ByteOrder,
	}
}

// Pos returns the current read position relative to this reader's buffer.
func (r *Reader) Pos() int {
	return r.pos
}

// Offset returns the absolute position in the original input. For readers
// created with Sub it accounts for the parent's position.
func (r *Reader) Offset() int64 {
	return r.base + int64(r.pos)
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Sub returns a reader bounded to the next n bytes and advances r past them.
// Reads from the returned reader can never see bytes beyond the n-byte window.
func (r *Reader) Sub(n int) (*Reader, error) {
	if n < 0 || n > r.Len() {
		return nil, ErrTruncated
	}
	sub := &Reader{
		buf:   r.buf[r.pos : r.pos+n : r.pos+n],
		order: r.order,
		base:  r.Offset(),
	}
	r.pos += n
	return sub, nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the
// underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Peek returns the next n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, ErrTruncated
	}
	return r.buf[r.pos : r.pos+n], nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat64 reads an IEEE-754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadCString reads a NUL-terminated string and consumes the terminator.
// The string bytes are returned unchanged, without any re-encoding.
func (r *Reader) ReadCString() (string, error) {
	idx := bytes.IndexByte(r.buf[r.pos:], 0)
	if idx < 0 {
		return "", ErrTruncated
	}
	s := string(r.buf[r.pos : r.pos+idx])
	r.pos += idx + 1
	return s, nil
}

// ReadInt32s reads n consecutive signed 32-bit integers.
func (r *Reader) ReadInt32s(n int) ([]int32, error) {
	buf, err := r.readElems(n, 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(r.order.Uint32(buf[4*i:]))
	}
	return out, nil
}

// ReadInt64s reads n consecutive signed 64-bit integers.
func (r *Reader) ReadInt64s(n int) ([]int64, error) {
	buf, err := r.readElems(n, 8)
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.order.Uint64(buf[8*i:]))
	}
	return out, nil
}

// ReadFloat64s reads n consecutive doubles.
func (r *Reader) ReadFloat64s(n int) ([]float64, error) {
	buf, err := r.readElems(n, 8)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(r.order.Uint64(buf[8*i:]))
	}
	return out, nil
}

// readElems checks the byte size of n elements before touching memory so a
// corrupt count cannot trigger a huge allocation.
func (r *Reader) readElems(n, size int) ([]byte, error) {
	if n < 0 || n > r.Len()/size {
		return nil, ErrTruncated
	}
	return r.ReadBytes(n * size)
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}
