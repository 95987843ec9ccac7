package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestReaderReadUint8(t *testing.T) {
	r := NewReader([]byte{0x42, 0xFF}, DefaultConfig())

	v, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", v)
	}

	v, err = r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02x", v)
	}

	if _, err := r.ReadUint8(); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated past end, got %v", err)
	}
}

func TestReaderReadUint32(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(0x12345678))
	binary.Write(&buf, binary.LittleEndian, uint32(0xDEADBEEF))

	r := NewReader(buf.Bytes(), DefaultConfig())

	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", v)
	}

	v, err = r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0xDEADBEEF {
		t.Errorf("expected 0xDEADBEEF, got 0x%08x", v)
	}
}

func TestReaderSignedAndFloat(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(-7))
	binary.Write(&buf, binary.LittleEndian, int64(-1<<40))
	binary.Write(&buf, binary.LittleEndian, math.Pi)

	r := NewReader(buf.Bytes(), DefaultConfig())

	i32, err := r.ReadInt32()
	if err != nil || i32 != -7 {
		t.Fatalf("ReadInt32 = %d, %v; want -7", i32, err)
	}
	i64, err := r.ReadInt64()
	if err != nil || i64 != -1<<40 {
		t.Fatalf("ReadInt64 = %d, %v; want %d", i64, err, int64(-1<<40))
	}
	f, err := r.ReadFloat64()
	if err != nil || f != math.Pi {
		t.Fatalf("ReadFloat64 = %v, %v; want pi", f, err)
	}
	if r.Len() != 0 {
		t.Errorf("expected reader exhausted, %d bytes left", r.Len())
	}
}

func TestReaderReadCString(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{"simple", []byte("xres\x00rest"), "xres", false},
		{"empty", []byte{0, 'a'}, "", false},
		{"latin1", []byte{'\xb5', 'm', 0}, "\xb5m", false},
		{"unterminated", []byte("abc"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data, DefaultConfig())
			got, err := r.ReadCString()
			if tt.wantErr {
				if !errors.Is(err, ErrTruncated) {
					t.Fatalf("expected ErrTruncated, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadCString failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if r.Pos() != len(tt.want)+1 {
				t.Errorf("expected pos %d, got %d", len(tt.want)+1, r.Pos())
			}
		})
	}
}

func TestReaderSub(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data, DefaultConfig())
	r.ReadUint8()

	sub, err := r.Sub(3)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if sub.Offset() != 1 {
		t.Errorf("expected sub offset 1, got %d", sub.Offset())
	}
	if r.Pos() != 4 {
		t.Errorf("expected parent pos 4, got %d", r.Pos())
	}

	b, err := sub.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if !bytes.Equal(b, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("unexpected sub bytes %v", b)
	}
	if _, err := sub.ReadUint8(); !errors.Is(err, ErrTruncated) {
		t.Errorf("sub reader must not read past its window, got %v", err)
	}

	if _, err := r.Sub(10); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for oversized Sub, got %v", err)
	}
}

func TestReaderSubCStringBounded(t *testing.T) {
	// The terminator lies outside the window, so the string is unterminated.
	r := NewReader([]byte{'a', 'b', 0}, DefaultConfig())
	sub, err := r.Sub(2)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if _, err := sub.ReadCString(); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestReaderPeek(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01, 0x02, 0x03}, DefaultConfig())

	peeked, err := r.Peek(2)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if !bytes.Equal(peeked, []byte{0x00, 0x01}) {
		t.Errorf("expected [0x00, 0x01], got %v", peeked)
	}
	if r.Pos() != 0 {
		t.Errorf("Peek should not advance position, got %d", r.Pos())
	}
}

func TestReaderArrays(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, []float64{1.5, -2.5})
	binary.Write(&buf, binary.LittleEndian, []int32{3, -4})
	binary.Write(&buf, binary.LittleEndian, []int64{5, -6})

	r := NewReader(buf.Bytes(), DefaultConfig())

	fs, err := r.ReadFloat64s(2)
	if err != nil {
		t.Fatalf("ReadFloat64s failed: %v", err)
	}
	if fs[0] != 1.5 || fs[1] != -2.5 {
		t.Errorf("unexpected doubles %v", fs)
	}
	is, err := r.ReadInt32s(2)
	if err != nil {
		t.Fatalf("ReadInt32s failed: %v", err)
	}
	if is[0] != 3 || is[1] != -4 {
		t.Errorf("unexpected int32s %v", is)
	}
	qs, err := r.ReadInt64s(2)
	if err != nil {
		t.Fatalf("ReadInt64s failed: %v", err)
	}
	if qs[0] != 5 || qs[1] != -6 {
		t.Errorf("unexpected int64s %v", qs)
	}
}

func TestReaderArrayCountTooLarge(t *testing.T) {
	r := NewReader(make([]byte, 16), DefaultConfig())
	if _, err := r.ReadFloat64s(1 << 30); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
	if r.Pos() != 0 {
		t.Errorf("failed read must not advance, pos=%d", r.Pos())
	}
}
