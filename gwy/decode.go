package gwy

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/robert-malhotra/go-gwy/internal/binary"
)

// minObjectSize is the smallest serialized object: a one-character kind,
// its terminator and the size field.
const minObjectSize = 2 + 4

// Decode parses a complete document. The input must hold exactly one root
// object after the header; any other layout is rejected.
//
// The returned tree does not alias data.
func Decode(data []byte, opts ...Option) (*Document, error) {
	o := applyOptions(opts)
	r := binary.NewReader(data, binary.DefaultConfig())
	d := &decoder{top: r, maxDepth: o.maxDepth, log: o.logger}

	header, err := r.ReadBytes(MagicLen)
	if err != nil {
		return nil, d.fail(r, err, "", "file header")
	}
	magic := Magic(header)
	if !magic.Valid() {
		return nil, &DecodeError{Class: ErrFormat, Offset: 0, Reason: fmt.Sprintf("unrecognized file header %q", header)}
	}

	root, err := d.node(r, "", 0)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, &DecodeError{
			Class:  ErrFormat,
			Offset: r.Offset(),
			Reason: fmt.Sprintf("%d trailing bytes after root object", r.Len()),
		}
	}

	d.log.Debug().
		Str("magic", string(magic)).
		Str("root", root.Kind()).
		Int("bytes", len(data)).
		Msg("decoded document")
	return &Document{Magic: magic, Root: root}, nil
}

// DecodeNode parses one serialized object from the start of data and
// returns it with the number of bytes it occupied. Bytes after the object
// are ignored.
func DecodeNode(data []byte, opts ...Option) (*Node, int, error) {
	o := applyOptions(opts)
	r := binary.NewReader(data, binary.DefaultConfig())
	d := &decoder{top: r, maxDepth: o.maxDepth, log: o.logger}

	n, err := d.node(r, "", 0)
	if err != nil {
		return nil, 0, err
	}
	return n, r.Pos(), nil
}

type decoder struct {
	top      *binary.Reader
	maxDepth int
	log      zerolog.Logger
}

// fail converts a reader error into a DecodeError. Running out of bytes in
// the top-level input is truncation; running out inside an object body
// means a component claimed more bytes than the object's size field
// allows, which is corruption.
func (d *decoder) fail(r *binary.Reader, err error, path, what string) error {
	if !errors.Is(err, binary.ErrTruncated) {
		return &DecodeError{Class: ErrFormat, Offset: r.Offset(), Path: path, Reason: fmt.Sprintf("%s: %v", what, err)}
	}
	if r != d.top {
		return &DecodeError{Class: ErrFormat, Offset: r.Offset(), Path: path, Reason: what + " overruns enclosing object"}
	}
	return &DecodeError{Class: ErrTruncated, Offset: r.Offset(), Path: path, Reason: what + ": unexpected end of input"}
}

func (d *decoder) formatErr(r *binary.Reader, path, format string, args ...any) error {
	return &DecodeError{Class: ErrFormat, Offset: r.Offset(), Path: path, Reason: fmt.Sprintf(format, args...)}
}

// node decodes name\0 + uint32 size + exactly size bytes of components.
func (d *decoder) node(r *binary.Reader, path string, depth int) (*Node, error) {
	if depth >= d.maxDepth {
		return nil, d.formatErr(r, path, "object nesting exceeds %d levels", d.maxDepth)
	}
	start := r.Offset()

	kind, err := r.ReadCString()
	if err != nil {
		return nil, d.fail(r, err, path, "object name")
	}
	if kind == "" {
		return nil, d.formatErr(r, path, "empty object name")
	}
	size, err := r.ReadUint32()
	if err != nil {
		return nil, d.fail(r, err, path, "object size")
	}
	if uint64(size) > uint64(r.Len()) {
		return nil, d.fail(r, binary.ErrTruncated, path, fmt.Sprintf("%s data of %d bytes", kind, size))
	}
	body, err := r.Sub(int(size))
	if err != nil {
		return nil, d.fail(r, err, path, "object data")
	}

	d.log.Trace().Str("kind", kind).Str("path", path).Uint32("size", size).Int64("offset", start).Msg("object")

	n := NewNode(kind)
	for body.Len() > 0 {
		name, err := body.ReadCString()
		if err != nil {
			return nil, d.fail(body, err, path, "component name")
		}
		fieldPath := path + "/" + name
		if n.Has(name) {
			return nil, d.formatErr(body, fieldPath, "duplicate component in %s", kind)
		}
		tag, err := body.ReadUint8()
		if err != nil {
			return nil, d.fail(body, err, fieldPath, "component type")
		}
		v, err := d.value(body, Type(tag), fieldPath, depth)
		if err != nil {
			return nil, err
		}
		n.Set(name, v)
	}
	return n, nil
}

func (d *decoder) value(r *binary.Reader, t Type, path string, depth int) (Value, error) {
	switch t {
	case TypeBool:
		b, err := r.ReadUint8()
		if err != nil {
			return Value{}, d.fail(r, err, path, "bool")
		}
		return NewBool(b != 0), nil
	case TypeChar:
		c, err := r.ReadUint8()
		if err != nil {
			return Value{}, d.fail(r, err, path, "char")
		}
		return NewChar(c), nil
	case TypeInt32:
		v, err := r.ReadInt32()
		if err != nil {
			return Value{}, d.fail(r, err, path, "int32")
		}
		return NewInt32(v), nil
	case TypeInt64:
		v, err := r.ReadInt64()
		if err != nil {
			return Value{}, d.fail(r, err, path, "int64")
		}
		return NewInt64(v), nil
	case TypeDouble:
		v, err := r.ReadFloat64()
		if err != nil {
			return Value{}, d.fail(r, err, path, "double")
		}
		return NewDouble(v), nil
	case TypeString:
		s, err := r.ReadCString()
		if err != nil {
			return Value{}, d.fail(r, err, path, "string")
		}
		return NewString(s), nil
	case TypeObject:
		n, err := d.node(r, path, depth+1)
		if err != nil {
			return Value{}, err
		}
		return NewObject(n), nil
	}

	if !t.IsArray() {
		return Value{}, d.formatErr(r, path, "unknown component type %q", byte(t))
	}

	count, err := r.ReadUint32()
	if err != nil {
		return Value{}, d.fail(r, err, path, t.String()+" length")
	}
	// int(count) is only used after the bounds checks below, which reject
	// any count that does not fit in the remaining input.
	n := int(count)
	if uint64(count) > uint64(r.Len()) {
		n = -1
	}

	switch t {
	case TypeCharArray:
		b, err := r.ReadBytes(n)
		if err != nil {
			return Value{}, d.fail(r, err, path, t.String())
		}
		return NewCharArray(append([]byte(nil), b...)), nil
	case TypeInt32Array:
		v, err := r.ReadInt32s(n)
		if err != nil {
			return Value{}, d.fail(r, err, path, t.String())
		}
		return NewInt32Array(v), nil
	case TypeInt64Array:
		v, err := r.ReadInt64s(n)
		if err != nil {
			return Value{}, d.fail(r, err, path, t.String())
		}
		return NewInt64Array(v), nil
	case TypeDoubleArray:
		v, err := r.ReadFloat64s(n)
		if err != nil {
			return Value{}, d.fail(r, err, path, t.String())
		}
		return NewDoubleArray(v), nil
	case TypeStringArray:
		if n < 0 {
			return Value{}, d.fail(r, binary.ErrTruncated, path, t.String())
		}
		out := make([]string, n)
		for i := range out {
			s, err := r.ReadCString()
			if err != nil {
				return Value{}, d.fail(r, err, fmt.Sprintf("%s[%d]", path, i), "string")
			}
			out[i] = s
		}
		return NewStringArray(out), nil
	default: // TypeObjectArray
		if n < 0 || n > r.Len()/minObjectSize {
			return Value{}, d.fail(r, binary.ErrTruncated, path, t.String())
		}
		out := make([]*Node, n)
		for i := range out {
			child, err := d.node(r, fmt.Sprintf("%s[%d]", path, i), depth+1)
			if err != nil {
				return Value{}, err
			}
			out[i] = child
		}
		return NewObjectArray(out), nil
	}
}
