package gwy

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/robert-malhotra/go-gwy/internal/binary"
)

// Encode serializes a document: the header followed by the root object.
func Encode(doc *Document, opts ...Option) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, &EncodeError{Reason: "document has no root object"}
	}
	if !doc.Magic.Valid() {
		return nil, &EncodeError{Reason: fmt.Sprintf("unrecognized file header %q", string(doc.Magic))}
	}
	o := applyOptions(opts)
	e := &encoder{maxDepth: o.maxDepth, log: o.logger}

	root, err := e.node(doc.Root, "", 0)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, MagicLen+len(root))
	out = append(out, doc.Magic...)
	out = append(out, root...)

	e.log.Debug().
		Str("magic", string(doc.Magic)).
		Str("root", doc.Root.Kind()).
		Int("bytes", len(out)).
		Msg("encoded document")
	return out, nil
}

// EncodeNode serializes a single object without a file header.
func EncodeNode(n *Node, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)
	e := &encoder{maxDepth: o.maxDepth, log: o.logger}
	return e.node(n, "", 0)
}

type encoder struct {
	maxDepth int
	log      zerolog.Logger
}

// node serializes n as name\0 + uint32 size + components. The components are
// written to their own buffer first because the size precedes them and is
// only known once every nested object has been serialized.
func (e *encoder) node(n *Node, path string, depth int) ([]byte, error) {
	if n == nil {
		return nil, &EncodeError{Path: path, Reason: "nil object"}
	}
	if depth >= e.maxDepth {
		return nil, &EncodeError{Path: path, Reason: fmt.Sprintf("object nesting exceeds %d levels", e.maxDepth)}
	}
	if n.kind == "" {
		return nil, &EncodeError{Path: path, Reason: "empty object name"}
	}

	body := binary.NewWriter(binary.DefaultConfig(), 0)
	var err error
	n.Range(func(name string, v Value) bool {
		fieldPath := path + "/" + name
		if werr := body.WriteCString(name); werr != nil {
			err = &EncodeError{Path: fieldPath, Reason: "component name: " + werr.Error()}
			return false
		}
		err = e.value(body, v, fieldPath, depth)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	if uint64(body.Len()) > math.MaxUint32 {
		return nil, &EncodeError{Path: path, Reason: fmt.Sprintf("%s data exceeds 4 GiB", n.kind)}
	}

	w := binary.NewWriter(binary.DefaultConfig(), len(n.kind)+1+4+body.Len())
	if werr := w.WriteCString(n.kind); werr != nil {
		return nil, &EncodeError{Path: path, Reason: "object name: " + werr.Error()}
	}
	w.WriteUint32(uint32(body.Len()))
	w.WriteBytes(body.Bytes())

	e.log.Trace().Str("kind", n.kind).Str("path", path).Int("size", body.Len()).Msg("object")
	return w.Bytes(), nil
}

func (e *encoder) value(w *binary.Writer, v Value, path string, depth int) error {
	if !v.typ.Valid() {
		return &EncodeError{Path: path, Reason: "invalid component value"}
	}
	if v.typ.IsArray() && uint64(v.Len()) > math.MaxUint32 {
		return &EncodeError{Path: path, Reason: fmt.Sprintf("%v has too many elements", v.typ)}
	}
	w.WriteUint8(byte(v.typ))

	switch x := v.v.(type) {
	case bool:
		if x {
			w.WriteUint8(1)
		} else {
			w.WriteUint8(0)
		}
	case byte:
		w.WriteUint8(x)
	case int32:
		w.WriteInt32(x)
	case int64:
		w.WriteInt64(x)
	case float64:
		w.WriteFloat64(x)
	case string:
		if err := w.WriteCString(x); err != nil {
			return &EncodeError{Path: path, Reason: err.Error()}
		}
	case *Node:
		child, err := e.node(x, path, depth+1)
		if err != nil {
			return err
		}
		w.WriteBytes(child)
	case []byte:
		w.WriteUint32(uint32(len(x)))
		w.WriteBytes(x)
	case []int32:
		w.WriteUint32(uint32(len(x)))
		w.WriteInt32s(x)
	case []int64:
		w.WriteUint32(uint32(len(x)))
		w.WriteInt64s(x)
	case []float64:
		w.WriteUint32(uint32(len(x)))
		w.WriteFloat64s(x)
	case []string:
		w.WriteUint32(uint32(len(x)))
		for i, s := range x {
			if err := w.WriteCString(s); err != nil {
				return &EncodeError{Path: fmt.Sprintf("%s[%d]", path, i), Reason: err.Error()}
			}
		}
	case []*Node:
		w.WriteUint32(uint32(len(x)))
		for i, n := range x {
			child, err := e.node(n, fmt.Sprintf("%s[%d]", path, i), depth+1)
			if err != nil {
				return err
			}
			w.WriteBytes(child)
		}
	default:
		return &EncodeError{Path: path, Reason: fmt.Sprintf("unsupported payload %T", v.v)}
	}
	return nil
}
