package gwy

import (
	stdbinary "encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// wire builds raw test input.
type wire []byte

func (w wire) cstr(s string) wire { return append(append(w, s...), 0) }
func (w wire) tag(t byte) wire    { return append(w, t) }
func (w wire) u32(v uint32) wire  { return stdbinary.LittleEndian.AppendUint32(w, v) }
func (w wire) i32(v int32) wire   { return w.u32(uint32(v)) }
func (w wire) f64(v float64) wire { return stdbinary.LittleEndian.AppendUint64(w, math.Float64bits(v)) }

// object frames body as kind\0 + size + body.
func (w wire) object(kind string, body wire) wire {
	return append(w.cstr(kind).u32(uint32(len(body))), body...)
}

func document(body wire) []byte {
	return append([]byte("GWYP"), body...)
}

// sampleTree returns a node nested depth levels deep holding every
// component type at each level.
func sampleTree(depth int) *Node {
	n := NewNode(fmt.Sprintf("Level%d", depth))
	n.Set("b", NewBool(true))
	n.Set("c", NewChar('z'))
	n.Set("i", NewInt32(-42))
	n.Set("q", NewInt64(math.MinInt64))
	n.Set("d", NewDouble(math.Pi))
	n.Set("s", NewString("héllo"))
	n.Set("C", NewCharArray([]byte{0, 1, 255}))
	n.Set("I", NewInt32Array([]int32{1, -2, math.MaxInt32}))
	n.Set("Q", NewInt64Array([]int64{math.MaxInt64, 0}))
	n.Set("D", NewDoubleArray([]float64{0, -1.5, math.Inf(1), math.NaN()}))
	n.Set("S", NewStringArray([]string{"", "a", "bc"}))
	n.Set("empty", NewDoubleArray(nil))
	if depth > 0 {
		n.Set("o", NewObject(sampleTree(depth-1)))
		n.Set("O", NewObjectArray([]*Node{sampleTree(depth - 1), NewNode("Leaf")}))
	}
	return n
}

func TestRoundtripDepths(t *testing.T) {
	for depth := 0; depth <= 5; depth++ {
		t.Run(fmt.Sprintf("depth%d", depth), func(t *testing.T) {
			for _, magic := range []Magic{MagicComponent, MagicLegacy} {
				doc := &Document{Magic: magic, Root: sampleTree(depth)}
				data, err := Encode(doc)
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				got, err := Decode(data)
				if err != nil {
					t.Fatalf("Decode failed: %v", err)
				}
				if !got.Equal(doc) {
					t.Fatalf("round trip mismatch:\n got %v\nwant %v", got.Root, doc.Root)
				}
				if diff := cmp.Diff(doc.Root.Keys(), got.Root.Keys()); diff != "" {
					t.Errorf("component order (-want +got):\n%s", diff)
				}

				again, err := Encode(got)
				if err != nil {
					t.Fatalf("re-Encode failed: %v", err)
				}
				if string(again) != string(data) {
					t.Errorf("re-encoded bytes differ")
				}
			}
		})
	}
}

func TestEncodeExactBytes(t *testing.T) {
	root := NewNode("GwyContainer")
	root.Set("/0/title", NewString("a"))
	root.Set("n", NewInt32(7))

	body := wire{}.cstr("/0/title").tag('s').cstr("a").
		cstr("n").tag('i').i32(7)
	want := document(wire{}.object("GwyContainer", body))

	got, err := Encode(NewDocument(root))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bytes (-want +got):\n%s", diff)
	}
}

// checkSizes verifies that the size field of n's encoding, and of every
// nested object, equals the length of its component region.
func checkSizes(t *testing.T, n *Node) {
	t.Helper()
	err := Walk(n, func(path string, child *Node) error {
		data, err := EncodeNode(child)
		if err != nil {
			return err
		}
		hdr := len(child.Kind()) + 1
		size := stdbinary.LittleEndian.Uint32(data[hdr:])
		if int(size) != len(data)-hdr-4 {
			return fmt.Errorf("%s: size field %d, component region %d", path, size, len(data)-hdr-4)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestLengthInvariant(t *testing.T) {
	root := sampleTree(3)
	checkSizes(t, root)

	before, err := EncodeNode(root)
	if err != nil {
		t.Fatalf("EncodeNode failed: %v", err)
	}

	// Grow a deeply nested component and add a new one at the top.
	inner, _ := root.Object("o")
	inner, _ = inner.Object("o")
	inner.Set("s", NewString("a much longer string than before"))
	root.Set("extra", NewInt64Array([]int64{1, 2, 3}))
	checkSizes(t, root)

	after, err := EncodeNode(root)
	if err != nil {
		t.Fatalf("EncodeNode failed: %v", err)
	}
	grown := len("a much longer string than before") - len("héllo") + len("extra") + 1 + 1 + 4 + 3*8
	if len(after)-len(before) != grown {
		t.Errorf("encoding grew by %d bytes, want %d", len(after)-len(before), grown)
	}
}

func TestDecodeRejectsEveryPrefix(t *testing.T) {
	data, err := Encode(NewDocument(sampleTree(2)))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	for i := 0; i < len(data); i++ {
		_, err := Decode(data[:i])
		if err == nil {
			t.Fatalf("Decode of %d/%d bytes succeeded", i, len(data))
		}
		if !errors.Is(err, ErrTruncated) {
			t.Fatalf("Decode of %d/%d bytes: got %v, want ErrTruncated", i, len(data), err)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	intField := wire{}.cstr("a").tag('i').i32(1)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"bad magic", append([]byte("GWYX"), wire{}.object("K", nil)...), ErrFormat},
		{"unknown tag", document(wire{}.object("K", wire{}.cstr("a").tag('x').i32(0))), ErrFormat},
		{"empty kind", document(wire{}.object("", nil)), ErrFormat},
		{"duplicate component", document(wire{}.object("K", append(append(wire{}, intField...), intField...))), ErrFormat},
		{"trailing bytes", append(document(wire{}.object("K", intField)), 0), ErrFormat},
		{"size past end", document(wire{}.cstr("K").u32(100)), ErrTruncated},
		{
			// The size field cuts the int32 short while more input follows.
			"component overruns object",
			append(document(wire{}.cstr("K").u32(5)), intField...),
			ErrFormat,
		},
		{
			"nested object overruns parent",
			document(wire{}.object("K", wire{}.cstr("o").tag('o').cstr("C").u32(50).i32(0))),
			ErrFormat,
		},
		{
			"array count overruns object",
			document(wire{}.object("K", wire{}.cstr("a").tag('D').u32(1000).f64(1))),
			ErrFormat,
		},
		{
			"object array count overruns object",
			document(wire{}.object("K", wire{}.cstr("a").tag('O').u32(0xffffffff))),
			ErrFormat,
		},
		{
			"unterminated string",
			document(wire{}.object("K", append(wire{}.cstr("a").tag('s'), 'x', 'y'))),
			ErrFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Errorf("expected *DecodeError, got %T", err)
			}
		})
	}
}

func TestDecodeUnknownTagReportsPosition(t *testing.T) {
	body := wire{}.cstr("ok").tag('b').tag(1).cstr("bad").tag('x')
	_, err := Decode(document(wire{}.object("K", body)))

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if de.Class != ErrFormat {
		t.Errorf("class: got %v, want ErrFormat", de.Class)
	}
	if de.Path != "/bad" {
		t.Errorf("path: got %q, want /bad", de.Path)
	}
	if want := int64(len("GWYP") + len("K\x00") + 4 + len(body)); de.Offset != want {
		t.Errorf("offset: got %d, want %d", de.Offset, want)
	}
}

func TestMaxDepth(t *testing.T) {
	// Four levels: root plus three nested objects.
	root := NewNode("L0")
	cur := root
	for i := 1; i < 4; i++ {
		child := NewNode(fmt.Sprintf("L%d", i))
		cur.Set("o", NewObject(child))
		cur = child
	}

	if _, err := EncodeNode(root, WithMaxDepth(3)); !errors.Is(err, ErrFormat) {
		t.Errorf("Encode: got %v, want ErrFormat", err)
	}
	data, err := Encode(NewDocument(root), WithMaxDepth(4))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, err := Decode(data, WithMaxDepth(3)); !errors.Is(err, ErrFormat) {
		t.Errorf("Decode: got %v, want ErrFormat", err)
	}
	if _, err := Decode(data, WithMaxDepth(4)); err != nil {
		t.Errorf("Decode at limit failed: %v", err)
	}
}

func TestEncodeErrors(t *testing.T) {
	withNul := NewNode("K")
	withNul.Set("s", NewString("a\x00b"))

	badName := NewNode("K")
	badName.Set("a\x00b", NewInt32(1))

	nilChild := NewNode("K")
	nilChild.Set("o", NewObject(nil))

	invalid := NewNode("K")
	invalid.Set("v", Value{})

	tests := []struct {
		name string
		doc  *Document
	}{
		{"nil document", nil},
		{"nil root", &Document{Magic: MagicComponent}},
		{"bad magic", &Document{Magic: "GWY", Root: NewNode("K")}},
		{"empty kind", NewDocument(NewNode(""))},
		{"NUL in string", NewDocument(withNul)},
		{"NUL in component name", NewDocument(badName)},
		{"nil nested object", NewDocument(nilChild)},
		{"zero value", NewDocument(invalid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.doc)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("got %v, want ErrFormat", err)
			}
		})
	}
}

func TestDecodeNodeReportsConsumed(t *testing.T) {
	obj := wire{}.object("K", wire{}.cstr("a").tag('i').i32(9))
	n, used, err := DecodeNode(append(obj, 1, 2, 3))
	if err != nil {
		t.Fatalf("DecodeNode failed: %v", err)
	}
	if used != len(obj) {
		t.Errorf("consumed %d bytes, want %d", used, len(obj))
	}
	if v, _ := n.Int32("a"); v != 9 {
		t.Errorf("a = %d, want 9", v)
	}
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	data := document(wire{}.object("K", wire{}.cstr("c").tag('C').u32(2).tag(7).tag(8)))
	doc, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	for i := range data {
		data[i] = 0
	}
	v, _ := doc.Root.Get("c")
	got, _ := v.CharArray()
	if diff := cmp.Diff([]byte{7, 8}, got); diff != "" {
		t.Errorf("char array (-want +got):\n%s", diff)
	}
}

func TestDecodeBoolAnyNonZero(t *testing.T) {
	doc, err := Decode(document(wire{}.object("K", wire{}.cstr("b").tag('b').tag(2))))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b, _ := doc.Root.Bool("b"); !b {
		t.Error("expected true")
	}
}
