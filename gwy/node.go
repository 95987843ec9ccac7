package gwy

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Node is a serializable object: an object-kind name plus an ordered set of
// named components. Component names are unique and case-sensitive, and
// insertion order is preserved so that an unmodified node re-encodes to the
// same bytes it was decoded from.
type Node struct {
	kind   string
	fields *orderedmap.OrderedMap[string, Value]
}

// NewNode creates an empty node of the given object kind.
func NewNode(kind string) *Node {
	return &Node{
		kind:   kind,
		fields: orderedmap.New[string, Value](),
	}
}

// Kind returns the object-kind name, e.g. "GwyDataField".
func (n *Node) Kind() string {
	return n.kind
}

// Len returns the number of components.
func (n *Node) Len() int {
	return n.fields.Len()
}

// Keys returns component names in order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, n.fields.Len())
	for p := n.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Has reports whether the component exists.
func (n *Node) Has(name string) bool {
	_, ok := n.fields.Get(name)
	return ok
}

// Get returns the named component.
func (n *Node) Get(name string) (Value, bool) {
	return n.fields.Get(name)
}

// Set stores a component. A new name is appended at the end; an existing
// name keeps its position and has its value replaced.
func (n *Node) Set(name string, v Value) {
	n.fields.Set(name, v)
}

// Delete removes a component and reports whether it was present.
func (n *Node) Delete(name string) bool {
	_, ok := n.fields.Delete(name)
	return ok
}

// Range calls fn for each component in order until fn returns false.
func (n *Node) Range(fn func(name string, v Value) bool) {
	for p := n.fields.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// value looks up a component and checks its variant.
func (n *Node) value(name string, want Type) (Value, error) {
	v, ok := n.fields.Get(name)
	if !ok {
		return Value{}, missingField(n.kind, name)
	}
	if v.typ != want {
		return Value{}, &TypeMismatchError{Field: name, Want: want, Got: v.typ}
	}
	return v, nil
}

func (n *Node) Bool(name string) (bool, error) {
	v, err := n.value(name, TypeBool)
	if err != nil {
		return false, err
	}
	return v.v.(bool), nil
}

func (n *Node) Char(name string) (byte, error) {
	v, err := n.value(name, TypeChar)
	if err != nil {
		return 0, err
	}
	return v.v.(byte), nil
}

func (n *Node) Int32(name string) (int32, error) {
	v, err := n.value(name, TypeInt32)
	if err != nil {
		return 0, err
	}
	return v.v.(int32), nil
}

func (n *Node) Int64(name string) (int64, error) {
	v, err := n.value(name, TypeInt64)
	if err != nil {
		return 0, err
	}
	return v.v.(int64), nil
}

func (n *Node) Double(name string) (float64, error) {
	v, err := n.value(name, TypeDouble)
	if err != nil {
		return 0, err
	}
	return v.v.(float64), nil
}

func (n *Node) Text(name string) (string, error) {
	v, err := n.value(name, TypeString)
	if err != nil {
		return "", err
	}
	return v.v.(string), nil
}

func (n *Node) Object(name string) (*Node, error) {
	v, err := n.value(name, TypeObject)
	if err != nil {
		return nil, err
	}
	return v.v.(*Node), nil
}

func (n *Node) Int32Array(name string) ([]int32, error) {
	v, err := n.value(name, TypeInt32Array)
	if err != nil {
		return nil, err
	}
	return v.v.([]int32), nil
}

func (n *Node) DoubleArray(name string) ([]float64, error) {
	v, err := n.value(name, TypeDoubleArray)
	if err != nil {
		return nil, err
	}
	return v.v.([]float64), nil
}

func (n *Node) TextArray(name string) ([]string, error) {
	v, err := n.value(name, TypeStringArray)
	if err != nil {
		return nil, err
	}
	return v.v.([]string), nil
}

func (n *Node) ObjectArray(name string) ([]*Node, error) {
	v, err := n.value(name, TypeObjectArray)
	if err != nil {
		return nil, err
	}
	return v.v.([]*Node), nil
}

// doubleOr returns the named double or def when the component is absent.
// A present component of the wrong type is still an error.
func (n *Node) doubleOr(name string, def float64) (float64, error) {
	if !n.Has(name) {
		return def, nil
	}
	return n.Double(name)
}

func (n *Node) int32Or(name string, def int32) (int32, error) {
	if !n.Has(name) {
		return def, nil
	}
	return n.Int32(name)
}

func (n *Node) textOr(name string, def string) (string, error) {
	if !n.Has(name) {
		return def, nil
	}
	return n.Text(name)
}

func (n *Node) boolOr(name string, def bool) (bool, error) {
	if !n.Has(name) {
		return def, nil
	}
	return n.Bool(name)
}

// Clone returns a deep copy of n, including nested nodes.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := NewNode(n.kind)
	for p := n.fields.Oldest(); p != nil; p = p.Next() {
		out.fields.Set(p.Key, p.Value.Clone())
	}
	return out
}

// Equal reports whether n and o have the same kind and the same components
// in the same order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.kind != o.kind || n.fields.Len() != o.fields.Len() {
		return false
	}
	a, b := n.fields.Oldest(), o.fields.Oldest()
	for ; a != nil; a, b = a.Next(), b.Next() {
		if a.Key != b.Key || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}

func (n *Node) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s{", n.kind)
	first := true
	n.Range(func(name string, v Value) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%s: %v", name, v)
		return true
	})
	sb.WriteString("}")
	return sb.String()
}
