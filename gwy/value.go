package gwy

import (
	"fmt"
	"math"
	"slices"
)

// Type is a component type tag. Its value is the byte written on the wire.
type Type byte

const (
	TypeBool        Type = 'b'
	TypeChar        Type = 'c'
	TypeInt32       Type = 'i'
	TypeInt64       Type = 'q'
	TypeDouble      Type = 'd'
	TypeString      Type = 's'
	TypeObject      Type = 'o'
	TypeCharArray   Type = 'C'
	TypeInt32Array  Type = 'I'
	TypeInt64Array  Type = 'Q'
	TypeDoubleArray Type = 'D'
	TypeStringArray Type = 'S'
	TypeObjectArray Type = 'O'
)

// Valid reports whether t is one of the known type tags.
func (t Type) Valid() bool {
	switch t {
	case TypeBool, TypeChar, TypeInt32, TypeInt64, TypeDouble, TypeString, TypeObject,
		TypeCharArray, TypeInt32Array, TypeInt64Array, TypeDoubleArray, TypeStringArray, TypeObjectArray:
		return true
	}
	return false
}

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool {
	switch t {
	case TypeCharArray, TypeInt32Array, TypeInt64Array, TypeDoubleArray, TypeStringArray, TypeObjectArray:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeChar:
		return "char"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeCharArray:
		return "char array"
	case TypeInt32Array:
		return "int32 array"
	case TypeInt64Array:
		return "int64 array"
	case TypeDoubleArray:
		return "double array"
	case TypeStringArray:
		return "string array"
	case TypeObjectArray:
		return "object array"
	case 0:
		return "invalid"
	default:
		return fmt.Sprintf("type(%q)", byte(t))
	}
}

// Value is one component value. The zero Value is invalid and cannot be
// encoded.
type Value struct {
	typ Type
	v   any
}

func NewBool(v bool) Value {
	return Value{TypeBool, v}
}

func NewChar(v byte) Value {
	return Value{TypeChar, v}
}

func NewInt32(v int32) Value {
	return Value{TypeInt32, v}
}

func NewInt64(v int64) Value {
	return Value{TypeInt64, v}
}

func NewDouble(v float64) Value {
	return Value{TypeDouble, v}
}

func NewString(v string) Value {
	return Value{TypeString, v}
}

func NewCharArray(v []byte) Value {
	return Value{TypeCharArray, v}
}

func NewInt32Array(v []int32) Value {
	return Value{TypeInt32Array, v}
}

func NewInt64Array(v []int64) Value {
	return Value{TypeInt64Array, v}
}

func NewDoubleArray(v []float64) Value {
	return Value{TypeDoubleArray, v}
}

func NewStringArray(v []string) Value {
	return Value{TypeStringArray, v}
}

// NewObject wraps a nested node. The value takes ownership of n.
func NewObject(n *Node) Value {
	return Value{TypeObject, n}
}

// NewObjectArray wraps a list of nested nodes, taking ownership of them.
func NewObjectArray(v []*Node) Value {
	return Value{TypeObjectArray, v}
}

// Type returns the variant tag, 0 for the zero Value.
func (v Value) Type() Type {
	return v.typ
}

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool {
	return v.typ != 0
}

func (v Value) mismatch(want Type) error {
	return &TypeMismatchError{Want: want, Got: v.typ}
}

func (v Value) Bool() (bool, error) {
	if v.typ != TypeBool {
		return false, v.mismatch(TypeBool)
	}
	return v.v.(bool), nil
}

func (v Value) Char() (byte, error) {
	if v.typ != TypeChar {
		return 0, v.mismatch(TypeChar)
	}
	return v.v.(byte), nil
}

func (v Value) Int32() (int32, error) {
	if v.typ != TypeInt32 {
		return 0, v.mismatch(TypeInt32)
	}
	return v.v.(int32), nil
}

func (v Value) Int64() (int64, error) {
	if v.typ != TypeInt64 {
		return 0, v.mismatch(TypeInt64)
	}
	return v.v.(int64), nil
}

func (v Value) Double() (float64, error) {
	if v.typ != TypeDouble {
		return 0, v.mismatch(TypeDouble)
	}
	return v.v.(float64), nil
}

// Text returns the payload of a string value.
func (v Value) Text() (string, error) {
	if v.typ != TypeString {
		return "", v.mismatch(TypeString)
	}
	return v.v.(string), nil
}

func (v Value) Object() (*Node, error) {
	if v.typ != TypeObject {
		return nil, v.mismatch(TypeObject)
	}
	return v.v.(*Node), nil
}

func (v Value) CharArray() ([]byte, error) {
	if v.typ != TypeCharArray {
		return nil, v.mismatch(TypeCharArray)
	}
	return v.v.([]byte), nil
}

func (v Value) Int32Array() ([]int32, error) {
	if v.typ != TypeInt32Array {
		return nil, v.mismatch(TypeInt32Array)
	}
	return v.v.([]int32), nil
}

func (v Value) Int64Array() ([]int64, error) {
	if v.typ != TypeInt64Array {
		return nil, v.mismatch(TypeInt64Array)
	}
	return v.v.([]int64), nil
}

func (v Value) DoubleArray() ([]float64, error) {
	if v.typ != TypeDoubleArray {
		return nil, v.mismatch(TypeDoubleArray)
	}
	return v.v.([]float64), nil
}

// TextArray returns the payload of a string array value.
func (v Value) TextArray() ([]string, error) {
	if v.typ != TypeStringArray {
		return nil, v.mismatch(TypeStringArray)
	}
	return v.v.([]string), nil
}

func (v Value) ObjectArray() ([]*Node, error) {
	if v.typ != TypeObjectArray {
		return nil, v.mismatch(TypeObjectArray)
	}
	return v.v.([]*Node), nil
}

// Len returns the element count of an array value and 0 otherwise.
func (v Value) Len() int {
	switch x := v.v.(type) {
	case []byte:
		return len(x)
	case []int32:
		return len(x)
	case []int64:
		return len(x)
	case []float64:
		return len(x)
	case []string:
		return len(x)
	case []*Node:
		return len(x)
	}
	return 0
}

// Equal reports structural equality. Doubles compare by bit pattern so
// that NaN payloads survive a round-trip comparison.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case 0:
		return true
	case TypeDouble:
		return math.Float64bits(v.v.(float64)) == math.Float64bits(o.v.(float64))
	case TypeObject:
		return v.v.(*Node).Equal(o.v.(*Node))
	case TypeCharArray:
		return slices.Equal(v.v.([]byte), o.v.([]byte))
	case TypeInt32Array:
		return slices.Equal(v.v.([]int32), o.v.([]int32))
	case TypeInt64Array:
		return slices.Equal(v.v.([]int64), o.v.([]int64))
	case TypeDoubleArray:
		return slices.EqualFunc(v.v.([]float64), o.v.([]float64), func(a, b float64) bool {
			return math.Float64bits(a) == math.Float64bits(b)
		})
	case TypeStringArray:
		return slices.Equal(v.v.([]string), o.v.([]string))
	case TypeObjectArray:
		return slices.EqualFunc(v.v.([]*Node), o.v.([]*Node), (*Node).Equal)
	default:
		return v.v == o.v
	}
}

// Clone returns a deep copy of v. Nested nodes are cloned as well.
func (v Value) Clone() Value {
	switch x := v.v.(type) {
	case *Node:
		return Value{v.typ, x.Clone()}
	case []byte:
		return Value{v.typ, slices.Clone(x)}
	case []int32:
		return Value{v.typ, slices.Clone(x)}
	case []int64:
		return Value{v.typ, slices.Clone(x)}
	case []float64:
		return Value{v.typ, slices.Clone(x)}
	case []string:
		return Value{v.typ, slices.Clone(x)}
	case []*Node:
		out := make([]*Node, len(x))
		for i, n := range x {
			out[i] = n.Clone()
		}
		return Value{v.typ, out}
	}
	return v
}

func (v Value) String() string {
	switch v.typ {
	case 0:
		return "<invalid>"
	case TypeObject:
		n := v.v.(*Node)
		if n == nil {
			return "o<nil>"
		}
		return fmt.Sprintf("o<%s>", n.Kind())
	case TypeChar:
		return fmt.Sprintf("c(%q)", v.v.(byte))
	case TypeString:
		return fmt.Sprintf("s(%q)", v.v.(string))
	}
	if v.typ.IsArray() {
		return fmt.Sprintf("%c[%d]", byte(v.typ), v.Len())
	}
	return fmt.Sprintf("%c(%v)", byte(v.typ), v.v)
}
