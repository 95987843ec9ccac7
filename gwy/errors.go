// Package gwy reads and writes Gwyddion .gwy files: a tree of named objects,
// each holding an ordered set of typed components, preceded by a four-byte
// header. Decode and Encode work on the generic tree (Node); Wrap and the
// typed constructors give checked views of the well-known object kinds.
package gwy

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package matches exactly one
// of them with errors.Is.
var (
	ErrFormat       = errors.New("gwy: format error")
	ErrTruncated    = errors.New("gwy: truncated input")
	ErrField        = errors.New("gwy: field error")
	ErrTypeMismatch = errors.New("gwy: type mismatch")
)

// DefaultMaxDepth bounds object nesting during decode and encode.
const DefaultMaxDepth = 256

// DecodeError reports where decoding stopped. Class is ErrFormat or
// ErrTruncated.
type DecodeError struct {
	Class  error
	Offset int64  // absolute byte offset in the input
	Path   string // slash path of the field being decoded, "" for the root header
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v at offset %d: %s", e.Class, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%v at offset %d (%s): %s", e.Class, e.Offset, e.Path, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Class
}

// EncodeError reports a value that cannot be represented on the wire.
type EncodeError struct {
	Path   string
	Reason string
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %s", ErrFormat, e.Reason)
	}
	return fmt.Sprintf("%v (%s): %s", ErrFormat, e.Path, e.Reason)
}

func (e *EncodeError) Unwrap() error {
	return ErrFormat
}

// FieldError reports a node that does not satisfy a field contract.
type FieldError struct {
	Kind   string // object kind whose contract failed
	Field  string // offending field, "" when the kind itself is wrong
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s: %s", ErrField, e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: %s.%s: %s", ErrField, e.Kind, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrField
}

// TypeMismatchError reports a Value read as the wrong variant.
type TypeMismatchError struct {
	Field string // set when the value was read through a Node getter
	Want  Type
	Got   Type
}

func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: want %v, got %v", ErrTypeMismatch, e.Want, e.Got)
	}
	return fmt.Sprintf("%v: field %q: want %v, got %v", ErrTypeMismatch, e.Field, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

func missingField(kind, field string) error {
	return &FieldError{Kind: kind, Field: field, Reason: "missing required field"}
}

func badField(kind, field, format string, args ...any) error {
	return &FieldError{Kind: kind, Field: field, Reason: fmt.Sprintf(format, args...)}
}
