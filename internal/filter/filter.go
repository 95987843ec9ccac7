package filter

import (
	"bytes"
	"fmt"
	"strings"
)

// ID identifies a compression filter.
type ID uint8

const (
	None ID = iota
	Gzip
	Zstd
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DefaultLevel selects each filter's default compression level.
const DefaultLevel = -1

// Filter transforms a whole buffer.
type Filter interface {
	// ID returns the filter identifier.
	ID() ID

	// Encode compresses input.
	Encode(input []byte) ([]byte, error)

	// Decode transforms encoded data to decoded form.
	Decode(input []byte) ([]byte, error)
}

// New creates the filter identified by id. level is filter specific;
// DefaultLevel picks a sensible default.
func New(id ID, level int) (Filter, error) {
	switch id {
	case None:
		return passthrough{}, nil
	case Gzip:
		return NewGzip(level)
	case Zstd:
		return NewZstd(level)
	default:
		return nil, fmt.Errorf("unsupported filter ID: %d", id)
	}
}

// Detect inspects the leading bytes of data and reports which filter
// produced it. Uncompressed data reports None.
func Detect(data []byte) ID {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return Gzip
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	default:
		return None
	}
}

// Unwrap decodes data with whatever filter Detect finds.
func Unwrap(data []byte) ([]byte, ID, error) {
	id := Detect(data)
	if id == None {
		return data, None, nil
	}
	f, err := New(id, DefaultLevel)
	if err != nil {
		return nil, id, err
	}
	out, err := f.Decode(data)
	if err != nil {
		return nil, id, fmt.Errorf("%s decode: %w", id, err)
	}
	return out, id, nil
}

// ParseID parses a filter name as used in configuration files.
func ParseID(s string) (ID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst", "zstandard":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown compression %q", s)
	}
}

func (id ID) String() string {
	switch id {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("filter(%d)", uint8(id))
	}
}

type passthrough struct{}

func (passthrough) ID() ID                              { return None }
func (passthrough) Encode(input []byte) ([]byte, error) { return input, nil }
func (passthrough) Decode(input []byte) ([]byte, error) { return input, nil }
