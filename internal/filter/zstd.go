package filter

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZstdFilter compresses with Zstandard.
type ZstdFilter struct {
	level zstd.EncoderLevel
}

// NewZstd creates a zstd filter. level follows the zstd command-line scale
// (1-22); DefaultLevel selects zstd.SpeedDefault.
func NewZstd(level int) (*ZstdFilter, error) {
	if level == DefaultLevel {
		return &ZstdFilter{level: zstd.SpeedDefault}, nil
	}
	if level < 1 || level > 22 {
		return nil, fmt.Errorf("invalid zstd level %d", level)
	}
	return &ZstdFilter{level: zstd.EncoderLevelFromZstd(level)}, nil
}

func (f *ZstdFilter) ID() ID {
	return Zstd
}

func (f *ZstdFilter) Encode(input []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(f.level))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(input, nil), nil
}

func (f *ZstdFilter) Decode(input []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	output, err := dec.DecodeAll(input, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return output, nil
}
