package gwy

import (
	"github.com/rs/zerolog"

	"github.com/robert-malhotra/go-gwy/internal/filter"
)

// Compression selects the filter applied around a serialized document by
// Write and Save. Read and Load detect compression automatically.
type Compression = filter.ID

const (
	CompressionNone = filter.None
	CompressionGzip = filter.Gzip
	CompressionZstd = filter.Zstd
)

// Option configures decoding, encoding and file I/O.
type Option func(*options)

type options struct {
	maxDepth    int
	logger      zerolog.Logger
	compression Compression
	level       int
}

func defaultOptions() *options {
	return &options{
		maxDepth:    DefaultMaxDepth,
		logger:      zerolog.Nop(),
		compression: CompressionNone,
		level:       filter.DefaultLevel,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxDepth limits object nesting. Deeper trees fail with ErrFormat.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithLogger sets the logger that receives debug and trace events.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCompression compresses output written by Write and Save. Pass -1 as
// level for the filter's default.
func WithCompression(c Compression, level int) Option {
	return func(o *options) {
		o.compression = c
		o.level = level
	}
}
