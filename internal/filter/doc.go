// Package filter implements whole-buffer compression applied around a
// serialized GWY document when it is read from or written to a byte stream.
//
// GWY files themselves are never compressed internally, but they are
// routinely distributed as .gwy.gz or .gwy.zst. Readers detect the
// compression from the leading magic bytes with [Detect]; writers choose a
// filter explicitly.
//
// # Supported Filters
//
//   - [Gzip]: RFC 1952 gzip via github.com/klauspost/compress/gzip.
//   - [Zstd]: Zstandard frames via github.com/klauspost/compress/zstd.
//
// [None] passes data through unchanged.
package filter
