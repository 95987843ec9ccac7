package gwy

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/robert-malhotra/go-gwy/internal/filter"
)

// Read reads a whole document from r. Input compressed with gzip or zstd is
// detected by its leading bytes and decompressed first.
func Read(r io.Reader, opts ...Option) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	o := applyOptions(opts)

	data, id, err := filter.Unwrap(raw)
	if err != nil {
		return nil, &DecodeError{Class: ErrFormat, Reason: err.Error()}
	}
	if id != filter.None {
		o.logger.Debug().
			Stringer("filter", id).
			Int("compressed", len(raw)).
			Int("bytes", len(data)).
			Msg("decompressed input")
	}
	return Decode(data, opts...)
}

// Load opens and reads the document at path.
func Load(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	doc, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Write encodes doc and writes it to w, compressed when WithCompression
// was given.
func Write(w io.Writer, doc *Document, opts ...Option) error {
	data, err := Encode(doc, opts...)
	if err != nil {
		return err
	}
	o := applyOptions(opts)
	f, err := filter.New(o.compression, o.level)
	if err != nil {
		return fmt.Errorf("compression: %w", err)
	}
	out, err := f.Encode(data)
	if err != nil {
		return fmt.Errorf("%s encode: %w", o.compression, err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Save writes doc to path, replacing any existing file. The document is
// encoded completely before the file is touched, so an encoding error
// leaves an existing file intact.
func Save(path string, doc *Document, opts ...Option) error {
	var buf bytes.Buffer
	if err := Write(&buf, doc, opts...); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
