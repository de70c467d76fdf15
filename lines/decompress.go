package lines

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a file's bytes are encoded.
type Compression string

const (
	None Compression = ""
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
	LZ4  Compression = "lz4"
)

// CompressionFor picks the compression from a file name's extension.
func CompressionFor(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	}
	return None
}

// Decompress wraps rc in the decoder matching name's extension. Closing the
// result closes rc as well.
func Decompress(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	return NewDecoder(CompressionFor(name), rc)
}

// NewDecoder wraps rc in a decoder for c.
func NewDecoder(c Compression, rc io.ReadCloser) (io.ReadCloser, error) {
	switch c {
	case None:
		return rc, nil
	case Gzip:
		zr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("lines: opening gzip stream: %w", err)
		}
		return &decoder{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case Zstd:
		zr := zstd.NewReader(rc)
		return &decoder{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case LZ4:
		return &decoder{Reader: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	}
	rc.Close()
	return nil, fmt.Errorf("lines: unknown compression %q", c)
}

type decoder struct {
	io.Reader
	closers []io.Closer
}

func (d *decoder) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
