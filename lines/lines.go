package lines

import (
	"archive/zip"
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/theoremus-urban-solutions/gtfs-csv/csv"
)

// MaxLineSize bounds a single line read from a stream.
const MaxLineSize = 1 << 20

// Opener opens a fresh stream each time a source is ranged over.
type Opener func() (io.ReadCloser, error)

// FromSlice yields each element of lines.
func FromSlice(lines []string) csv.Source {
	return func(yield func(string, error) bool) {
		for _, l := range lines {
			if !yield(l, nil) {
				return
			}
		}
	}
}

// FromString yields the lines of text. A trailing newline does not produce an
// extra empty line.
func FromString(text string) csv.Source {
	return func(yield func(string, error) bool) {
		rest := text
		for len(rest) > 0 {
			line, tail, found := strings.Cut(rest, "\n")
			if !yield(strings.TrimSuffix(line, "\r"), nil) {
				return
			}
			if !found {
				return
			}
			rest = tail
		}
	}
}

// FromReader yields the lines of r once. The scanner reads ahead of the last
// yielded line, so later ranges, including after an early stop, yield nothing.
func FromReader(r io.Reader) csv.Source {
	used := false
	return func(yield func(string, error) bool) {
		if used {
			return
		}
		used = true
		scanLines(r, yield)
	}
}

// FromOpener reopens the stream on every range and closes it when iteration
// ends, including when the consumer stops early.
func FromOpener(open Opener) csv.Source {
	return func(yield func(string, error) bool) {
		rc, err := open()
		if err != nil {
			yield("", err)
			return
		}
		defer rc.Close()
		scanLines(rc, yield)
	}
}

// File yields the lines of the file at path, decompressing by extension.
func File(path string) csv.Source {
	return FromOpener(func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		return Decompress(path, f)
	})
}

// ZipMember yields the lines of a member of an open zip archive.
func ZipMember(f *zip.File) csv.Source {
	return FromOpener(f.Open)
}

func scanLines(r io.Reader, yield func(string, error) bool) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for sc.Scan() {
		// ScanLines already drops a trailing \r.
		if !yield(sc.Text(), nil) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		yield("", err)
	}
}
