package gtfs

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/gtfs-csv/csv"
	"github.com/theoremus-urban-solutions/gtfs-csv/lines"
)

// ErrFileNotFound is returned when a feed has no member with the requested name.
var ErrFileNotFound = errors.New("gtfs: file not in feed")

// Feed is an opened GTFS feed. Its sources are restartable and independent, so
// readers over different files may run in parallel.
type Feed struct {
	path    string
	zr      *zip.ReadCloser
	sources map[string]csv.Source
	names   []string
}

// Open opens a zip archive, a directory or a single file.
func Open(p string) (*Feed, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	f := &Feed{path: p, sources: map[string]csv.Source{}}
	switch {
	case info.IsDir():
		err = f.openDir()
	case strings.EqualFold(filepath.Ext(p), ".zip"):
		err = f.openZip()
	default:
		f.add(memberName(filepath.Base(p)), lines.File(p))
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	sort.Strings(f.names)
	return f, nil
}

func (f *Feed) openZip() error {
	zr, err := zip.OpenReader(f.path)
	if err != nil {
		return fmt.Errorf("gtfs: opening %s: %w", f.path, err)
	}
	f.zr = zr
	for _, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		// some producers nest the files in a folder
		name := strings.ToLower(path.Base(zf.Name))
		if strings.HasSuffix(name, ".txt") {
			f.add(name, lines.ZipMember(zf))
		}
	}
	return nil
}

func (f *Feed) openDir() error {
	entries, err := os.ReadDir(f.path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := memberName(e.Name())
		if strings.HasSuffix(name, ".txt") {
			f.add(name, lines.File(filepath.Join(f.path, e.Name())))
		}
	}
	return nil
}

func (f *Feed) add(name string, src csv.Source) {
	if _, dup := f.sources[name]; dup {
		return
	}
	f.sources[name] = src
	f.names = append(f.names, name)
}

// memberName strips a compression extension: "stops.txt.gz" -> "stops.txt".
func memberName(file string) string {
	name := strings.ToLower(file)
	if lines.CompressionFor(name) != lines.None {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// Path returns the location the feed was opened from.
func (f *Feed) Path() string { return f.path }

// Files returns the member names in lexical order.
func (f *Feed) Files() []string {
	return append([]string(nil), f.names...)
}

// Source returns the line source of a member.
func (f *Feed) Source(name string) (csv.Source, error) {
	src, ok := f.sources[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return src, nil
}

// Reader returns a record cursor over a member.
func (f *Feed) Reader(name string, opts csv.ReaderOptions) (*csv.Reader, error) {
	src, err := f.Source(name)
	if err != nil {
		return nil, err
	}
	return csv.NewReader(src, opts), nil
}

// Close releases the archive, if any. Readers must be closed first.
func (f *Feed) Close() error {
	if f.zr != nil {
		err := f.zr.Close()
		f.zr = nil
		return err
	}
	return nil
}
