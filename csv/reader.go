package csv

import (
	"errors"
	"fmt"
	"iter"
)

// Source is a lazy sequence of lines without terminators. Ranging over a Source
// again restarts it when the underlying data allows; one-shot sources simply
// yield nothing the second time.
type Source = iter.Seq2[string, error]

// Lines adapts a sequence that cannot fail into a Source.
func Lines(seq iter.Seq[string]) Source {
	return func(yield func(string, error) bool) {
		for line := range seq {
			if !yield(line, nil) {
				return
			}
		}
	}
}

// ReaderOptions configures a Reader. The zero value reads comma-separated lines
// as they come from the source.
type ReaderOptions struct {
	// Separator delimits fields. Zero means ','.
	Separator rune

	// Preprocess, when set, is applied to every line before it is split.
	Preprocess func(string) string

	// ReuseRecord lets consecutive records share one backing array. Callers that
	// keep records across Advance calls must copy them.
	ReuseRecord bool
}

// Reader is a cursor over the records of a Source. It is not safe for concurrent
// use; independent Readers are.
type Reader struct {
	src  Source
	opts ReaderOptions

	next func() (string, error, bool)
	stop func()

	current []string
	buf     []string
	line    int
}

// NewReader creates a Reader over src. Nothing is pulled from src until the first
// call to Advance.
func NewReader(src Source, opts ReaderOptions) *Reader {
	if opts.Separator == 0 {
		opts.Separator = ','
	}
	return &Reader{src: src, opts: opts}
}

// Advance pulls the next line and makes its record current. It reports false
// with a nil error once the source is exhausted. A line that fails to parse, or a
// source error, is returned as the error and leaves no current record; the
// following call continues with the next line.
func (r *Reader) Advance() (bool, error) {
	r.current = nil
	if r.src == nil {
		return false, nil
	}
	if r.next == nil {
		r.next, r.stop = iter.Pull2(r.src)
	}

	line, err, ok := r.next()
	if !ok {
		return false, nil
	}
	r.line++
	if err != nil {
		return false, fmt.Errorf("csv: reading line %d: %w", r.line, err)
	}
	if r.opts.Preprocess != nil {
		line = r.opts.Preprocess(line)
	}

	var dst []string
	if r.opts.ReuseRecord {
		dst = r.buf
	}
	rec, err := SplitLineInto(dst, line, r.opts.Separator)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = r.line
		}
		return false, err
	}
	if r.opts.ReuseRecord {
		r.buf = rec
	}
	r.current = rec
	return true, nil
}

// Current returns the record produced by the last successful Advance.
func (r *Reader) Current() ([]string, error) {
	if r.current == nil {
		return nil, ErrNoCurrentRecord
	}
	return r.current, nil
}

// Line returns the 1-based number of the last line pulled from the source, or
// zero before the first Advance.
func (r *Reader) Line() int { return r.line }

// Reset drops the current record and the iteration position. The next Advance
// ranges over the source from the start.
func (r *Reader) Reset() {
	r.release()
	r.current = nil
	r.line = 0
}

// Close releases the iteration over the source, which lets re-openable sources
// close what they opened. The Reader can still be Reset and reused.
func (r *Reader) Close() error {
	r.release()
	r.current = nil
	return nil
}

// All returns the remaining records as a sequence. Parse failures are yielded
// with a nil record and iteration continues with the next line.
func (r *Reader) All() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			ok, err := r.Advance()
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !ok || !yield(r.current, nil) {
				return
			}
		}
	}
}

func (r *Reader) release() {
	if r.stop != nil {
		r.stop()
	}
	r.next, r.stop = nil, nil
}
