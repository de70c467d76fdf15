// Package preprocess holds line transforms applied before a line is split,
// for feeds exported by tools that add byte-order marks, padding or legacy
// encodings.
package preprocess

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/unicode/norm"
)

// Func rewrites one line.
type Func func(string) string

// ErrUnknownPreprocessor is returned by ByName for names it does not know.
var ErrUnknownPreprocessor = errors.New("preprocess: unknown preprocessor")

const bom = "\ufeff"

// TrimBOM drops a leading UTF-8 byte-order mark.
func TrimBOM(line string) string {
	return strings.TrimPrefix(line, bom)
}

// TrimSpace drops leading and trailing whitespace.
func TrimSpace(line string) string {
	return strings.TrimSpace(line)
}

// TrimTrailingCR drops a carriage return left by sources split on "\n" only.
func TrimTrailingCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}

// NFC normalizes the line to Unicode composed form, so "e" followed by a
// combining acute accent compares equal to "é".
func NFC(line string) string {
	return norm.NFC.String(line)
}

// Charset returns a transform decoding lines from the named IANA charset
// (for example "ISO-8859-1" or "windows-1252") into UTF-8. Lines that fail to
// decode are returned unchanged.
func Charset(name string) (Func, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("preprocess: charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("preprocess: charset %q is not supported", name)
	}
	return decodeWith(enc), nil
}

func decodeWith(enc encoding.Encoding) Func {
	return func(line string) string {
		out, err := enc.NewDecoder().String(line)
		if err != nil {
			return line
		}
		return out
	}
}

// Chain applies fns left to right. Nil entries are skipped.
func Chain(fns ...Func) Func {
	return func(line string) string {
		for _, fn := range fns {
			if fn != nil {
				line = fn(line)
			}
		}
		return line
	}
}

var named = map[string]Func{
	"trim-bom":   TrimBOM,
	"trim-space": TrimSpace,
	"trim-cr":    TrimTrailingCR,
	"nfc":        NFC,
}

// Names lists the transforms ByName understands.
func Names() []string {
	return []string{"trim-bom", "trim-space", "trim-cr", "nfc"}
}

// ByName builds a chain from configuration. The charset decoder, when set, runs
// first so the named transforms see UTF-8. It returns nil when nothing is
// configured.
func ByName(names []string, charset string) (Func, error) {
	var fns []Func
	if charset != "" {
		dec, err := Charset(charset)
		if err != nil {
			return nil, err
		}
		fns = append(fns, dec)
	}
	for _, n := range names {
		fn, ok := named[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreprocessor, n)
		}
		fns = append(fns, fn)
	}
	if len(fns) == 0 {
		return nil, nil
	}
	return Chain(fns...), nil
}
