package csv

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultFieldCapacity is the initial record capacity. GTFS files rarely carry
// more columns, so most lines never grow the record.
const DefaultFieldCapacity = 20

const quote = '"'

// phase of the field being scanned relative to its quoted region.
type phase uint8

const (
	beforeQuote phase = iota
	insideQuote
	afterQuote
)

// SplitLine splits line into fields delimited by sep.
//
// A field may hold one double-quoted region in which sep is literal and "" stands
// for a single quote. When a field has a quoted region its value is the region's
// content; whitespace around the region is dropped and anything else is an error.
// An empty line yields one empty field.
func SplitLine(line string, sep rune) ([]string, error) {
	return SplitLineInto(nil, line, sep)
}

// SplitLineInto is SplitLine appending into dst[:0]. The returned slice may share
// dst's backing array; its length is always the number of fields in line.
func SplitLineInto(dst []string, line string, sep rune) ([]string, error) {
	if err := validateSeparator(sep); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = make([]string, 0, DefaultFieldCapacity)
	} else {
		dst = dst[:0]
	}

	var (
		sepStr  string
		sepByte byte
		sepLen  = utf8.RuneLen(sep)
	)
	if sepLen == 1 {
		sepByte = byte(sep)
	} else {
		sepStr = string(sep)
	}
	isSep := func(i int) bool {
		if sepLen == 1 {
			return line[i] == sepByte
		}
		return strings.HasPrefix(line[i:], sepStr)
	}

	var (
		fieldStart int
		state      = beforeQuote
		quoteOpen  int // index of the opening quote
		quoteClose int // index of the closing quote
		escaped    bool
		scratch    []byte
	)

	for i := 0; i <= len(line); {
		if state == insideQuote {
			if i == len(line) {
				return nil, &ParseError{Column: quoteOpen + 1, Err: ErrUnterminatedQuote}
			}
			c := line[i]
			if c != quote {
				if escaped {
					scratch = append(scratch, c)
				}
				i++
				continue
			}
			if i+1 < len(line) && line[i+1] == quote {
				if !escaped {
					scratch = append(scratch[:0], line[quoteOpen+1:i]...)
					escaped = true
				}
				scratch = append(scratch, quote)
				i += 2
				continue
			}
			state = afterQuote
			quoteClose = i
			i++
			continue
		}

		if i == len(line) || isSep(i) {
			var value string
			if state == afterQuote {
				if !isBlank(line[fieldStart:quoteOpen]) || !isBlank(line[quoteClose+1:i]) {
					return nil, &ParseError{Column: fieldStart + 1, Err: ErrAmbiguousField}
				}
				if escaped {
					value = string(scratch)
				} else {
					value = line[quoteOpen+1 : quoteClose]
				}
			} else {
				value = line[fieldStart:i]
			}
			dst = append(dst, value)
			if i == len(line) {
				break
			}
			i += sepLen
			fieldStart = i
			state = beforeQuote
			escaped = false
			continue
		}

		if line[i] == quote {
			if state == afterQuote {
				return nil, &ParseError{Column: i + 1, Err: ErrDuplicateQuotedRegion}
			}
			state = insideQuote
			quoteOpen = i
		}
		i++
	}
	return dst, nil
}

func validateSeparator(sep rune) error {
	switch {
	case sep == quote, sep == '\r', sep == '\n':
		return ErrInvalidSeparator
	case sep == utf8.RuneError, !utf8.ValidRune(sep):
		return ErrInvalidSeparator
	}
	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
