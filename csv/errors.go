package csv

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedQuote is returned when a quoted region is still open at the end of a line.
	ErrUnterminatedQuote = errors.New("csv: quoted text begins but does not end (unescaped quote?)")
	// ErrDuplicateQuotedRegion is returned when a field opens a second quoted region.
	ErrDuplicateQuotedRegion = errors.New("csv: two quoted regions in one field (unescaped quote?)")
	// ErrAmbiguousField is returned when non-whitespace characters surround a quoted region.
	ErrAmbiguousField = errors.New("csv: characters outside of quoted text (unescaped quote?)")
	// ErrNoCurrentRecord is returned by Reader.Current when no record is available.
	ErrNoCurrentRecord = errors.New("csv: no current record, call Advance first")
	// ErrInvalidSeparator is returned for separators that cannot delimit fields.
	ErrInvalidSeparator = errors.New("csv: invalid separator")
)

// ParseError locates a malformed line. Line is zero when the error comes from
// SplitLine directly and the 1-based source line when it comes from a Reader.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("csv: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("csv: parse error at column %d: %v", e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
