package utils

import "errors"

var (
	// ErrInvalidDigit is returned when a character is not an ASCII digit.
	ErrInvalidDigit = errors.New("utils: invalid digit")
	// ErrLengthOverflow is returned when more than three digits are requested.
	ErrLengthOverflow = errors.New("utils: value too long, can be max 3 chars long")
	// ErrOutOfRange is returned when the requested window does not fit the value.
	ErrOutOfRange = errors.New("utils: digit window out of range")
)

// MaxFastDigits is the widest window ParseDigits accepts.
const MaxFastDigits = 3

var digitWeights = [MaxFastDigits]int{1, 10, 100}

// ParseDigits reads length ASCII digits of value starting at offset as an
// unsigned base-10 number. It skips sign, locale and overflow handling, so it
// only takes windows of up to three digits such as the parts of "08:15:00".
func ParseDigits(value string, offset, length int) (int, error) {
	if length > MaxFastDigits {
		return 0, ErrLengthOverflow
	}
	if offset < 0 || length < 0 || offset+length > len(value) {
		return 0, ErrOutOfRange
	}
	result := 0
	for i := 0; i < length; i++ {
		d, err := ParseDigit(value[offset+i])
		if err != nil {
			return 0, err
		}
		result += d * digitWeights[length-1-i]
	}
	return result, nil
}

// ParseDigit maps '0'..'9' to 0..9.
func ParseDigit(c byte) (int, error) {
	if c < '0' || c > '9' {
		return 0, ErrInvalidDigit
	}
	return int(c - '0'), nil
}
