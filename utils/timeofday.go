package utils

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeOfDay is returned for strings that are not H:MM:SS or HH:MM:SS.
var ErrInvalidTimeOfDay = errors.New("utils: invalid time of day")

// ErrInvalidServiceDate is returned for strings that are not YYYYMMDD.
var ErrInvalidServiceDate = errors.New("utils: invalid service date")

// TimeOfDay is a GTFS stop time. Hours may exceed 23 for trips running past
// midnight of their service day.
type TimeOfDay struct {
	Hours   int
	Minutes int
	Seconds int
}

// ParseTimeOfDay parses "H:MM:SS" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hourLen int
	switch len(s) {
	case 7:
		hourLen = 1
	case 8:
		hourLen = 2
	default:
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	if s[hourLen] != ':' || s[hourLen+3] != ':' {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	h, err := ParseDigits(s, 0, hourLen)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q: %w", ErrInvalidTimeOfDay, s, err)
	}
	m, err := ParseDigits(s, hourLen+1, 2)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q: %w", ErrInvalidTimeOfDay, s, err)
	}
	sec, err := ParseDigits(s, hourLen+4, 2)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q: %w", ErrInvalidTimeOfDay, s, err)
	}
	if m > 59 || sec > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hours: h, Minutes: m, Seconds: sec}, nil
}

// TotalSeconds returns the offset from the start of the service day.
func (t TimeOfDay) TotalSeconds() int {
	return t.Hours*3600 + t.Minutes*60 + t.Seconds
}

// String formats t as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// ParseServiceDate parses a GTFS "YYYYMMDD" date as midnight UTC.
func ParseServiceDate(s string) (time.Time, error) {
	if len(s) != 8 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidServiceDate, s)
	}
	millennium, err := ParseDigits(s, 0, 1)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidServiceDate, s, err)
	}
	rest, err := ParseDigits(s, 1, 3)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidServiceDate, s, err)
	}
	month, err := ParseDigits(s, 4, 2)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidServiceDate, s, err)
	}
	day, err := ParseDigits(s, 6, 2)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidServiceDate, s, err)
	}
	year := millennium*1000 + rest
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 20240230 into March; reject instead.
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidServiceDate, s)
	}
	return d, nil
}
