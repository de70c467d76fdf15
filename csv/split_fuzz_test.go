package csv

import (
	"errors"
	"strings"
	"testing"
)

func FuzzSplitLine(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c",
		`"a,b"`,
		`"a""b"`,
		`"abc`,
		`x"a"y`,
		`"a"  `,
		`"a" "b"`,
		"stop_id,stop_name\t,  ,",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, line string) {
		fields, err := SplitLine(line, ',')
		if err != nil {
			if fields != nil {
				t.Fatalf("partial record %q returned with error %v", fields, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			if pe.Column < 1 || pe.Column > len(line)+1 {
				t.Fatalf("column %d out of range for %q", pe.Column, line)
			}
			return
		}
		if len(fields) == 0 {
			t.Fatalf("no fields for %q", line)
		}
		if !strings.Contains(line, `"`) {
			if got, want := len(fields), strings.Count(line, ",")+1; got != want {
				t.Fatalf("got %d fields, want %d for %q", got, want, line)
			}
			if joined := strings.Join(fields, ","); joined != line {
				t.Fatalf("join mismatch: %q != %q", joined, line)
			}
		}

		again, err := SplitLine(line, ',')
		if err != nil || len(again) != len(fields) {
			t.Fatalf("non-deterministic split for %q", line)
		}
		for i := range fields {
			if fields[i] != again[i] {
				t.Fatalf("non-deterministic field %d for %q", i, line)
			}
		}
	})
}
