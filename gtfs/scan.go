package gtfs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/gtfs-csv/csv"
	"github.com/theoremus-urban-solutions/gtfs-csv/metrics"
	"github.com/theoremus-urban-solutions/gtfs-csv/utils"
)

// Failure reasons reported in LineError.Reason and the metrics labels.
const (
	ReasonUnterminatedQuote = "unterminated_quote"
	ReasonDuplicateQuote    = "duplicate_quoted_region"
	ReasonAmbiguousField    = "ambiguous_field"
	ReasonOther             = "other"
)

// ScanOptions configures Scan. The zero value scans every file sequentially
// with comma separators and keeps every failure.
type ScanOptions struct {
	Reader csv.ReaderOptions
	// Files restricts the scan; empty means every file in the feed.
	Files []string
	// Concurrency bounds the number of files read at once; below 1 means 1.
	Concurrency int
	// MaxFailures caps the failures kept per file; the count keeps going.
	// Zero keeps all of them.
	MaxFailures int
	Metrics     *metrics.Collector
	Logger      *zap.Logger
}

// LineError describes a line that failed to parse.
type LineError struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Reason  string `json:"reason" yaml:"reason"`
	Message string `json:"message" yaml:"message"`
}

// FileReport summarizes one scanned file.
type FileReport struct {
	Name         string        `json:"name" yaml:"name"`
	Header       []string      `json:"header" yaml:"header"`
	Lines        int           `json:"lines" yaml:"lines"`
	Records      int           `json:"records" yaml:"records"`
	MinFields    int           `json:"minFields" yaml:"minFields"`
	MaxFields    int           `json:"maxFields" yaml:"maxFields"`
	FailureCount int           `json:"failureCount" yaml:"failureCount"`
	Failures     []LineError   `json:"failures,omitempty" yaml:"failures,omitempty"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
}

// Ragged reports whether records disagree on their field count.
func (r FileReport) Ragged() bool { return r.MinFields != r.MaxFields }

// Report is the result of scanning a feed.
type Report struct {
	Path        string       `json:"path" yaml:"path"`
	GeneratedAt string       `json:"generatedAt" yaml:"generatedAt"`
	Files       []FileReport `json:"files" yaml:"files"`
}

// Failures returns the number of failed lines across all files.
func (r *Report) Failures() int {
	n := 0
	for _, f := range r.Files {
		n += f.FailureCount
	}
	return n
}

// Records returns the number of parsed records across all files, headers included.
func (r *Report) Records() int {
	n := 0
	for _, f := range r.Files {
		n += f.Records
	}
	return n
}

// Scan reads the selected files of feed concurrently. Malformed lines end up
// in the report; source errors, an invalid separator or ctx cancellation stop
// the scan and are returned.
func Scan(ctx context.Context, feed *Feed, opts ScanOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	names := opts.Files
	if len(names) == 0 {
		names = feed.Files()
	}
	for _, n := range names {
		if _, err := feed.Source(n); err != nil {
			return nil, err
		}
	}

	report := &Report{Path: feed.Path(), Files: make([]FileReport, len(names))}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for i, name := range names {
		g.Go(func() error {
			start := time.Now()
			fr, err := scanFile(ctx, feed, name, opts, logger)
			if err != nil {
				return fmt.Errorf("gtfs: scanning %s: %w", name, err)
			}
			fr.Duration = time.Since(start)
			opts.Metrics.ObserveFile(name, fr.Duration)
			logger.Debug("file scanned",
				zap.String("file", name),
				zap.Int("records", fr.Records),
				zap.Int("failures", fr.FailureCount),
				zap.Duration("took", fr.Duration))
			report.Files[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report.GeneratedAt = utils.Iso8601Now()
	return report, nil
}

func scanFile(ctx context.Context, feed *Feed, name string, opts ScanOptions, logger *zap.Logger) (FileReport, error) {
	fr := FileReport{Name: name}
	r, err := feed.Reader(name, opts.Reader)
	if err != nil {
		return fr, err
	}
	defer r.Close()

	for {
		if err := ctx.Err(); err != nil {
			return fr, err
		}
		ok, err := r.Advance()
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return fr, err
			}
			fr.Lines++
			fr.FailureCount++
			reason := failureReason(pe)
			opts.Metrics.Line(name, reason)
			if opts.MaxFailures == 0 || len(fr.Failures) < opts.MaxFailures {
				fr.Failures = append(fr.Failures, LineError{
					Line:    pe.Line,
					Column:  pe.Column,
					Reason:  reason,
					Message: pe.Err.Error(),
				})
			}
			logger.Warn("skipping malformed line",
				zap.String("file", name),
				zap.Int("line", pe.Line),
				zap.Int("column", pe.Column),
				zap.String("reason", reason))
			continue
		}
		if !ok {
			return fr, nil
		}
		rec, err := r.Current()
		if err != nil {
			return fr, err
		}
		fr.Lines++
		fr.Records++
		opts.Metrics.Line(name, "")
		if fr.Header == nil {
			fr.Header = slices.Clone(rec)
		}
		if fr.Records == 1 || len(rec) < fr.MinFields {
			fr.MinFields = len(rec)
		}
		if len(rec) > fr.MaxFields {
			fr.MaxFields = len(rec)
		}
	}
}

func failureReason(pe *csv.ParseError) string {
	switch {
	case errors.Is(pe, csv.ErrUnterminatedQuote):
		return ReasonUnterminatedQuote
	case errors.Is(pe, csv.ErrDuplicateQuotedRegion):
		return ReasonDuplicateQuote
	case errors.Is(pe, csv.ErrAmbiguousField):
		return ReasonAmbiguousField
	}
	return ReasonOther
}
