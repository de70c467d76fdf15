/*
Package gtfs opens GTFS static feeds and scans their files with the csv engine.

A feed is a zip archive, a directory of .txt files (optionally compressed as
.gz, .zst or .lz4) or a single file. This package is data-source agnostic beyond
that: it does NOT download feeds.

# Basic Usage

	feed, err := gtfs.Open("sofia-static.zip")
	if err != nil {
	    log.Fatal(err)
	}
	defer feed.Close()

	r, err := feed.Reader("stops.txt", csv.ReaderOptions{})
	if err != nil {
	    log.Fatal(err)
	}
	defer r.Close()
	for rec, err := range r.All() {
	    // rec is the raw field list; the first one is the header
	}

# Scanning

Scan reads every file of a feed concurrently and reports, per file, the header,
record counts, field-count range and the lines that failed to parse. Malformed
lines are recorded and skipped; I/O errors abort the scan.

	report, err := gtfs.Scan(ctx, feed, gtfs.ScanOptions{Concurrency: 4})

Mapping records onto entities and cross-file consistency checks are left to the
caller.
*/
package gtfs
