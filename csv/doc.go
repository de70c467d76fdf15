/*
Package csv parses GTFS-style delimited text into ordered field sequences.

It has two layers. SplitLine turns one line into its fields, resolving double-quoted
regions and "" escapes. Reader composes a lazy line Source with SplitLine and exposes
one record at a time, the way the GTFS loaders consume stops.txt, trips.txt and friends.

# Splitting a line

	fields, err := csv.SplitLine(`1001,"Main St, North",42.35`, ',')
	// fields == []string{"1001", "Main St, North", "42.35"}

Whitespace next to a quoted region is tolerated and dropped; any other character there
fails with ErrAmbiguousField. Unlike encoding/csv there is no multi-line record support:
a line is always one record.

# Streaming records

	r := csv.NewReader(lines.FromSlice(raw), csv.ReaderOptions{Separator: ','})
	defer r.Close()
	for {
		ok, err := r.Advance()
		if err != nil {
			log.Printf("skipping line %d: %v", r.Line(), err)
			continue
		}
		if !ok {
			break
		}
		rec, _ := r.Current()
		// map rec to an entity
	}

A failed line never aborts the reader; the caller decides whether to skip it or stop.
*/
package csv
