// Package lines adapts text that is already reachable (in memory, an open
// reader, a local file or a zip member) into csv.Source line sequences.
//
// Sources built from slices, strings, files and zip members are restartable:
// ranging over them again starts from the first line. FromReader is one-shot.
// Line terminators ("\n" and "\r\n") are stripped.
package lines
