// Package config loads the YAML settings of the gtfscsv tools.
//
// The file has a reader section (separator, preprocessors, charset), a logging
// section, an optional metrics listen address, scan limits and a list of named
// feeds. A feed may override the reader section for its own files. Struct tags
// are checked with validator before defaults are filled in.
package config
