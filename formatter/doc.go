// Package formatter serializes records and scan reports.
//
// This package is organized into:
// - records.go: record writers (JSON lines, length-delimited protobuf) and the protobuf reader
// - report.go: scan report serialization (YAML, JSON)
package formatter
