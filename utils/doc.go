// Package utils provides small value helpers shared by the GTFS readers.
//
// It contains:
//   - Fixed-width digit parsing for hot numeric paths (times of day, service dates)
//   - GTFS time-of-day and service-date parsing
//   - Great-circle distance and unix-time conversions
package utils
