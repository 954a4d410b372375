// Package frame contains a minimal immutable table of heterogeneous values.
//
// A [*Table] contains ordered column names and rows, where each [Row] maps
// column names to values. Values are whatever JSON decoding produces (nil,
// bool, float64, string, []any, map[string]any) plus the integer types and
// any other value callers store. Every method returns a new table and
// never mutates the receiver.
package frame
