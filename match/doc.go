// Package match decides how wildcard patterns relate to records.
//
// Key functions:
//   - Satisfies: a concrete input meets every constraint of a pattern
//   - Compatible: some concrete input could satisfy two patterns at once
//
// Both walk the records field by field, recursing into nested records, and
// require the two records to share a shape.
package match
