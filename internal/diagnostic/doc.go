// Package diagnostic provides structured errors, warnings and infos found
// while linting a mapping table or its definition file.
//
// Key capabilities:
//   - Conflicting row pairs with the offending field path
//   - Duplicate rows
//   - Rows that constrain nothing
//   - Definition file problems (unknown types, recursive shapes, ...)
package diagnostic
