package common

import "strings"

// UnknownStr is rendered for enum values outside their declared range.
const UnknownStr = "unknown"

// HasOuterSpace reports whether s starts or ends with whitespace.
func HasOuterSpace(s string) bool {
	return strings.TrimSpace(s) != s
}
