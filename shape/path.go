package shape

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Path addresses a field inside a shape, outermost name first.
type Path []string

// ParsePath parses a dotted field path such as "full_name.brand_name".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	var segments Path

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("invalid path %q: empty segment", path)
		}

		if !isValidIdent(part) {
			return nil, fmt.Errorf("invalid path %q: invalid identifier %q", path, part)
		}

		segments = append(segments, part)
	}

	return segments, nil
}

// String joins the segments with dots.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Child returns a new path with name appended.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)

	return append(out, name)
}

// Last returns the innermost field name.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// Equals compares two paths segment by segment.
func (p Path) Equals(other Path) bool {
	return slices.Equal(p, other)
}

// isValidIdent accepts letters, digits and underscores, not starting with a digit.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else if !isLetter(r) && !isDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
