package record

import (
	"fmt"
	"strings"

	"tablefn/shape"
)

// ShapeMismatchError reports a flat row whose width does not fit the
// declared shapes, or an attempt to combine tables of different shapes.
type ShapeMismatchError struct {
	Source string // Where the row came from, if known.
	Shape  string // Shape (or shape pair) that was expected.
	Row    int    // Row index within Source, -1 when no row is involved.
	Want   int
	Got    int
	Detail string // Replaces the width message when set.
}

// Error implements error.
func (e *ShapeMismatchError) Error() string {
	b := &strings.Builder{}
	b.WriteString("shape mismatch")

	if e.Source != "" {
		fmt.Fprintf(b, " in %s", e.Source)
	}

	if e.Row >= 0 {
		fmt.Fprintf(b, " at row %d", e.Row)
	}

	if e.Detail != "" {
		fmt.Fprintf(b, ": %s", e.Detail)
		return b.String()
	}

	if e.Shape != "" {
		fmt.Fprintf(b, ": %s", e.Shape)
	} else {
		b.WriteString(":")
	}

	fmt.Fprintf(b, " expects %d cells, got %d", e.Want, e.Got)

	return b.String()
}

// LeafError reports a token that its leaf kind cannot parse.
type LeafError struct {
	Shape string
	Path  shape.Path
	Token string
	Err   error
}

// Error implements error.
func (e *LeafError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Shape, e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *LeafError) Unwrap() error {
	return e.Err
}
