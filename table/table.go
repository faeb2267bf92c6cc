// Package table holds the rows of a mapping table before it is validated.
//
// A Table pairs a domain shape with a range shape. Every row is split at
// Width(domain): the first cells form the domain pattern, the rest the range.
// Rows may come from several sources; each remembers where it was loaded
// from so that later errors can point at it.
package table

import (
	"errors"
	"fmt"
	"strings"

	"tablefn/internal/common"
	"tablefn/internal/suggest"
	"tablefn/record"
	"tablefn/shape"
)

// Row is one (domain, range) pair.
type Row struct {
	Index  int    // Position in the table.
	Source string // Name of the source the row was loaded from.
	Line   int    // Row index within Source.
	Domain record.Record
	Range  record.Record
}

// Location renders where the row came from, e.g. "animals.csv:3".
func (r Row) Location() string {
	if r.Source == "" {
		return fmt.Sprintf("row %d", r.Index)
	}

	return fmt.Sprintf("%s:%d", r.Source, r.Line)
}

// String renders the row as location: domain -> range.
func (r Row) String() string {
	return fmt.Sprintf("%s: %s -> %s", r.Location(), r.Domain, r.Range)
}

// Table is a growable list of rows sharing one domain and one range shape.
// It is not safe for concurrent loading; build a function from it once
// loading is done.
type Table struct {
	domain *shape.Shape
	rng    *shape.Shape
	rows   []Row
}

// New returns an empty table for the given shapes.
func New(domain, rng *shape.Shape) *Table {
	return &Table{domain: domain, rng: rng}
}

// Domain returns the domain shape.
func (t *Table) Domain() *shape.Shape {
	return t.domain
}

// Range returns the range shape.
func (t *Table) Range() *shape.Shape {
	return t.rng
}

// Width is the number of cells in a full row.
func (t *Table) Width() int {
	return t.domain.Width() + t.rng.Width()
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in load order.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// Add appends a single row built from already decoded records.
func (t *Table) Add(source string, domain, rng record.Record) error {
	if !t.domain.Equal(domain.Shape()) || !t.rng.Equal(rng.Shape()) {
		return &record.ShapeMismatchError{
			Source: source,
			Row:    -1,
			Detail: fmt.Sprintf("row is %s -> %s, table is %s -> %s",
				shapeName(domain.Shape()), shapeName(rng.Shape()), t.domain.Name(), t.rng.Name()),
		}
	}

	t.rows = append(t.rows, Row{
		Index:  len(t.rows),
		Source: source,
		Line:   t.countFrom(source),
		Domain: domain,
		Range:  rng,
	})

	return nil
}

func (t *Table) countFrom(source string) int {
	n := 0

	for _, r := range t.rows {
		if r.Source == source {
			n++
		}
	}

	return n
}

// Load appends positional rows of raw tokens. Each row must hold exactly
// Width(domain)+Width(range) tokens. Nothing is appended if any row fails.
func (t *Table) Load(source string, rows [][]string, wildcard string) error {
	decoded := make([]Row, 0, len(rows))

	for i, tokens := range rows {
		row, err := t.decodeRow(source, i, tokens, wildcard)
		if err != nil {
			return err
		}

		decoded = append(decoded, row)
	}

	t.appendRows(decoded)

	return nil
}

func (t *Table) decodeRow(source string, line int, tokens []string, wildcard string) (Row, error) {
	if len(tokens) != t.Width() {
		return Row{}, &record.ShapeMismatchError{
			Source: source,
			Shape:  t.domain.Name() + " -> " + t.rng.Name(),
			Row:    line,
			Want:   t.Width(),
			Got:    len(tokens),
		}
	}

	split := t.domain.Width()

	domain, err := record.Decode(t.domain, tokens[:split], wildcard)
	if err != nil {
		return Row{}, fmt.Errorf("%s row %d: %w", source, line, err)
	}

	rng, err := record.Decode(t.rng, tokens[split:], wildcard)
	if err != nil {
		return Row{}, fmt.Errorf("%s row %d: %w", source, line, err)
	}

	return Row{Source: source, Line: line, Domain: domain, Range: rng}, nil
}

func (t *Table) appendRows(rows []Row) {
	for _, r := range rows {
		r.Index = len(t.rows)
		t.rows = append(t.rows, r)
	}
}

// LoadKeyed appends rows whose columns are named by header. Each header key
// is a leaf path (or unique bare leaf name) of the domain or the range shape.
// Leaves without a column are wildcards.
func (t *Table) LoadKeyed(source string, header []string, rows [][]string, wildcard string) error {
	positions, err := t.resolveHeader(source, header)
	if err != nil {
		return err
	}

	decoded := make([]Row, 0, len(rows))

	for i, cols := range rows {
		if len(cols) != len(header) {
			return &record.ShapeMismatchError{
				Source: source,
				Shape:  "header",
				Row:    i,
				Want:   len(header),
				Got:    len(cols),
			}
		}

		tokens := make([]string, t.Width())
		for j := range tokens {
			tokens[j] = wildcard
		}

		for j, pos := range positions {
			tokens[pos] = cols[j]
		}

		row, err := t.decodeRow(source, i, tokens, wildcard)
		if err != nil {
			return err
		}

		decoded = append(decoded, row)
	}

	t.appendRows(decoded)

	return nil
}

// resolveHeader maps each header column to a flat row position.
func (t *Table) resolveHeader(source string, header []string) ([]int, error) {
	positions := make([]int, len(header))
	owner := make(map[int]string, len(header))

	for j, key := range header {
		if common.HasOuterSpace(key) {
			return nil, fmt.Errorf("%s: no whitespace allowed in key %q", source, key)
		}

		pos, err := t.resolveKey(key)
		if err != nil {
			return nil, fmt.Errorf("%s: column %d: %w", source, j, err)
		}

		if prev, ok := owner[pos]; ok {
			return nil, fmt.Errorf("%s: columns %q and %q name the same leaf", source, prev, key)
		}

		owner[pos] = key
		positions[j] = pos
	}

	return positions, nil
}

func (t *Table) resolveKey(key string) (int, error) {
	d, derr := t.domain.LeafIndex(key)
	r, rerr := t.rng.LeafIndex(key)

	switch {
	case derr == nil && rerr == nil:
		return -1, fmt.Errorf("%w %q: present in %s and %s", shape.ErrAmbiguousLeaf, key, t.domain.Name(), t.rng.Name())
	case derr == nil:
		return d, nil
	case rerr == nil:
		return t.domain.Width() + r, nil
	case errors.Is(derr, shape.ErrUnknownLeaf) && errors.Is(rerr, shape.ErrUnknownLeaf):
		return -1, fmt.Errorf("%w %q%s", shape.ErrUnknownLeaf, key, suggest.Hint(key, t.keys(strings.Contains(key, "."))))
	case !errors.Is(derr, shape.ErrUnknownLeaf):
		return -1, derr
	default:
		return -1, rerr
	}
}

// Concat joins tables that declare identical shapes into a new table.
// Inputs are left untouched.
func Concat(tables ...*Table) (*Table, error) {
	if common.IsEmpty(tables) {
		return nil, errors.New("nothing to concatenate")
	}

	first := tables[0]
	out := New(first.domain, first.rng)

	for i, t := range tables {
		if !first.domain.Equal(t.domain) || !first.rng.Equal(t.rng) {
			return nil, &record.ShapeMismatchError{
				Row: -1,
				Detail: fmt.Sprintf("table %d is %s -> %s, table 0 is %s -> %s",
					i, t.domain, t.rng, first.domain, first.rng),
			}
		}

		out.appendRows(t.rows)
	}

	return out, nil
}

// keys lists the header keys of both shapes: full leaf paths when dotted,
// bare leaf names otherwise.
func (t *Table) keys(dotted bool) []string {
	var out []string

	for _, s := range []*shape.Shape{t.domain, t.rng} {
		for _, l := range s.Leaves() {
			if dotted {
				out = append(out, l.Path.String())
			} else {
				out = append(out, l.Path.Last())
			}
		}
	}

	return out
}

func shapeName(s *shape.Shape) string {
	if s == nil {
		return "<nil>"
	}

	return s.Name()
}
