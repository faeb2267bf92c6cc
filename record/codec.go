package record

import (
	"fmt"

	"tablefn/cell"
	"tablefn/shape"
)

// Flatten emits one cell per leaf of r, visiting fields in declaration order
// and recursing into nested records.
func (r Record) Flatten() []cell.Cell {
	out := make([]cell.Cell, 0, r.width())
	r.flattenInto(&out)

	return out
}

func (r Record) width() int {
	if r.shape == nil {
		return 0
	}

	return r.shape.Width()
}

func (r Record) flattenInto(out *[]cell.Cell) {
	for _, v := range r.values {
		if v.IsNested() {
			v.nested.flattenInto(out)
			continue
		}

		*out = append(*out, v.cell)
	}
}

// Unflatten rebuilds a record of shape s from exactly Width(s) cells,
// consuming them left to right.
func Unflatten(s *shape.Shape, cells []cell.Cell) (Record, error) {
	if len(cells) != s.Width() {
		return Record{}, &ShapeMismatchError{
			Shape: s.Name(),
			Row:   -1,
			Want:  s.Width(),
			Got:   len(cells),
		}
	}

	r, _ := unflatten(s, cells)

	return r, nil
}

// unflatten builds a record from the front of cells and returns the rest.
func unflatten(s *shape.Shape, cells []cell.Cell) (Record, []cell.Cell) {
	values := make([]Value, s.NumFields())

	for i := range values {
		f := s.Field(i)
		if f.IsNested() {
			var sub Record

			sub, cells = unflatten(f.Nested, cells)
			values[i] = NestedValue(sub)

			continue
		}

		values[i] = LeafValue(cells[0])
		cells = cells[1:]
	}

	return Record{shape: s, values: values}, cells
}

// ParseCells converts raw tokens to cells using the leaf kinds of s. A token
// equal to wildcard becomes the wildcard; anything else is parsed by its leaf.
func ParseCells(s *shape.Shape, tokens []string, wildcard string) ([]cell.Cell, error) {
	if len(tokens) != s.Width() {
		return nil, &ShapeMismatchError{
			Shape: s.Name(),
			Row:   -1,
			Want:  s.Width(),
			Got:   len(tokens),
		}
	}

	leaves := s.Leaves()
	cells := make([]cell.Cell, len(tokens))

	for i, tok := range tokens {
		if tok == wildcard {
			continue
		}

		c, err := leaves[i].Leaf.Parse(tok)
		if err != nil {
			return nil, &LeafError{Shape: s.Name(), Path: leaves[i].Path, Token: tok, Err: err}
		}

		cells[i] = c
	}

	return cells, nil
}

// Decode parses tokens and unflattens them into a record of shape s.
func Decode(s *shape.Shape, tokens []string, wildcard string) (Record, error) {
	cells, err := ParseCells(s, tokens, wildcard)
	if err != nil {
		return Record{}, err
	}

	return Unflatten(s, cells)
}

// DecodeKeyed builds a record from tokens keyed by leaf path (or unique bare
// leaf name). Leaves that are not mentioned are wildcards.
func DecodeKeyed(s *shape.Shape, keyed map[string]string, wildcard string) (Record, error) {
	tokens := make([]string, s.Width())
	for i := range tokens {
		tokens[i] = wildcard
	}

	seen := make(map[int]string, len(keyed))

	for key, tok := range keyed {
		idx, err := s.LeafIndex(key)
		if err != nil {
			return Record{}, err
		}

		if prev, ok := seen[idx]; ok {
			return Record{}, fmt.Errorf("%q and %q name the same leaf of %s", prev, key, s.Name())
		}

		seen[idx] = key
		tokens[idx] = tok
	}

	return Decode(s, tokens, wildcard)
}
