// Package shape describes the static structure of records: an ordered list
// of named fields, each a single-cell leaf or a nested shape.
//
// A shape determines how a flat row of cells is sliced into a record. Its
// width is the number of leaves reachable from it.
package shape

import (
	"errors"
	"fmt"
	"strings"

	"tablefn/internal/common"
	"tablefn/internal/suggest"
)

// Field is one named member of a shape. Exactly one of Leaf or Nested is
// meaningful: Nested is nil for leaves.
type Field struct {
	Name   string
	Leaf   Leaf
	Nested *Shape

	// nested is set by NestedField so New can reject a nil nested shape.
	nested bool
}

// LeafField declares a leaf field. Enum values are only used for LeafEnum.
func LeafField(name string, kind LeafKind, values ...string) Field {
	return Field{Name: name, Leaf: Leaf{Kind: kind, Values: values}}
}

// NestedField declares a field holding a nested record of shape s.
func NestedField(name string, s *Shape) Field {
	return Field{Name: name, Nested: s, nested: true}
}

// IsNested reports whether the field holds a nested record.
func (f Field) IsNested() bool {
	return f.Nested != nil
}

// Width is the number of cells the field consumes.
func (f Field) Width() int {
	if f.Nested != nil {
		return f.Nested.Width()
	}

	return 1
}

// Shape is an immutable record type description.
type Shape struct {
	name   string
	fields []Field
	width  int
}

// New validates and builds a shape.
func New(name string, fields ...Field) (*Shape, error) {
	if name == "" {
		return nil, errors.New("shape name is empty")
	}

	if common.IsEmpty(fields) {
		return nil, fmt.Errorf("shape %s has no fields", name)
	}

	names := make([]string, 0, len(fields))
	width := 0

	for i, f := range fields {
		if !isValidIdent(f.Name) {
			return nil, fmt.Errorf("shape %s: field %d has invalid name %q", name, i, f.Name)
		}

		if f.nested && f.Nested == nil {
			return nil, fmt.Errorf("shape %s: field %s has nil nested shape", name, f.Name)
		}

		if !f.IsNested() && f.Leaf.Kind == LeafEnum && common.IsEmpty(f.Leaf.Values) {
			return nil, fmt.Errorf("shape %s: enum field %s has no values", name, f.Name)
		}

		names = append(names, f.Name)
		width += f.Width()
	}

	if dups := common.Duplicates(names); len(dups) > 0 {
		return nil, fmt.Errorf("shape %s: duplicate field %q", name, dups[0])
	}

	return &Shape{
		name:   name,
		fields: append([]Field(nil), fields...),
		width:  width,
	}, nil
}

// MustNew is like New but panics on error. Intended for statically declared
// shapes.
func MustNew(name string, fields ...Field) *Shape {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}

	return s
}

// Name returns the shape's type name.
func (s *Shape) Name() string {
	return s.name
}

// Fields returns a copy of the declared fields in order.
func (s *Shape) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// NumFields returns the number of direct fields.
func (s *Shape) NumFields() int {
	return len(s.fields)
}

// Field returns the i-th direct field.
func (s *Shape) Field(i int) Field {
	return s.fields[i]
}

// FieldIndex returns the position of the direct field called name.
func (s *Shape) FieldIndex(name string) (int, bool) {
	for i, f := range s.fields {
		if f.Name == name {
			return i, true
		}
	}

	return -1, false
}

// Width is the total number of leaf cells.
func (s *Shape) Width() int {
	return s.width
}

// LeafRef locates a leaf within a shape.
type LeafRef struct {
	Path Path
	Leaf Leaf
}

// Leaves lists every leaf in flattening order.
func (s *Shape) Leaves() []LeafRef {
	out := make([]LeafRef, 0, s.width)
	s.collectLeaves(nil, &out)

	return out
}

func (s *Shape) collectLeaves(prefix Path, out *[]LeafRef) {
	for _, f := range s.fields {
		p := prefix.Child(f.Name)
		if f.IsNested() {
			f.Nested.collectLeaves(p, out)
			continue
		}

		*out = append(*out, LeafRef{Path: p, Leaf: f.Leaf})
	}
}

// Lookup resolves a path to the field it names.
func (s *Shape) Lookup(path Path) (Field, bool) {
	if len(path) == 0 {
		return Field{}, false
	}

	current := s
	for i, name := range path {
		idx, ok := current.FieldIndex(name)
		if !ok {
			return Field{}, false
		}

		f := current.fields[idx]
		if i == len(path)-1 {
			return f, true
		}

		if !f.IsNested() {
			return Field{}, false
		}

		current = f.Nested
	}

	return Field{}, false
}

// Equal reports structural identity: same name, field names, leaf kinds,
// enum values and nesting.
func (s *Shape) Equal(other *Shape) bool {
	if s == other {
		return true
	}

	if s == nil || other == nil {
		return false
	}

	if s.name != other.name || len(s.fields) != len(other.fields) {
		return false
	}

	for i, f := range s.fields {
		g := other.fields[i]
		if f.Name != g.Name || f.IsNested() != g.IsNested() {
			return false
		}

		if f.IsNested() {
			if !f.Nested.Equal(g.Nested) {
				return false
			}

			continue
		}

		if !f.Leaf.Equal(g.Leaf) {
			return false
		}
	}

	return true
}

// String renders the shape as Name{field type, ...}.
func (s *Shape) String() string {
	b := &strings.Builder{}
	b.WriteString(s.name)
	b.WriteString("{")

	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(f.Name)
		b.WriteString(" ")

		if f.IsNested() {
			b.WriteString(f.Nested.String())
		} else {
			b.WriteString(f.Leaf.String())
		}
	}

	b.WriteString("}")

	return b.String()
}

// ErrAmbiguousLeaf is returned by LeafIndex when a bare name matches more
// than one leaf.
var ErrAmbiguousLeaf = errors.New("ambiguous leaf name")

// ErrUnknownLeaf is returned by LeafIndex when a key names no leaf.
var ErrUnknownLeaf = errors.New("unknown leaf")

// LeafIndex resolves key to a flat cell position. The key is either a full
// dotted path or the bare name of a leaf that is unique within the shape.
func (s *Shape) LeafIndex(key string) (int, error) {
	leaves := s.Leaves()

	if strings.Contains(key, ".") {
		p, err := ParsePath(key)
		if err != nil {
			return -1, err
		}

		for i, l := range leaves {
			if l.Path.Equals(p) {
				return i, nil
			}
		}

		paths := make([]string, len(leaves))
		for i, l := range leaves {
			paths[i] = l.Path.String()
		}

		return -1, fmt.Errorf("%w %q in %s%s", ErrUnknownLeaf, key, s.name, suggest.Hint(key, paths))
	}

	found := -1

	for i, l := range leaves {
		if l.Path.Last() != key {
			continue
		}

		if found >= 0 {
			return -1, fmt.Errorf("%w %q in %s", ErrAmbiguousLeaf, key, s.name)
		}

		found = i
	}

	if found < 0 {
		names := make([]string, len(leaves))
		for i, l := range leaves {
			names[i] = l.Path.Last()
		}

		return -1, fmt.Errorf("%w %q in %s%s", ErrUnknownLeaf, key, s.name, suggest.Hint(key, names))
	}

	return found, nil
}
