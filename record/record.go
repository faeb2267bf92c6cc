// Package record holds instances of shapes and the codec that maps them to
// and from flat sequences of cells.
//
// Records are values. Every operation that changes a record returns a new
// one; nothing mutates a record after it is built.
package record

import (
	"fmt"
	"strings"

	"tablefn/cell"
	"tablefn/shape"
)

// Value is the content of one field: a cell for leaves, a record for nested
// fields.
type Value struct {
	cell   cell.Cell
	nested *Record
}

// LeafValue wraps a cell as a field value.
func LeafValue(c cell.Cell) Value {
	return Value{cell: c}
}

// NestedValue wraps a record as a field value.
func NestedValue(r Record) Value {
	return Value{nested: &r}
}

// IsNested reports whether the value holds a nested record.
func (v Value) IsNested() bool {
	return v.nested != nil
}

// Cell returns the leaf cell. It is the wildcard for nested values.
func (v Value) Cell() cell.Cell {
	return v.cell
}

// Record returns the nested record. It is the zero Record for leaves.
func (v Value) Record() Record {
	if v.nested == nil {
		return Record{}
	}

	return *v.nested
}

// Record is an instance of a shape.
type Record struct {
	shape  *shape.Shape
	values []Value
}

// Assemble builds a record from one value per direct field of s.
func Assemble(s *shape.Shape, values []Value) (Record, error) {
	if len(values) != s.NumFields() {
		return Record{}, fmt.Errorf("%s has %d fields, got %d values", s.Name(), s.NumFields(), len(values))
	}

	for i, v := range values {
		f := s.Field(i)
		if f.IsNested() != v.IsNested() {
			return Record{}, fmt.Errorf("%s.%s: nested field/value mismatch", s.Name(), f.Name)
		}

		if f.IsNested() && !f.Nested.Equal(v.nested.shape) {
			return Record{}, fmt.Errorf("%s.%s: expected %s, got %s", s.Name(), f.Name, f.Nested.Name(), v.nested.shape.Name())
		}
	}

	return Record{shape: s, values: append([]Value(nil), values...)}, nil
}

// Wildcards returns the record of shape s whose every leaf is the wildcard.
func Wildcards(s *shape.Shape) Record {
	values := make([]Value, s.NumFields())

	for i := range values {
		f := s.Field(i)
		if f.IsNested() {
			values[i] = NestedValue(Wildcards(f.Nested))
		}
	}

	return Record{shape: s, values: values}
}

// Shape returns the record's shape.
func (r Record) Shape() *shape.Shape {
	return r.shape
}

// NumFields returns the number of direct fields.
func (r Record) NumFields() int {
	return len(r.values)
}

// At returns the value of the i-th direct field.
func (r Record) At(i int) Value {
	return r.values[i]
}

// Field returns the value of the direct field called name.
func (r Record) Field(name string) (Value, bool) {
	if r.shape == nil {
		return Value{}, false
	}

	i, ok := r.shape.FieldIndex(name)
	if !ok {
		return Value{}, false
	}

	return r.values[i], true
}

// Get returns the leaf cell at path.
func (r Record) Get(path shape.Path) (cell.Cell, bool) {
	v, ok := r.lookup(path)
	if !ok || v.IsNested() {
		return cell.Wildcard, false
	}

	return v.cell, true
}

// Sub returns the nested record at path.
func (r Record) Sub(path shape.Path) (Record, bool) {
	v, ok := r.lookup(path)
	if !ok || !v.IsNested() {
		return Record{}, false
	}

	return *v.nested, true
}

func (r Record) lookup(path shape.Path) (Value, bool) {
	if len(path) == 0 {
		return Value{}, false
	}

	v, ok := r.Field(path[0])
	if !ok {
		return Value{}, false
	}

	if len(path) == 1 {
		return v, true
	}

	if !v.IsNested() {
		return Value{}, false
	}

	return v.nested.lookup(path[1:])
}

// With returns a copy of r with the leaf at path set to c.
func (r Record) With(path shape.Path, c cell.Cell) (Record, error) {
	if r.shape == nil || len(path) == 0 {
		return Record{}, fmt.Errorf("no leaf at %q", path.String())
	}

	i, ok := r.shape.FieldIndex(path[0])
	if !ok {
		return Record{}, fmt.Errorf("%s has no field %q", r.shape.Name(), path[0])
	}

	values := append([]Value(nil), r.values...)
	v := values[i]

	switch {
	case len(path) == 1 && !v.IsNested():
		values[i] = LeafValue(c)
	case len(path) > 1 && v.IsNested():
		sub, err := v.nested.With(path[1:], c)
		if err != nil {
			return Record{}, err
		}

		values[i] = NestedValue(sub)
	default:
		return Record{}, fmt.Errorf("%s has no leaf at %q", r.shape.Name(), path.String())
	}

	return Record{shape: r.shape, values: values}, nil
}

// IsWildcard reports whether every leaf of r is the wildcard.
func (r Record) IsWildcard() bool {
	for _, v := range r.values {
		if v.IsNested() {
			if !v.nested.IsWildcard() {
				return false
			}

			continue
		}

		if !v.cell.IsWildcard() {
			return false
		}
	}

	return true
}

// Equal reports whether both records have equal shapes and equal cells at
// every leaf.
func (r Record) Equal(other Record) bool {
	if !r.shape.Equal(other.shape) || len(r.values) != len(other.values) {
		return false
	}

	for i, v := range r.values {
		w := other.values[i]
		if v.IsNested() != w.IsNested() {
			return false
		}

		if v.IsNested() {
			if !v.nested.Equal(*w.nested) {
				return false
			}

			continue
		}

		if !v.cell.Equal(w.cell) {
			return false
		}
	}

	return true
}

// String renders r as Shape(field=value, ...).
func (r Record) String() string {
	if r.shape == nil {
		return "<nil>"
	}

	b := &strings.Builder{}
	r.write(b)

	return b.String()
}

func (r Record) write(b *strings.Builder) {
	b.WriteString(r.shape.Name())
	b.WriteString("(")

	for i, v := range r.values {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(r.shape.Field(i).Name)
		b.WriteString("=")

		if v.IsNested() {
			v.nested.write(b)
		} else {
			b.WriteString(v.cell.String())
		}
	}

	b.WriteString(")")
}
