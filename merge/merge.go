// Package merge combines range records leaf by leaf. Concrete values take
// precedence over wildcards; two different concrete values conflict.
package merge

import (
	"fmt"

	"tablefn/cell"
	"tablefn/record"
	"tablefn/shape"
)

// ConflictError reports a leaf where both records carry different concrete
// values.
type ConflictError struct {
	Path        shape.Path
	Left, Right cell.Cell
}

// Error implements error.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict at %s: %v vs %v", e.Path, e.Left, e.Right)
}

// Merge combines a and b. It is commutative and associative, and the
// all-wildcard record of the shape is its identity.
func Merge(a, b record.Record) (record.Record, error) {
	if a.Shape() == nil || !a.Shape().Equal(b.Shape()) {
		return record.Record{}, fmt.Errorf("cannot merge %s with %s", shapeName(a), shapeName(b))
	}

	return merge(nil, a, b)
}

func merge(prefix shape.Path, a, b record.Record) (record.Record, error) {
	s := a.Shape()
	values := make([]record.Value, a.NumFields())

	for i := range values {
		path := prefix.Child(s.Field(i).Name)
		x, y := a.At(i), b.At(i)

		if x.IsNested() {
			sub, err := merge(path, x.Record(), y.Record())
			if err != nil {
				return record.Record{}, err
			}

			values[i] = record.NestedValue(sub)

			continue
		}

		c, err := leaf(path, x.Cell(), y.Cell())
		if err != nil {
			return record.Record{}, err
		}

		values[i] = record.LeafValue(c)
	}

	return record.Assemble(s, values)
}

func leaf(path shape.Path, x, y cell.Cell) (cell.Cell, error) {
	switch {
	case x.IsWildcard():
		return y, nil
	case y.IsWildcard(), x.Equal(y):
		return x, nil
	default:
		return cell.Wildcard, &ConflictError{Path: path, Left: x, Right: y}
	}
}

// Fold merges records into the all-wildcard record of shape s, in order.
// An empty list yields the all-wildcard record.
func Fold(s *shape.Shape, records ...record.Record) (record.Record, error) {
	acc := record.Wildcards(s)

	for _, r := range records {
		var err error

		acc, err = Merge(acc, r)
		if err != nil {
			return record.Record{}, err
		}
	}

	return acc, nil
}

func shapeName(r record.Record) string {
	if r.Shape() == nil {
		return "<nil>"
	}

	return r.Shape().Name()
}
