// Package cell defines the atomic value of a mapping table: either a
// wildcard or a concrete, comparable leaf value.
package cell

import (
	"fmt"
	"reflect"
)

// WildcardToken is the conventional textual form of a wildcard.
const WildcardToken = "*"

// Cell is a single leaf position of a record.
// The zero value is the wildcard.
type Cell struct {
	value    any
	concrete bool
}

// Wildcard matches any concrete value and yields to it when merged.
var Wildcard = Cell{}

// Concrete wraps v as a concrete cell. It panics if v holds a value that ==
// cannot compare, such as a slice inside an interface, so Equal never does.
func Concrete[V comparable](v V) Cell {
	if rv := reflect.ValueOf(v); rv.IsValid() && !rv.Comparable() {
		panic(fmt.Sprintf("cell: %T is not comparable", v))
	}

	return Cell{value: v, concrete: true}
}

// IsWildcard reports whether c is the wildcard.
func (c Cell) IsWildcard() bool {
	return !c.concrete
}

// Value returns the concrete value and true, or nil and false for a wildcard.
func (c Cell) Value() (any, bool) {
	return c.value, c.concrete
}

// Equal reports whether both cells are wildcards or both are concrete with
// equal values.
func (c Cell) Equal(other Cell) bool {
	if c.concrete != other.concrete {
		return false
	}

	return !c.concrete || c.value == other.value
}

// String renders a wildcard as "*" and a concrete value with %v.
func (c Cell) String() string {
	if !c.concrete {
		return WildcardToken
	}

	return fmt.Sprintf("%v", c.value)
}
