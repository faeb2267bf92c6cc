package function

import (
	"fmt"
	"strings"

	"tablefn/merge"
	"tablefn/table"
)

// Conflict is a pair of rows whose domain patterns overlap while their ranges
// disagree on a concrete value.
type Conflict struct {
	First, Second table.Row
	Err           *merge.ConflictError
}

// String names both rows, both patterns, the field and both values.
func (c Conflict) String() string {
	return fmt.Sprintf("%s %s and %s %s are compatible but map %s to %v and %v",
		c.First.Location(), c.First.Domain,
		c.Second.Location(), c.Second.Domain,
		c.Err.Path, c.Err.Left, c.Err.Right)
}

// InconsistentTableError reports that a table does not define a function.
type InconsistentTableError struct {
	Conflicts []Conflict
}

// Error summarizes the first few conflicts.
func (e *InconsistentTableError) Error() string {
	const maxShown = 3

	b := &strings.Builder{}
	b.WriteString("inconsistent table: ")

	n := len(e.Conflicts)
	lim := min(n, maxShown)

	for i := range lim {
		if i > 0 {
			b.WriteString("; ")
		}

		b.WriteString(e.Conflicts[i].String())
	}

	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}

	return b.String()
}

// Unwrap exposes the first conflict to errors.As.
func (e *InconsistentTableError) Unwrap() error {
	if len(e.Conflicts) == 0 {
		return nil
	}

	return e.Conflicts[0].Err
}
