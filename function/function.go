package function

import (
	"errors"
	"fmt"

	"tablefn/match"
	"tablefn/merge"
	"tablefn/record"
	"tablefn/shape"
	"tablefn/table"
)

// Config controls the consistency scan.
type Config struct {
	// FailFast stops the scan at the first conflicting pair.
	FailFast bool
	// MaxConflicts caps how many conflicts are collected. Zero means no cap.
	MaxConflicts int
}

// DefaultConfig collects every conflict.
func DefaultConfig() Config {
	return Config{}
}

func (c Config) enough(found int) bool {
	if found == 0 {
		return false
	}

	return c.FailFast || (c.MaxConflicts > 0 && found >= c.MaxConflicts)
}

// Function maps domain records to range records. It is immutable.
type Function struct {
	domain *shape.Shape
	rng    *shape.Shape
	rows   []table.Row
}

// Build validates t with the default config and returns its function.
func Build(t *table.Table) (*Function, error) {
	return BuildWithConfig(t, DefaultConfig())
}

// BuildWithConfig checks every pair of rows and returns the function, or an
// *InconsistentTableError listing the conflicting pairs.
func BuildWithConfig(t *table.Table, cfg Config) (*Function, error) {
	if t == nil {
		return nil, errors.New("table is nil")
	}

	rows := t.Rows()

	if conflicts := scan(rows, cfg); len(conflicts) > 0 {
		return nil, &InconsistentTableError{Conflicts: conflicts}
	}

	return &Function{domain: t.Domain(), rng: t.Range(), rows: rows}, nil
}

// Check runs the pairwise consistency scan without building a function.
func Check(t *table.Table, cfg Config) []Conflict {
	return scan(t.Rows(), cfg)
}

func scan(rows []table.Row, cfg Config) []Conflict {
	var conflicts []Conflict

	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			c, ok := conflictBetween(rows[i], rows[j])
			if !ok {
				continue
			}

			conflicts = append(conflicts, c)
			if cfg.enough(len(conflicts)) {
				return conflicts
			}
		}
	}

	return conflicts
}

func conflictBetween(a, b table.Row) (Conflict, bool) {
	if !match.Compatible(a.Domain, b.Domain) {
		return Conflict{}, false
	}

	_, err := merge.Merge(a.Range, b.Range)
	if err == nil {
		return Conflict{}, false
	}

	var ce *merge.ConflictError
	if !errors.As(err, &ce) {
		// Rows of one table always share a range shape.
		panic(fmt.Sprintf("tablefn: merging %s with %s: %v", a.Location(), b.Location(), err))
	}

	return Conflict{First: a, Second: b, Err: ce}, true
}

// Domain returns the domain shape.
func (f *Function) Domain() *shape.Shape {
	return f.domain
}

// Range returns the range shape.
func (f *Function) Range() *shape.Shape {
	return f.rng
}

// Len returns the number of rows behind the function.
func (f *Function) Len() int {
	return len(f.rows)
}

// Matches returns the rows whose domain pattern input satisfies, in table
// order. An empty result means the table says nothing about input.
func (f *Function) Matches(input record.Record) []table.Row {
	var out []table.Row

	for _, r := range f.rows {
		if match.Satisfies(r.Domain, input) {
			out = append(out, r)
		}
	}

	return out
}

// Apply merges the ranges of every row matching input. With no matching row
// the result is the all-wildcard range record.
func (f *Function) Apply(input record.Record) record.Record {
	matched := f.Matches(input)

	ranges := make([]record.Record, len(matched))
	for i, r := range matched {
		ranges[i] = r.Range
	}

	out, err := merge.Fold(f.rng, ranges...)
	if err != nil {
		// Build proved every pair of co-selected rows mergeable.
		panic(fmt.Sprintf("tablefn: inconsistent function applied to %s: %v", input, err))
	}

	return out
}
