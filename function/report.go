package function

import (
	"fmt"

	"tablefn/internal/diagnostic"
	"tablefn/table"
)

// Diagnostic codes produced by Report.
const (
	CodeConflict     = "conflict"
	CodeDuplicateRow = "duplicate_row"
	CodeEmptyRange   = "empty_range"
)

// Report lints t: conflicting pairs are errors, rows identical to an earlier
// row are warnings and rows whose range is all wildcards are infos.
func Report(t *table.Table, cfg Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	rows := t.Rows()

	for _, c := range scan(rows, cfg) {
		res.AddError(CodeConflict,
			fmt.Sprintf("%s and %s overlap but map to %v and %v", c.First.Domain, c.Second.Domain, c.Err.Left, c.Err.Right),
			c.First.Location()+" / "+c.Second.Location(),
			c.Err.Path.String())
	}

	for i, r := range rows {
		if r.Range.IsWildcard() {
			res.AddInfo(CodeEmptyRange, "row constrains nothing", r.Location(), "")
		}

		for _, prev := range rows[:i] {
			if prev.Domain.Equal(r.Domain) && prev.Range.Equal(r.Range) {
				res.AddWarning(CodeDuplicateRow, "duplicates "+prev.Location(), r.Location(), "")
				break
			}
		}
	}

	return res
}
