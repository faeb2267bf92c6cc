package match

import (
	"tablefn/cell"
	"tablefn/record"
)

// Satisfies reports whether input meets pattern: every concrete leaf of the
// pattern equals the input's leaf at the same position. A wildcard in the
// input only meets a wildcard in the pattern.
func Satisfies(pattern, input record.Record) bool {
	return walk(pattern, input, func(p, in cell.Cell) bool {
		return p.IsWildcard() || p.Equal(in)
	})
}

// Compatible reports whether a and b could both be satisfied by one concrete
// input. It is reflexive and symmetric.
func Compatible(a, b record.Record) bool {
	return walk(a, b, func(x, y cell.Cell) bool {
		return x.IsWildcard() || y.IsWildcard() || x.Equal(y)
	})
}

// walk applies leaf to every pair of cells at the same position and reports
// whether all of them passed. Records of different shapes never pass.
func walk(a, b record.Record, leaf func(x, y cell.Cell) bool) bool {
	if a.Shape() == nil || !a.Shape().Equal(b.Shape()) {
		return false
	}

	for i := range a.NumFields() {
		x, y := a.At(i), b.At(i)
		if x.IsNested() {
			if !walk(x.Record(), y.Record(), leaf) {
				return false
			}

			continue
		}

		if !leaf(x.Cell(), y.Cell()) {
			return false
		}
	}

	return true
}
