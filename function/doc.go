// Package function turns a mapping table into a function between its domain
// and range shapes.
//
// A table is a function when no two rows whose domain patterns could match a
// common input disagree on a concrete range value. Build proves this once,
// by checking every pair of rows, and only then returns a Function. Because
// every pair of rows that a single input can select is compatible, merging
// their ranges in Apply cannot fail, so Apply has no error return.
//
// Typical usage:
//
//	tbl := table.New(animal, traits)
//	if err := tbl.Load("animals.csv", rows, "*"); err != nil { ... }
//
//	fn, err := function.Build(tbl)
//	if err != nil { ... } // *function.InconsistentTableError
//
//	out := fn.Apply(input)
//
// A Function never changes after Build returns and may be shared between
// goroutines.
package function
