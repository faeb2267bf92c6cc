package function

import (
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablefn/cell"
	"tablefn/merge"
	"tablefn/record"
	"tablefn/shape"
	"tablefn/table"
)

var (
	animal = shape.MustNew("Animal",
		shape.LeafField("name", shape.LeafString),
		shape.LeafField("species", shape.LeafString),
	)
	traits = shape.MustNew("Traits",
		shape.LeafField("legs", shape.LeafInt),
		shape.LeafField("hat_colour", shape.LeafString),
	)
)

func load(t *testing.T, source string, rows ...[]string) *table.Table {
	t.Helper()

	tbl := table.New(animal, traits)
	require.NoError(t, tbl.Load(source, rows, "*"))

	return tbl
}

func input(t *testing.T, name, species string) record.Record {
	t.Helper()

	r, err := record.Decode(animal, []string{name, species}, "*")
	require.NoError(t, err)

	return r
}

func TestBuildAndApply(t *testing.T) {
	t.Parallel()

	fn, err := Build(load(t, "animals.csv",
		[]string{"*", "bear", "4", "*"},
		[]string{"yogi", "*", "*", "celadon"},
		[]string{"*", "trout", "0", "*"},
	))
	require.NoError(t, err)
	assert.Equal(t, 3, fn.Len())
	assert.True(t, fn.Domain().Equal(animal))
	assert.True(t, fn.Range().Equal(traits))

	tests := []struct {
		name     string
		input    record.Record
		expected string
		matched  int
	}{
		{"yogi bear", input(t, "yogi", "bear"), "Traits(legs=4, hat_colour=celadon)", 2},
		{"other bear", input(t, "boo", "bear"), "Traits(legs=4, hat_colour=*)", 1},
		{"trout", input(t, "nemo", "trout"), "Traits(legs=0, hat_colour=*)", 1},
		{"yogi trout", input(t, "yogi", "trout"), "Traits(legs=0, hat_colour=celadon)", 2},
		{"no match", input(t, "rex", "dog"), "Traits(legs=*, hat_colour=*)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fn.Apply(tt.input)
			assert.Equal(t, tt.expected, got.String())
			assert.Len(t, fn.Matches(tt.input), tt.matched)
		})
	}
}

func TestApplyNoMatchIsNeutral(t *testing.T) {
	t.Parallel()

	fn, err := Build(load(t, "animals.csv", []string{"*", "bear", "4", "*"}))
	require.NoError(t, err)

	got := fn.Apply(input(t, "rex", "dog"))
	assert.True(t, got.IsWildcard())
	assert.True(t, got.Equal(record.Wildcards(traits)))
	assert.Empty(t, fn.Matches(input(t, "rex", "dog")))
}

func TestBuildRejectsContradiction(t *testing.T) {
	t.Parallel()

	_, err := Build(load(t, "animals.csv",
		[]string{"*", "bear", "4", "*"},
		[]string{"yogi", "bear", "2", "celadon"},
	))

	var inconsistent *InconsistentTableError
	require.ErrorAs(t, err, &inconsistent)
	require.Len(t, inconsistent.Conflicts, 1)

	c := inconsistent.Conflicts[0]
	assert.Equal(t, "animals.csv:0", c.First.Location())
	assert.Equal(t, "animals.csv:1", c.Second.Location())
	assert.Equal(t, "legs", c.Err.Path.String())
	assert.True(t, c.Err.Left.Equal(cell.Concrete(int64(4))))
	assert.True(t, c.Err.Right.Equal(cell.Concrete(int64(2))))

	assert.Equal(t,
		"inconsistent table: animals.csv:0 Animal(name=*, species=bear) and animals.csv:1 Animal(name=yogi, species=bear)"+
			" are compatible but map legs to 4 and 2",
		err.Error())

	var ce *merge.ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestBuildAllowsIncompatibleDisagreement(t *testing.T) {
	t.Parallel()

	_, err := Build(load(t, "animals.csv",
		[]string{"*", "bear", "4", "*"},
		[]string{"*", "trout", "0", "*"},
		[]string{"yogi", "bear", "4", "celadon"},
	))
	assert.NoError(t, err)
}

func TestConflictCollection(t *testing.T) {
	t.Parallel()

	tbl := load(t, "animals.csv",
		[]string{"*", "*", "4", "*"},
		[]string{"*", "*", "2", "*"},
		[]string{"*", "*", "0", "*"},
		[]string{"*", "*", "8", "*"},
	)

	tests := []struct {
		name     string
		cfg      Config
		expected int
	}{
		{"collect all", DefaultConfig(), 6},
		{"fail fast", Config{FailFast: true}, 1},
		{"capped", Config{MaxConflicts: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Len(t, Check(tbl, tt.cfg), tt.expected)

			_, err := BuildWithConfig(tbl, tt.cfg)

			var inconsistent *InconsistentTableError
			require.ErrorAs(t, err, &inconsistent)
			assert.Len(t, inconsistent.Conflicts, tt.expected)
		})
	}

	_, err := Build(tbl)
	assert.Contains(t, err.Error(), "... (total 6)")
}

func TestBuildSpansConcatenatedSources(t *testing.T) {
	t.Parallel()

	a := load(t, "a.csv", []string{"*", "bear", "4", "*"})
	b := load(t, "b.csv", []string{"yogi", "bear", "2", "*"})

	_, err := Build(a)
	require.NoError(t, err)

	_, err = Build(b)
	require.NoError(t, err)

	joined, err := table.Concat(a, b)
	require.NoError(t, err)

	_, err = Build(joined)

	var inconsistent *InconsistentTableError
	require.ErrorAs(t, err, &inconsistent)
	assert.Equal(t, "a.csv:0", inconsistent.Conflicts[0].First.Location())
	assert.Equal(t, "b.csv:0", inconsistent.Conflicts[0].Second.Location())
}

func TestBuildEmptyTable(t *testing.T) {
	t.Parallel()

	fn, err := Build(table.New(animal, traits))
	require.NoError(t, err)
	assert.True(t, fn.Apply(input(t, "yogi", "bear")).IsWildcard())

	_, err = Build(nil)
	assert.Error(t, err)
}

func TestFunctionIsUnaffectedByLaterLoads(t *testing.T) {
	t.Parallel()

	tbl := load(t, "animals.csv", []string{"*", "bear", "4", "*"})

	fn, err := Build(tbl)
	require.NoError(t, err)

	require.NoError(t, tbl.Load("more.csv", [][]string{{"*", "bear", "2", "*"}}, "*"))
	assert.Equal(t, 1, fn.Len())
	assert.Equal(t, "Traits(legs=4, hat_colour=*)", fn.Apply(input(t, "yogi", "bear")).String())
}

func TestNestedShapes(t *testing.T) {
	t.Parallel()

	iceCreamName := shape.MustNew("IceCreamName",
		shape.LeafField("brand_name", shape.LeafString),
		shape.LeafField("edition", shape.LeafString),
	)
	iceCream := shape.MustNew("IceCream",
		shape.NestedField("full_name", iceCreamName),
		shape.LeafField("flavour", shape.LeafEnum, "vanilla", "strawberry", "chocolate", "ants"),
		shape.LeafField("zip_code", shape.LeafInt),
	)
	product := shape.MustNew("Product",
		shape.LeafField("product_id", shape.LeafString),
		shape.LeafField("company", shape.LeafString),
		shape.LeafField("jurisdiction_id", shape.LeafInt),
		shape.LeafField("reviews", shape.LeafEnum, "bad", "good"),
	)

	tbl := table.New(iceCream, product)
	require.NoError(t, tbl.Load("ice_cream.csv", [][]string{
		{"Jolly", "*", "*", "*", "*", "Jolly Ltd", "*", "*"},
		{"Jolly", "classic", "vanilla", "*", "JV-1", "*", "*", "good"},
		{"*", "*", "ants", "*", "*", "*", "*", "bad"},
		{"*", "*", "*", "90210", "*", "*", "7", "*"},
	}, "*"))

	fn, err := Build(tbl)
	require.NoError(t, err)

	in, err := record.Decode(iceCream, []string{"Jolly", "classic", "vanilla", "90210"}, "*")
	require.NoError(t, err)

	got := fn.Apply(in)
	assert.Equal(t, "Product(product_id=JV-1, company=Jolly Ltd, jurisdiction_id=7, reviews=good)", got.String(),
		"matched rows:\n%s", spew.Sdump(fn.Matches(in)))

	require.NoError(t, tbl.Load("more.csv", [][]string{
		{"Jolly", "*", "ants", "*", "*", "*", "*", "good"},
	}, "*"))

	_, err = Build(tbl)

	var inconsistent *InconsistentTableError
	require.ErrorAs(t, err, &inconsistent)
	assert.Equal(t, "reviews", inconsistent.Conflicts[0].Err.Path.String())
}

func TestApplyConcurrently(t *testing.T) {
	t.Parallel()

	fn, err := Build(load(t, "animals.csv",
		[]string{"*", "bear", "4", "*"},
		[]string{"yogi", "*", "*", "celadon"},
	))
	require.NoError(t, err)

	in := input(t, "yogi", "bear")

	var wg sync.WaitGroup

	results := make([]string, 16)
	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()
			results[i] = fn.Apply(in).String()
		}()
	}

	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "Traits(legs=4, hat_colour=celadon)", r)
	}
}
