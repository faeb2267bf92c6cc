package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablefn/cell"
	"tablefn/function"
	"tablefn/record"
	"tablefn/shape"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func TestCompile(t *testing.T) {
	t.Parallel()

	mf, err := Parse([]byte(iceCreamYAML))
	require.NoError(t, err)

	domain, rng, err := Compile(mf)
	require.NoError(t, err)

	assert.Equal(t, "IceCream", domain.Name())
	assert.Equal(t, 4, domain.Width())
	assert.Equal(t, "IceCreamName", domain.Field(0).Nested.Name())
	assert.Equal(t, shape.LeafInt, domain.Field(2).Leaf.Kind)

	assert.Equal(t, "Product", rng.Name())
	assert.Equal(t, 4, rng.Width())

	jur, ok := rng.Lookup(shape.Path{"jurisdiction", "id"})
	require.True(t, ok)
	assert.Equal(t, shape.LeafInt, jur.Leaf.Kind)
}

func TestCompile_SharesNamedShapes(t *testing.T) {
	t.Parallel()

	mf, err := Parse([]byte(`
shapes:
  - {name: Name, fields: [first, last]}
domain:
  name: Pair
  fields:
    - {name: left, type: Name}
    - {name: right, type: Name}
range: {name: Out, fields: [{name: same, type: bool}]}
sources: x.csv
`))
	require.NoError(t, err)

	domain, _, err := Compile(mf)
	require.NoError(t, err)
	assert.Same(t, domain.Field(0).Nested, domain.Field(1).Nested)
}

func TestCompile_Invalid(t *testing.T) {
	t.Parallel()

	mf, err := Parse([]byte(`{domain: {name: A, fields: [{name: a, type: Missing}]}, range: {name: B, fields: [b]}}`))
	require.NoError(t, err)

	_, _, err = Compile(mf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_type")
}

func TestOpen_Header(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"def.yaml": iceCreamYAML,
		"ice_cream.csv": "brand_name,flavour,company,reviews\n" +
			"Acme,*,AcmeCo,*\n" +
			"*,ants,*,bad\n",
	})

	mf, tbl, err := Open(filepath.Join(dir, "def.yaml"))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	rows := tbl.Rows()
	assert.Equal(t, "ice_cream.csv", rows[0].Source)
	assert.Equal(t, "ice_cream.csv:0", rows[0].Location())

	fn, err := function.Build(tbl)
	require.NoError(t, err)

	input, err := record.DecodeKeyed(tbl.Domain(), map[string]string{
		"brand_name": "Acme",
		"flavour":    "ants",
	}, mf.Wildcard)
	require.NoError(t, err)

	out := fn.Apply(input)

	company, _ := out.Get(shape.Path{"company"})
	reviews, _ := out.Get(shape.Path{"reviews"})
	product, _ := out.Get(shape.Path{"product_id"})

	assert.True(t, company.Equal(cell.Concrete("AcmeCo")), spew.Sdump(out))
	assert.True(t, reviews.Equal(cell.Concrete("bad")), spew.Sdump(out))
	assert.True(t, product.IsWildcard())
}

const positionalYAML = `
comma: ";"
comment: "#"
wildcard: "-"
domain: {name: In, fields: [colour, {name: size, type: int}]}
range: {name: Out, fields: [label]}
sources: [a.csv, b.csv]
`

func TestOpen_Positional(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"def.yaml": positionalYAML,
		"a.csv":    "red;-;warm\nblue;-;cold\n",
		"b.csv":    "# sizes\n-;10;big\n",
	})

	_, tbl, err := Open(filepath.Join(dir, "def.yaml"))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	rows := tbl.Rows()
	assert.Equal(t, "b.csv", rows[2].Source)
	assert.Equal(t, 2, rows[2].Index)

	size, _ := rows[2].Domain.Get(shape.Path{"size"})
	assert.True(t, size.Equal(cell.Concrete(int64(10))), spew.Sdump(rows[2]))
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		files    map[string]string
		contains string
	}{
		{
			name:     "missing source",
			files:    map[string]string{"def.yaml": positionalYAML, "a.csv": "red;-;warm\n"},
			contains: "b.csv",
		},
		{
			name: "short row",
			files: map[string]string{
				"def.yaml": positionalYAML,
				"a.csv":    "red;warm\n",
				"b.csv":    "",
			},
			contains: "a.csv",
		},
		{
			name: "bad int",
			files: map[string]string{
				"def.yaml": positionalYAML,
				"a.csv":    "red;large;warm\n",
				"b.csv":    "",
			},
			contains: "large",
		},
		{
			name: "unknown column",
			files: map[string]string{
				"def.yaml":      iceCreamYAML,
				"ice_cream.csv": "brand_name,colour\nAcme,red\n",
			},
			contains: "colour",
		},
		{
			name:     "invalid definition",
			files:    map[string]string{"def.yaml": `{domain: {name: A, fields: []}, range: {name: B, fields: [b]}}`},
			contains: "missing_fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeFiles(t, tt.files)

			_, _, err := Open(filepath.Join(dir, "def.yaml"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
