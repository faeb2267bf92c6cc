package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueIsWildcard(t *testing.T) {
	t.Parallel()

	var c Cell
	assert.True(t, c.IsWildcard())
	assert.True(t, c.Equal(Wildcard))

	v, ok := c.Value()
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     Cell
		expected bool
	}{
		{"wildcards", Wildcard, Wildcard, true},
		{"wildcard vs concrete", Wildcard, Concrete("bear"), false},
		{"concrete vs wildcard", Concrete("bear"), Wildcard, false},
		{"same string", Concrete("bear"), Concrete("bear"), true},
		{"different string", Concrete("bear"), Concrete("trout"), false},
		{"same int", Concrete(int64(4)), Concrete(int64(4)), true},
		{"different int", Concrete(int64(4)), Concrete(int64(2)), false},
		{"int vs string", Concrete(int64(4)), Concrete("4"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
			assert.Equal(t, tt.expected, tt.b.Equal(tt.a))
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "*", Wildcard.String())
	assert.Equal(t, "celadon", Concrete("celadon").String())
	assert.Equal(t, "42", Concrete(int64(42)).String())
	assert.Equal(t, "true", Concrete(true).String())
}

func TestConcreteRejectsIncomparable(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "cell: []int is not comparable", func() {
		Concrete[any]([]int{1})
	})
	assert.Panics(t, func() {
		Concrete[any](struct{ v any }{v: map[string]int{}})
	})

	assert.NotPanics(t, func() {
		assert.True(t, Concrete[any](int64(1)).Equal(Concrete(int64(1))))
	})
}
