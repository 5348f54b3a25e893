package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareLocations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b []string
		want int
	}{
		{nil, nil, 0},
		{nil, []string{"a"}, -1},
		{[]string{"a", "b"}, []string{"a"}, 1},
		{[]string{"2"}, []string{"10"}, -1},
		{[]string{"b"}, []string{"a"}, 1},
		{[]string{"10"}, []string{"a"}, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compareLocations(tt.a, tt.b, byName{}), "%v vs %v", tt.a, tt.b)
	}
}

func TestCompareLocations_DeclaredOrder(t *testing.T) {
	t.Parallel()
	order := documentOrder{"": {"zeta", "alpha"}, "/alpha": {"y", "x"}}
	tests := []struct {
		a, b []string
		want int
	}{
		{[]string{"zeta"}, []string{"alpha"}, -1},
		{[]string{"alpha", "y"}, []string{"alpha", "x"}, -1},
		{[]string{"alpha"}, []string{"other"}, -1},
		{[]string{"other"}, []string{"another"}, 1},
		{[]string{"zeta", "q"}, []string{"alpha"}, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compareLocations(tt.a, tt.b, order), "%v vs %v", tt.a, tt.b)
	}
}

func TestPointer(t *testing.T) {
	t.Parallel()
	assert.Empty(t, pointer(nil))
	assert.Equal(t, "/a/0", pointer([]string{"a", "0"}))
	assert.Equal(t, "/a~1b/c~0d", pointer([]string{"a/b", "c~d"}))
}

func TestResult_First(t *testing.T) {
	t.Parallel()
	r := &Result{Errors: []Error{
		{Keyword: "type", InstancePath: "/other"},
		{Keyword: "format", InstancePath: "/email"},
		{Keyword: "required", InstancePath: ""},
	}}
	e, ok := r.First("/email", "")
	assert.True(t, ok)
	assert.Equal(t, "format", e.Keyword)

	_, ok = r.First("/missing")
	assert.False(t, ok)

	_, ok = validResult().First("")
	assert.False(t, ok)
}
