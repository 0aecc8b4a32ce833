package builtins

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

func newFullRegistry() *Registry {
	r := NewRegistry()
	RegisterAll(r, &Context{Output: io.Discard})
	return r
}

func TestRegisterAndLookup(t *testing.T) {
	r := newFullRegistry()

	b, ok := r.Lookup("sin")
	require.True(t, ok)
	assert.Equal(t, "sin", b.Name)
	assert.Equal(t, 1, b.Arity)

	_, ok = r.Lookup("definitely-not-registered")
	assert.False(t, ok)
}

func TestLookupIsCaseSensitive(t *testing.T) {
	r := newFullRegistry()
	_, ok := r.Lookup("Sin")
	assert.False(t, ok, "SOC names are case-sensitive")
}

func TestSpecialFormMarking(t *testing.T) {
	r := newFullRegistry()
	r.MarkSpecialForm("if")

	assert.True(t, r.Has("if"))
	assert.True(t, r.IsSpecialForm("if"))
	assert.False(t, r.IsSpecialForm("sin"))

	// Special forms have no ordinary callable.
	_, ok := r.Lookup("if")
	assert.False(t, ok)
}

func TestReplaceRegistration(t *testing.T) {
	r := NewRegistry()
	r.Register("f", 1, CategoryMath, "first", func(args []runtime.Value) (runtime.Value, error) {
		return &runtime.Number{Value: 1}, nil
	})
	r.Register("f", 2, CategoryMath, "second", func(args []runtime.Value) (runtime.Value, error) {
		return &runtime.Number{Value: 2}, nil
	})

	assert.Equal(t, 1, r.Count())
	b, ok := r.Lookup("f")
	require.True(t, ok)
	assert.Equal(t, 2, b.Arity)
}

func TestNamesSorted(t *testing.T) {
	r := newFullRegistry()
	names := r.Names()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
}

func TestVariadicArity(t *testing.T) {
	r := newFullRegistry()
	b, ok := r.Lookup("min")
	require.True(t, ok)
	assert.Equal(t, runtime.Variadic, b.Arity)
}
