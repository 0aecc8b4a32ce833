package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarEquality(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal numbers", &Number{Value: 2}, &Number{Value: 2}, true},
		{"unequal numbers", &Number{Value: 2}, &Number{Value: 3}, false},
		{"number vs boolean", &Number{Value: 1}, &Boolean{Value: true}, false},
		{"booleans", &Boolean{Value: true}, &Boolean{Value: true}, true},
		{"strings", &String{Value: "a"}, &String{Value: "a"}, true},
		{"complex equal", &Complex{Value: complex(1, 2)}, &Complex{Value: complex(1, 2)}, true},
		{"real complex vs number", &Complex{Value: complex(5, 0)}, &Number{Value: 5}, true},
		{"complex vs number", &Complex{Value: complex(5, 1)}, &Number{Value: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a))
		})
	}
}

func TestTensorEquality(t *testing.T) {
	a, err := NewRealTensor([]float64{1, 2, 3, 4}, []int{2, 2})
	require.NoError(t, err)
	b, err := NewRealTensor([]float64{1, 2, 3, 4}, []int{2, 2})
	require.NoError(t, err)
	flat, err := NewRealTensor([]float64{1, 2, 3, 4}, []int{4})
	require.NoError(t, err)
	other, err := NewRealTensor([]float64{1, 2, 3, 5}, []int{2, 2})
	require.NoError(t, err)

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, flat), "same data, different shape")
	assert.False(t, Equal(a, other))

	// A real tensor equals its complex promotion.
	assert.True(t, Equal(a, a.ToComplex()))
	assert.True(t, Equal(a.ToComplex(), b))
}

func TestVectorAndRecordEquality(t *testing.T) {
	va := &GenericVector{Elements: []Value{&Number{Value: 1}, &String{Value: "x"}}}
	vb := &GenericVector{Elements: []Value{&Number{Value: 1}, &String{Value: "x"}}}
	assert.True(t, Equal(va, vb))

	ra := NewRecord()
	ra.Define("x", &Number{Value: 1})
	rb := NewRecord()
	rb.Define("x", &Number{Value: 1})
	assert.True(t, Equal(ra, rb))

	rb.Set("x", &Number{Value: 2})
	assert.False(t, Equal(ra, rb))
}

func TestMutableRefEqualityComparesContents(t *testing.T) {
	ref := NewMutableRef(&Number{Value: 3})
	assert.True(t, Equal(ref, &Number{Value: 3}))
}

func TestFunctionEqualityIsIdentity(t *testing.T) {
	f := &Function{Parameters: []string{"x"}}
	g := &Function{Parameters: []string{"x"}}
	assert.True(t, Equal(f, f))
	assert.False(t, Equal(f, g))
}
