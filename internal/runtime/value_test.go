package runtime

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberDisplay(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{5, "5"},
		{3.14, "3.14"},
		{-0.5, "-0.5"},
		{1e21, "1e+21"},
	}
	for _, tt := range tests {
		n := &Number{Value: tt.value}
		assert.Equal(t, tt.want, n.String())
		assert.Equal(t, NumberType, n.Type())
	}
}

func TestComplexDisplay(t *testing.T) {
	tests := []struct {
		value complex128
		want  string
	}{
		{complex(2, 3), "2 + 3i"},
		{complex(2, -3), "2 - 3i"},
		{complex(0, 1), "i"},
		{complex(0, -1), "-i"},
		{complex(0, 2), "2i"},
		{complex(4, 0), "4"},
	}
	for _, tt := range tests {
		c := &Complex{Value: tt.value}
		assert.Equal(t, tt.want, c.String())
	}
}

func TestTensorConstruction(t *testing.T) {
	tensor, err := NewRealTensor([]float64{1, 2, 3, 4, 5, 6}, []int{2, 3})
	require.NoError(t, err)

	if diff := cmp.Diff([]int{3, 1}, tensor.Strides); diff != "" {
		t.Errorf("strides mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "[[1, 2, 3], [4, 5, 6]]", tensor.String())

	v, err := tensor.At([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestTensorShapeInvariant(t *testing.T) {
	_, err := NewRealTensor([]float64{1, 2, 3}, []int{2, 2})
	require.Error(t, err)
	assert.True(t, IsInvariantError(err))
}

func TestTensorIndexErrors(t *testing.T) {
	tensor, err := NewRealTensor([]float64{1, 2, 3}, []int{3})
	require.NoError(t, err)

	_, err = tensor.At([]int{3})
	require.Error(t, err)
	assert.True(t, IsIndexError(err))

	// No Python-style wraparound: negative indices fail.
	_, err = tensor.At([]int{-1})
	require.Error(t, err)
	assert.True(t, IsIndexError(err))

	// Rank mismatch.
	_, err = tensor.At([]int{0, 0})
	require.Error(t, err)
	assert.True(t, IsIndexError(err))
}

func TestRowMajorStrides(t *testing.T) {
	tests := []struct {
		shape []int
		want  []int
	}{
		{[]int{4}, []int{1}},
		{[]int{2, 3}, []int{3, 1}},
		{[]int{2, 3, 4}, []int{12, 4, 1}},
		{nil, []int{}},
	}
	for _, tt := range tests {
		got := RowMajorStrides(tt.shape)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("shape %v: strides mismatch (-want +got):\n%s", tt.shape, diff)
		}
	}
}

func TestRecordOrderAndMutation(t *testing.T) {
	record := NewRecord()
	record.Define("b", &Number{Value: 1})
	record.Define("a", &Number{Value: 2})

	assert.Equal(t, []string{"b", "a"}, record.FieldNames())

	// Plain fields are replaced wholesale.
	record.Set("b", &Number{Value: 10})
	v, ok := record.Get("b")
	require.True(t, ok)
	assert.Equal(t, 10.0, v.(*Number).Value)

	// Mutable cells are written in place: the cell identity survives.
	ref := NewMutableRef(&Number{Value: 0})
	record.Define("c", ref)
	record.Set("c", &Number{Value: 7})
	assert.Equal(t, 7.0, ref.Get().(*Number).Value)
}

func TestMutableRefDeref(t *testing.T) {
	ref := NewMutableRef(&Number{Value: 3})
	assert.Equal(t, 3.0, Deref(ref).(*Number).Value)

	plain := &Number{Value: 4}
	assert.Same(t, Value(plain), Deref(plain))
}

func TestEdgeDisplay(t *testing.T) {
	w := 2.5
	tests := []struct {
		edge *Edge
		want string
	}{
		{&Edge{From: "a", To: "b"}, "a -- b"},
		{&Edge{From: "a", To: "b", Directed: true}, "a -> b"},
		{&Edge{From: "a", To: "b", Weight: &w}, "a -- b [2.5]"},
		{&Edge{From: "a", To: "b", Directed: true, Weight: &w, Label: "road"}, `a -> b [2.5] "road"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.edge.String())
	}
}

func TestGenerator(t *testing.T) {
	n := 0.0
	gen := NewGenerator(func() (Value, bool) {
		if n >= 3 {
			return nil, false
		}
		n++
		return &Number{Value: n}, true
	})

	var got []float64
	for {
		v, more := gen.Next()
		if !more {
			break
		}
		got = append(got, v.(*Number).Value)
	}
	assert.Equal(t, []float64{1, 2, 3}, got)
}
