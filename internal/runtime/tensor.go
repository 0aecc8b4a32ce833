package runtime

import (
	"strconv"
	"strings"
)

// RealTensor is an N-dimensional homogeneous array of real numbers with
// row-major storage. Rank-1 tensors double as numeric vectors. The
// invariant product(Shape) == len(Data) holds for every constructed tensor,
// and Strides are consistent with row-major order of Shape.
type RealTensor struct {
	Data    []float64
	Shape   []int
	Strides []int
}

// NewRealTensor builds a tensor over the given flat data and shape,
// computing row-major strides. It returns an error when the shape does not
// cover the data.
func NewRealTensor(data []float64, shape []int) (*RealTensor, error) {
	if err := checkShape(len(data), shape); err != nil {
		return nil, err
	}
	return &RealTensor{Data: data, Shape: shape, Strides: RowMajorStrides(shape)}, nil
}

// Type returns "TENSOR".
func (t *RealTensor) Type() string { return RealTensorType }

func (t *RealTensor) String() string {
	return formatTensor(len(t.Shape), t.Shape, t.Strides, 0, func(off int) string {
		return strconv.FormatFloat(t.Data[off], 'g', -1, 64)
	})
}

// Rank returns the number of dimensions.
func (t *RealTensor) Rank() int { return len(t.Shape) }

// At returns the element at the given multi-index.
func (t *RealTensor) At(indices []int) (float64, error) {
	off, err := offset(t.Shape, t.Strides, indices)
	if err != nil {
		return 0, err
	}
	return t.Data[off], nil
}

// ComplexTensor is the complex-element counterpart of RealTensor.
type ComplexTensor struct {
	Data    []complex128
	Shape   []int
	Strides []int
}

// NewComplexTensor builds a complex tensor with row-major strides.
func NewComplexTensor(data []complex128, shape []int) (*ComplexTensor, error) {
	if err := checkShape(len(data), shape); err != nil {
		return nil, err
	}
	return &ComplexTensor{Data: data, Shape: shape, Strides: RowMajorStrides(shape)}, nil
}

// Type returns "CTENSOR".
func (t *ComplexTensor) Type() string { return ComplexTensorType }

func (t *ComplexTensor) String() string {
	return formatTensor(len(t.Shape), t.Shape, t.Strides, 0, func(off int) string {
		return FormatComplex(t.Data[off])
	})
}

// Rank returns the number of dimensions.
func (t *ComplexTensor) Rank() int { return len(t.Shape) }

// At returns the element at the given multi-index.
func (t *ComplexTensor) At(indices []int) (complex128, error) {
	off, err := offset(t.Shape, t.Strides, indices)
	if err != nil {
		return 0, err
	}
	return t.Data[off], nil
}

// ToComplex promotes a real tensor to a complex tensor with zero imaginary
// parts. Used by the numeric tower when a real tensor meets a complex
// operand.
func (t *RealTensor) ToComplex() *ComplexTensor {
	data := make([]complex128, len(t.Data))
	for i, v := range t.Data {
		data[i] = complex(v, 0)
	}
	shape := append([]int(nil), t.Shape...)
	return &ComplexTensor{Data: data, Shape: shape, Strides: RowMajorStrides(shape)}
}

// RowMajorStrides computes the element strides of a row-major tensor with
// the given shape. The last dimension always has stride 1.
func RowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// ShapeSize returns product(shape).
func ShapeSize(shape []int) int {
	size := 1
	for _, d := range shape {
		size *= d
	}
	return size
}

// SameShape reports whether two shapes are identical.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkShape(dataLen int, shape []int) error {
	for _, d := range shape {
		if d < 0 {
			return NewInvariantError("negative tensor dimension")
		}
	}
	if ShapeSize(shape) != dataLen {
		return NewInvariantError("tensor shape does not cover data")
	}
	return nil
}

// offset converts a full-rank multi-index into a flat data offset. A rank
// mismatch or an out-of-bounds component (including negative indices; there
// is no wraparound) is an IndexError.
func offset(shape, strides, indices []int) (int, error) {
	if len(indices) != len(shape) {
		return 0, NewRankError(len(shape), len(indices))
	}
	off := 0
	for i, ix := range indices {
		if ix < 0 || ix >= shape[i] {
			return 0, NewIndexError(ix, shape[i])
		}
		off += ix * strides[i]
	}
	return off, nil
}

// formatTensor renders nested bracket syntax, e.g. [[1, 2], [3, 4]].
func formatTensor(rank int, shape, strides []int, base int, elem func(int) string) string {
	if rank == 0 {
		return elem(base)
	}
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < shape[0]; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatTensor(rank-1, shape[1:], strides[1:], base+i*strides[0], elem))
	}
	sb.WriteString("]")
	return sb.String()
}
