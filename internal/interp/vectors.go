package interp

import (
	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// evalVectorLiteral evaluates all children left-to-right, then classifies
// the result container: a real tensor when every element is real numeric, a
// complex tensor when any element is complex and the rest numeric, a
// stacked higher-rank tensor when every element is a tensor of identical
// shape (how matrix literals are built), and a GenericVector otherwise.
func (i *Interpreter) evalVectorLiteral(node *ast.VectorLiteral) (runtime.Value, error) {
	elements := make([]runtime.Value, len(node.Elements))
	for n, el := range node.Elements {
		v, err := i.Eval(el)
		if err != nil {
			return nil, err
		}
		elements[n] = runtime.Deref(v)
	}
	return MakeVector(elements)
}

// MakeVector builds the value for an evaluated element list, applying the
// vector-literal classification rules. Exposed for the collection special
// forms, which rebuild containers of the same kind.
func MakeVector(elements []runtime.Value) (runtime.Value, error) {
	if len(elements) == 0 {
		return runtime.NewRealTensor(nil, []int{0})
	}

	allReal, allNumeric := true, true
	for _, el := range elements {
		switch el.(type) {
		case *runtime.Number:
		case *runtime.Complex:
			allReal = false
		default:
			allNumeric = false
		}
	}
	if allNumeric {
		if allReal {
			data := make([]float64, len(elements))
			for n, el := range elements {
				data[n] = el.(*runtime.Number).Value
			}
			return runtime.NewRealTensor(data, []int{len(elements)})
		}
		data := make([]complex128, len(elements))
		for n, el := range elements {
			c, _ := runtime.AsComplex(el)
			data[n] = c
		}
		return runtime.NewComplexTensor(data, []int{len(elements)})
	}

	if stacked, ok, err := stackTensors(elements); ok || err != nil {
		return stacked, err
	}
	return &runtime.GenericVector{Elements: elements}, nil
}

// stackTensors collapses a list of equally shaped tensors into one tensor
// of rank+1. Mixed real/complex rows promote the result to complex. ok is
// false when the elements are not all tensors of identical shape.
func stackTensors(elements []runtime.Value) (runtime.Value, bool, error) {
	var shape []int
	anyComplex := false
	for _, el := range elements {
		t, isTensor := asAnyTensor(el)
		if !isTensor {
			return nil, false, nil
		}
		if shape == nil {
			shape = t.shape()
		} else if !runtime.SameShape(shape, t.shape()) {
			return nil, false, nil
		}
		if t.isComplex() {
			anyComplex = true
		}
	}

	rowSize := runtime.ShapeSize(shape)
	outShape := append([]int{len(elements)}, shape...)

	if anyComplex {
		data := make([]complex128, 0, len(elements)*rowSize)
		for _, el := range elements {
			t, _ := asAnyTensor(el)
			for n := 0; n < t.size(); n++ {
				data = append(data, t.complexAt(n))
			}
		}
		v, err := runtime.NewComplexTensor(data, outShape)
		return v, true, err
	}

	data := make([]float64, 0, len(elements)*rowSize)
	for _, el := range elements {
		t, _ := asAnyTensor(el)
		data = append(data, t.real.Data...)
	}
	v, err := runtime.NewRealTensor(data, outShape)
	return v, true, err
}
