package builtins

import (
	"math"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

func registerTensor(r *Registry) {
	r.Register("linspace", 3, CategoryTensor, "n evenly spaced samples over [start, end]", linspaceBuiltin)
	r.Register("zeros", runtime.Variadic, CategoryTensor, "tensor of zeros with the given shape", fillBuiltin("zeros", 0))
	r.Register("ones", runtime.Variadic, CategoryTensor, "tensor of ones with the given shape", fillBuiltin("ones", 1))
	r.Register("reshape", runtime.Variadic, CategoryTensor, "same data, new shape", reshapeBuiltin)
	r.Register("shape", 1, CategoryTensor, "shape of a tensor as a rank-1 tensor", shapeBuiltin)
	r.Register("len", 1, CategoryTensor, "element count of a tensor, vector or string", lenBuiltin)
	r.Register("range", runtime.Variadic, CategoryTensor, "generator of numbers over [start, stop) by step", rangeBuiltin)
	r.Register("sum", 1, CategoryTensor, "sum of all elements", aggregate("sum", 0, func(acc, x float64) float64 { return acc + x }))
	r.Register("prod", 1, CategoryTensor, "product of all elements", aggregate("prod", 1, func(acc, x float64) float64 { return acc * x }))
	r.Register("mean", 1, CategoryTensor, "arithmetic mean of all elements", meanBuiltin)
	r.Register("dot", 2, CategoryTensor, "dot product of two rank-1 tensors", dotBuiltin)
	r.Register("fft", 1, CategoryTensor, "discrete Fourier transform (radix-2)", fftBuiltin)
	r.Register("ifft", 1, CategoryTensor, "inverse discrete Fourier transform", ifftBuiltin)
}

// Linspace computes n evenly spaced samples over [start, end], inclusive
// at both ends. Shared with the host bridge's linspace_fast path.
func Linspace(start, end float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, runtime.NewArithmeticError("linspace: sample count must be at least 1")
	}
	data := make([]float64, n)
	if n == 1 {
		data[0] = start
		return data, nil
	}
	step := (end - start) / float64(n-1)
	for k := range data {
		data[k] = start + float64(k)*step
	}
	// Pin the final sample to avoid accumulation error at the endpoint.
	data[n-1] = end
	return data, nil
}

func linspaceBuiltin(args []runtime.Value) (runtime.Value, error) {
	start, ok := runtime.AsNumber(args[0])
	if !ok {
		return nil, runtime.NewTypeError("a real number", args[0], "linspace")
	}
	end, ok := runtime.AsNumber(args[1])
	if !ok {
		return nil, runtime.NewTypeError("a real number", args[1], "linspace")
	}
	n, ok := asInt(args[2])
	if !ok || n < 1 {
		return nil, runtime.NewTypeError("a positive integer count", args[2], "linspace")
	}
	data, err := Linspace(start, end, n)
	if err != nil {
		return nil, err
	}
	return runtime.NewRealTensor(data, []int{n})
}

func fillBuiltin(name string, fill float64) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		shape, err := intArguments(name, args)
		if err != nil {
			return nil, err
		}
		if len(shape) == 0 {
			return nil, runtime.NewArityError(name, 1, 0)
		}
		data := make([]float64, runtime.ShapeSize(shape))
		for n := range data {
			data[n] = fill
		}
		return runtime.NewRealTensor(data, shape)
	}
}

func reshapeBuiltin(args []runtime.Value) (runtime.Value, error) {
	if len(args) < 2 {
		return nil, runtime.NewArityError("reshape", 2, len(args))
	}
	shape, err := intArguments("reshape", args[1:])
	if err != nil {
		return nil, err
	}
	switch t := runtime.Deref(args[0]).(type) {
	case *runtime.RealTensor:
		if runtime.ShapeSize(shape) != len(t.Data) {
			return nil, runtime.NewTypeError("a shape covering the data", args[0], "reshape")
		}
		return runtime.NewRealTensor(append([]float64(nil), t.Data...), shape)
	case *runtime.ComplexTensor:
		if runtime.ShapeSize(shape) != len(t.Data) {
			return nil, runtime.NewTypeError("a shape covering the data", args[0], "reshape")
		}
		return runtime.NewComplexTensor(append([]complex128(nil), t.Data...), shape)
	default:
		return nil, runtime.NewTypeError("TENSOR", args[0], "reshape")
	}
}

func shapeBuiltin(args []runtime.Value) (runtime.Value, error) {
	var shape []int
	switch t := runtime.Deref(args[0]).(type) {
	case *runtime.RealTensor:
		shape = t.Shape
	case *runtime.ComplexTensor:
		shape = t.Shape
	default:
		return nil, runtime.NewTypeError("TENSOR", args[0], "shape")
	}
	data := make([]float64, len(shape))
	for n, d := range shape {
		data[n] = float64(d)
	}
	return runtime.NewRealTensor(data, []int{len(shape)})
}

func lenBuiltin(args []runtime.Value) (runtime.Value, error) {
	switch v := runtime.Deref(args[0]).(type) {
	case *runtime.RealTensor:
		return &runtime.Number{Value: float64(len(v.Data))}, nil
	case *runtime.ComplexTensor:
		return &runtime.Number{Value: float64(len(v.Data))}, nil
	case *runtime.GenericVector:
		return &runtime.Number{Value: float64(len(v.Elements))}, nil
	case *runtime.String:
		return &runtime.Number{Value: float64(len([]rune(v.Value)))}, nil
	case *runtime.Record:
		return &runtime.Number{Value: float64(v.Len())}, nil
	default:
		return nil, runtime.NewTypeError("a tensor, vector, string or record", args[0], "len")
	}
}

// rangeBuiltin returns a generator: range(stop), range(start, stop) or
// range(start, stop, step). The interval is half-open.
func rangeBuiltin(args []runtime.Value) (runtime.Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, runtime.NewArityError("range", 3, len(args))
	}
	bounds, err := realArguments("range", args)
	if err != nil {
		return nil, err
	}
	start, stop, step := 0.0, 0.0, 1.0
	switch len(bounds) {
	case 1:
		stop = bounds[0]
	case 2:
		start, stop = bounds[0], bounds[1]
	case 3:
		start, stop, step = bounds[0], bounds[1], bounds[2]
	}
	if step == 0 {
		return nil, runtime.NewArithmeticError("range: step must be nonzero")
	}

	current := start
	return runtime.NewGenerator(func() (runtime.Value, bool) {
		if (step > 0 && current >= stop) || (step < 0 && current <= stop) {
			return nil, false
		}
		v := &runtime.Number{Value: current}
		current += step
		return v, true
	}), nil
}

func aggregate(name string, init float64, fold func(acc, x float64) float64) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		values, err := realArguments(name, args)
		if err != nil {
			return nil, err
		}
		acc := init
		for _, x := range values {
			acc = fold(acc, x)
		}
		return &runtime.Number{Value: acc}, nil
	}
}

func meanBuiltin(args []runtime.Value) (runtime.Value, error) {
	values, err := realArguments("mean", args)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, runtime.NewArithmeticError("mean of an empty collection")
	}
	sum := 0.0
	for _, x := range values {
		sum += x
	}
	return &runtime.Number{Value: sum / float64(len(values))}, nil
}

func dotBuiltin(args []runtime.Value) (runtime.Value, error) {
	a, okA := runtime.Deref(args[0]).(*runtime.RealTensor)
	b, okB := runtime.Deref(args[1]).(*runtime.RealTensor)
	if !okA || !okB || a.Rank() != 1 || b.Rank() != 1 {
		return nil, runtime.NewTypeError("two rank-1 real tensors", args[0], "dot")
	}
	if len(a.Data) != len(b.Data) {
		return nil, runtime.NewTypeError("tensors of identical shape", args[1], "dot")
	}
	sum := 0.0
	for n := range a.Data {
		sum += a.Data[n] * b.Data[n]
	}
	return &runtime.Number{Value: sum}, nil
}

func asInt(v runtime.Value) (int, bool) {
	x, ok := runtime.AsNumber(v)
	if !ok || x != math.Trunc(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return int(x), true
}

func intArguments(name string, args []runtime.Value) ([]int, error) {
	out := make([]int, len(args))
	for n, arg := range args {
		d, ok := asInt(arg)
		if !ok || d < 0 {
			return nil, runtime.NewTypeError("non-negative integer dimensions", arg, name)
		}
		out[n] = d
	}
	return out, nil
}
