package builtins

import (
	"math"
	"math/cmplx"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

// unaryNumeric builds a builtin that applies realFn to real scalars and
// tensors elementwise, and cplxFn to complex ones. domainErr, when
// non-empty, is raised for real arguments outside realOK instead of
// silently producing NaN.
func unaryNumeric(name string, realFn func(float64) float64, cplxFn func(complex128) complex128, realOK func(float64) bool, domainErr string) func([]runtime.Value) (runtime.Value, error) {
	applyReal := func(x float64) (float64, error) {
		if realOK != nil && !realOK(x) {
			return 0, runtime.NewArithmeticError(name + ": " + domainErr)
		}
		return realFn(x), nil
	}

	return func(args []runtime.Value) (runtime.Value, error) {
		switch v := runtime.Deref(args[0]).(type) {
		case *runtime.Number:
			y, err := applyReal(v.Value)
			if err != nil {
				return nil, err
			}
			return &runtime.Number{Value: y}, nil
		case *runtime.Complex:
			if cplxFn == nil {
				return nil, runtime.NewTypeError("a real number", v, name)
			}
			return &runtime.Complex{Value: cplxFn(v.Value)}, nil
		case *runtime.RealTensor:
			data := make([]float64, len(v.Data))
			for n, x := range v.Data {
				y, err := applyReal(x)
				if err != nil {
					return nil, err
				}
				data[n] = y
			}
			return runtime.NewRealTensor(data, append([]int(nil), v.Shape...))
		case *runtime.ComplexTensor:
			if cplxFn == nil {
				return nil, runtime.NewTypeError("a real tensor", v, name)
			}
			data := make([]complex128, len(v.Data))
			for n, x := range v.Data {
				data[n] = cplxFn(x)
			}
			return runtime.NewComplexTensor(data, append([]int(nil), v.Shape...))
		default:
			return nil, runtime.NewTypeError("a numeric value", args[0], name)
		}
	}
}

func registerMath(r *Registry) {
	type entry struct {
		name      string
		realFn    func(float64) float64
		cplxFn    func(complex128) complex128
		realOK    func(float64) bool
		domainErr string
		desc      string
	}
	entries := []entry{
		{"sin", math.Sin, cmplx.Sin, nil, "", "sine"},
		{"cos", math.Cos, cmplx.Cos, nil, "", "cosine"},
		{"tan", math.Tan, cmplx.Tan, nil, "", "tangent"},
		{"asin", math.Asin, cmplx.Asin, func(x float64) bool { return x >= -1 && x <= 1 }, "argument outside [-1, 1]", "inverse sine"},
		{"acos", math.Acos, cmplx.Acos, func(x float64) bool { return x >= -1 && x <= 1 }, "argument outside [-1, 1]", "inverse cosine"},
		{"atan", math.Atan, cmplx.Atan, nil, "", "inverse tangent"},
		{"sinh", math.Sinh, cmplx.Sinh, nil, "", "hyperbolic sine"},
		{"cosh", math.Cosh, cmplx.Cosh, nil, "", "hyperbolic cosine"},
		{"tanh", math.Tanh, cmplx.Tanh, nil, "", "hyperbolic tangent"},
		{"exp", math.Exp, cmplx.Exp, nil, "", "natural exponential"},
		{"ln", math.Log, cmplx.Log, func(x float64) bool { return x > 0 }, "logarithm of a non-positive number", "natural logarithm"},
		{"log2", math.Log2, nil, func(x float64) bool { return x > 0 }, "logarithm of a non-positive number", "base-2 logarithm"},
		{"log10", math.Log10, nil, func(x float64) bool { return x > 0 }, "logarithm of a non-positive number", "base-10 logarithm"},
		{"sqrt", math.Sqrt, cmplx.Sqrt, func(x float64) bool { return x >= 0 }, "square root of a negative number", "square root"},
		{"abs", math.Abs, nil, nil, "", "absolute value"},
		{"floor", math.Floor, nil, nil, "", "round toward negative infinity"},
		{"ceil", math.Ceil, nil, nil, "", "round toward positive infinity"},
		{"round", math.Round, nil, nil, "", "round half away from zero"},
		{"sign", sign, nil, nil, "", "sign of a number"},
	}
	for _, e := range entries {
		r.Register(e.name, 1, CategoryMath, e.desc, unaryNumeric(e.name, e.realFn, e.cplxFn, e.realOK, e.domainErr))
	}

	// abs on a complex argument is its magnitude, so it gets a dedicated
	// handler instead of the generic elementwise one.
	r.Register("abs", 1, CategoryMath, "absolute value or complex magnitude", absBuiltin)

	r.Register("min", runtime.Variadic, CategoryMath, "minimum of the arguments", minMax("min", math.Min))
	r.Register("max", runtime.Variadic, CategoryMath, "maximum of the arguments", minMax("max", math.Max))
	r.Register("atan2", 2, CategoryMath, "two-argument inverse tangent", atan2Builtin)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func absBuiltin(args []runtime.Value) (runtime.Value, error) {
	switch v := runtime.Deref(args[0]).(type) {
	case *runtime.Number:
		return &runtime.Number{Value: math.Abs(v.Value)}, nil
	case *runtime.Complex:
		return &runtime.Number{Value: cmplx.Abs(v.Value)}, nil
	case *runtime.RealTensor:
		data := make([]float64, len(v.Data))
		for n, x := range v.Data {
			data[n] = math.Abs(x)
		}
		return runtime.NewRealTensor(data, append([]int(nil), v.Shape...))
	case *runtime.ComplexTensor:
		data := make([]float64, len(v.Data))
		for n, x := range v.Data {
			data[n] = cmplx.Abs(x)
		}
		return runtime.NewRealTensor(data, append([]int(nil), v.Shape...))
	default:
		return nil, runtime.NewTypeError("a numeric value", args[0], "abs")
	}
}

// minMax folds the arguments. A single tensor or vector argument
// aggregates over its elements.
func minMax(name string, pick func(float64, float64) float64) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		values, err := realArguments(name, args)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, runtime.NewArityError(name, 1, 0)
		}
		acc := values[0]
		for _, x := range values[1:] {
			acc = pick(acc, x)
		}
		return &runtime.Number{Value: acc}, nil
	}
}

func atan2Builtin(args []runtime.Value) (runtime.Value, error) {
	y, ok := runtime.AsNumber(args[0])
	if !ok {
		return nil, runtime.NewTypeError("a real number", args[0], "atan2")
	}
	x, ok := runtime.AsNumber(args[1])
	if !ok {
		return nil, runtime.NewTypeError("a real number", args[1], "atan2")
	}
	return &runtime.Number{Value: math.Atan2(y, x)}, nil
}

// realArguments flattens scalar and rank-any tensor arguments into one
// real slice, failing on anything non-real.
func realArguments(name string, args []runtime.Value) ([]float64, error) {
	var values []float64
	for _, arg := range args {
		switch v := runtime.Deref(arg).(type) {
		case *runtime.Number:
			values = append(values, v.Value)
		case *runtime.RealTensor:
			values = append(values, v.Data...)
		case *runtime.GenericVector:
			for _, el := range v.Elements {
				x, ok := runtime.AsNumber(el)
				if !ok {
					return nil, runtime.NewTypeError("real numbers", el, name)
				}
				values = append(values, x)
			}
		default:
			return nil, runtime.NewTypeError("real numbers", arg, name)
		}
	}
	return values, nil
}
