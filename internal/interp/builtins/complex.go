package builtins

import (
	"math/cmplx"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

func registerComplex(r *Registry) {
	r.Register("re", 1, CategoryComplex, "real part", complexPart("re", func(z complex128) float64 { return real(z) }))
	r.Register("im", 1, CategoryComplex, "imaginary part", complexPart("im", func(z complex128) float64 { return imag(z) }))
	r.Register("arg", 1, CategoryComplex, "phase angle", complexPart("arg", func(z complex128) float64 { return cmplx.Phase(z) }))
	r.Register("conj", 1, CategoryComplex, "complex conjugate", conjBuiltin)
	r.Register("complex", 2, CategoryComplex, "complex number from real and imaginary parts", complexBuiltin)
}

func complexPart(name string, part func(complex128) float64) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		switch v := runtime.Deref(args[0]).(type) {
		case *runtime.Number:
			return &runtime.Number{Value: part(complex(v.Value, 0))}, nil
		case *runtime.Complex:
			return &runtime.Number{Value: part(v.Value)}, nil
		case *runtime.ComplexTensor:
			data := make([]float64, len(v.Data))
			for n, z := range v.Data {
				data[n] = part(z)
			}
			return runtime.NewRealTensor(data, append([]int(nil), v.Shape...))
		case *runtime.RealTensor:
			data := make([]float64, len(v.Data))
			for n, x := range v.Data {
				data[n] = part(complex(x, 0))
			}
			return runtime.NewRealTensor(data, append([]int(nil), v.Shape...))
		default:
			return nil, runtime.NewTypeError("a numeric value", args[0], name)
		}
	}
}

func conjBuiltin(args []runtime.Value) (runtime.Value, error) {
	switch v := runtime.Deref(args[0]).(type) {
	case *runtime.Number:
		return v, nil
	case *runtime.Complex:
		return &runtime.Complex{Value: cmplx.Conj(v.Value)}, nil
	case *runtime.RealTensor:
		return v, nil
	case *runtime.ComplexTensor:
		data := make([]complex128, len(v.Data))
		for n, z := range v.Data {
			data[n] = cmplx.Conj(z)
		}
		return runtime.NewComplexTensor(data, append([]int(nil), v.Shape...))
	default:
		return nil, runtime.NewTypeError("a numeric value", args[0], "conj")
	}
}

func complexBuiltin(args []runtime.Value) (runtime.Value, error) {
	re, ok := runtime.AsNumber(args[0])
	if !ok {
		return nil, runtime.NewTypeError("a real number", args[0], "complex")
	}
	im, ok := runtime.AsNumber(args[1])
	if !ok {
		return nil, runtime.NewTypeError("a real number", args[1], "complex")
	}
	return &runtime.Complex{Value: complex(re, im)}, nil
}
