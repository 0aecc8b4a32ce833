package builtins

import (
	"math"
	"math/cmplx"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

// FFT computes the radix-2 decimation-in-time transform of a
// power-of-two-length sequence. Shared with the host bridge's fft_fast
// path.
func FFT(input []complex128) ([]complex128, error) {
	n := len(input)
	if n == 0 {
		return nil, nil
	}
	if n&(n-1) != 0 {
		return nil, runtime.NewArithmeticError("fft: length must be a power of two")
	}
	out := append([]complex128(nil), input...)
	fftInPlace(out, false)
	return out, nil
}

// IFFT is the inverse transform, normalized by 1/n.
func IFFT(input []complex128) ([]complex128, error) {
	n := len(input)
	if n == 0 {
		return nil, nil
	}
	if n&(n-1) != 0 {
		return nil, runtime.NewArithmeticError("ifft: length must be a power of two")
	}
	out := append([]complex128(nil), input...)
	fftInPlace(out, true)
	scale := complex(1/float64(n), 0)
	for k := range out {
		out[k] *= scale
	}
	return out, nil
}

// fftInPlace is iterative Cooley-Tukey: bit-reversal permutation followed
// by butterfly passes.
func fftInPlace(data []complex128, inverse bool) {
	n := len(data)
	for j, k := 0, 0; j < n; j++ {
		if j < k {
			data[j], data[k] = data[k], data[j]
		}
		m := n >> 1
		for m >= 1 && k >= m {
			k -= m
			m >>= 1
		}
		k += m
	}

	for width := 2; width <= n; width <<= 1 {
		angle := -2 * math.Pi / float64(width)
		if inverse {
			angle = -angle
		}
		wStep := cmplx.Rect(1, angle)
		for start := 0; start < n; start += width {
			w := complex(1, 0)
			half := width / 2
			for k := 0; k < half; k++ {
				a := data[start+k]
				b := data[start+k+half] * w
				data[start+k] = a + b
				data[start+k+half] = a - b
				w *= wStep
			}
		}
	}
}

func toComplexSlice(name string, v runtime.Value) ([]complex128, error) {
	switch t := runtime.Deref(v).(type) {
	case *runtime.RealTensor:
		if t.Rank() != 1 {
			return nil, runtime.NewTypeError("a rank-1 tensor", v, name)
		}
		out := make([]complex128, len(t.Data))
		for n, x := range t.Data {
			out[n] = complex(x, 0)
		}
		return out, nil
	case *runtime.ComplexTensor:
		if t.Rank() != 1 {
			return nil, runtime.NewTypeError("a rank-1 tensor", v, name)
		}
		return append([]complex128(nil), t.Data...), nil
	default:
		return nil, runtime.NewTypeError("a rank-1 tensor", v, name)
	}
}

func fftBuiltin(args []runtime.Value) (runtime.Value, error) {
	input, err := toComplexSlice("fft", args[0])
	if err != nil {
		return nil, err
	}
	out, err := FFT(input)
	if err != nil {
		return nil, err
	}
	return runtime.NewComplexTensor(out, []int{len(out)})
}

func ifftBuiltin(args []runtime.Value) (runtime.Value, error) {
	input, err := toComplexSlice("ifft", args[0])
	if err != nil {
		return nil, err
	}
	out, err := IFFT(input)
	if err != nil {
		return nil, err
	}
	return runtime.NewComplexTensor(out, []int{len(out)})
}
