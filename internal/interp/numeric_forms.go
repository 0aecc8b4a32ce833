package interp

import (
	"math"

	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// The numerical-analysis family. Each form evaluates its function argument
// once and then applies it repeatedly, which is why these are special
// forms rather than ordinary builtins.

const (
	diffStep      = 1e-6
	solveTol      = 1e-12
	solveMaxIter  = 200
	newtonTol     = 1e-12
	newtonMaxIter = 100
	simpsonPanels = 1000
)

// callReal applies fn to a real argument and requires a real result.
func (i *Interpreter) callReal(fn runtime.Value, x float64, context string) (float64, error) {
	r, err := i.Apply(fn, []runtime.Value{&runtime.Number{Value: x}})
	if err != nil {
		return 0, err
	}
	v, ok := runtime.AsNumber(runtime.Deref(r))
	if !ok {
		return 0, runtime.NewTypeError("a real-valued function", r, context)
	}
	return v, nil
}

func (i *Interpreter) evalRealArg(expr ast.Expression, context string) (float64, error) {
	v, err := i.Eval(expr)
	if err != nil {
		return 0, err
	}
	f, ok := runtime.AsNumber(runtime.Deref(v))
	if !ok {
		return 0, runtime.NewTypeError("a real number", v, context)
	}
	return f, nil
}

// evalDiff computes a central-difference numerical derivative f'(x).
func evalDiff(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewArityError("diff", 2, len(args))
	}
	fn, err := i.evalCallable(args[0], "diff")
	if err != nil {
		return nil, err
	}
	x, err := i.evalRealArg(args[1], "diff")
	if err != nil {
		return nil, err
	}
	// Scale the step with |x| so large arguments keep relative accuracy.
	h := diffStep * math.Max(1, math.Abs(x))
	hi, err := i.callReal(fn, x+h, "diff")
	if err != nil {
		return nil, err
	}
	lo, err := i.callReal(fn, x-h, "diff")
	if err != nil {
		return nil, err
	}
	return &runtime.Number{Value: (hi - lo) / (2 * h)}, nil
}

// evalIntegral integrates f over [a, b] with composite Simpson's rule.
func evalIntegral(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 3 {
		return nil, runtime.NewArityError("integral", 3, len(args))
	}
	fn, err := i.evalCallable(args[0], "integral")
	if err != nil {
		return nil, err
	}
	a, err := i.evalRealArg(args[1], "integral")
	if err != nil {
		return nil, err
	}
	b, err := i.evalRealArg(args[2], "integral")
	if err != nil {
		return nil, err
	}
	if a == b {
		return &runtime.Number{Value: 0}, nil
	}

	h := (b - a) / simpsonPanels
	sum, err := i.callReal(fn, a, "integral")
	if err != nil {
		return nil, err
	}
	fb, err := i.callReal(fn, b, "integral")
	if err != nil {
		return nil, err
	}
	sum += fb
	for n := 1; n < simpsonPanels; n++ {
		fx, err := i.callReal(fn, a+float64(n)*h, "integral")
		if err != nil {
			return nil, err
		}
		if n%2 == 1 {
			sum += 4 * fx
		} else {
			sum += 2 * fx
		}
	}
	return &runtime.Number{Value: sum * h / 3}, nil
}

// evalSolve finds a root of f in [a, b] by bisection. The endpoints must
// bracket a sign change.
func evalSolve(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 3 {
		return nil, runtime.NewArityError("solve", 3, len(args))
	}
	fn, err := i.evalCallable(args[0], "solve")
	if err != nil {
		return nil, err
	}
	a, err := i.evalRealArg(args[1], "solve")
	if err != nil {
		return nil, err
	}
	b, err := i.evalRealArg(args[2], "solve")
	if err != nil {
		return nil, err
	}

	fa, err := i.callReal(fn, a, "solve")
	if err != nil {
		return nil, err
	}
	if fa == 0 {
		return &runtime.Number{Value: a}, nil
	}
	fb, err := i.callReal(fn, b, "solve")
	if err != nil {
		return nil, err
	}
	if fb == 0 {
		return &runtime.Number{Value: b}, nil
	}
	if fa*fb > 0 {
		return nil, runtime.NewArithmeticError("solve: no sign change over the interval")
	}

	for n := 0; n < solveMaxIter; n++ {
		mid := (a + b) / 2
		fm, err := i.callReal(fn, mid, "solve")
		if err != nil {
			return nil, err
		}
		if fm == 0 || (b-a)/2 < solveTol {
			return &runtime.Number{Value: mid}, nil
		}
		if fa*fm < 0 {
			b = mid
		} else {
			a, fa = mid, fm
		}
	}
	return &runtime.Number{Value: (a + b) / 2}, nil
}

// evalNewton runs Newton's method from x0 with a numerical derivative.
func evalNewton(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewArityError("newton", 2, len(args))
	}
	fn, err := i.evalCallable(args[0], "newton")
	if err != nil {
		return nil, err
	}
	x, err := i.evalRealArg(args[1], "newton")
	if err != nil {
		return nil, err
	}

	for n := 0; n < newtonMaxIter; n++ {
		fx, err := i.callReal(fn, x, "newton")
		if err != nil {
			return nil, err
		}
		if math.Abs(fx) < newtonTol {
			return &runtime.Number{Value: x}, nil
		}
		h := diffStep * math.Max(1, math.Abs(x))
		hi, err := i.callReal(fn, x+h, "newton")
		if err != nil {
			return nil, err
		}
		lo, err := i.callReal(fn, x-h, "newton")
		if err != nil {
			return nil, err
		}
		dfx := (hi - lo) / (2 * h)
		if dfx == 0 {
			return nil, runtime.NewArithmeticError("newton: derivative vanished")
		}
		next := x - fx/dfx
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return nil, runtime.NewArithmeticError("newton: iteration diverged")
		}
		x = next
	}
	return nil, runtime.NewArithmeticError("newton: did not converge")
}
