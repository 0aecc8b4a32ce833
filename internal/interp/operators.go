package interp

import (
	"math"
	"math/cmplx"

	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

func (i *Interpreter) evalPrefixExpression(node *ast.PrefixExpression) (runtime.Value, error) {
	operand, err := i.Eval(node.Right)
	if err != nil {
		return nil, err
	}
	operand = runtime.Deref(operand)

	switch node.Operator {
	case "-":
		switch v := operand.(type) {
		case *runtime.Number:
			return &runtime.Number{Value: -v.Value}, nil
		case *runtime.Complex:
			return &runtime.Complex{Value: -v.Value}, nil
		case *runtime.RealTensor:
			data := make([]float64, len(v.Data))
			for n, x := range v.Data {
				data[n] = -x
			}
			return runtime.NewRealTensor(data, append([]int(nil), v.Shape...))
		case *runtime.ComplexTensor:
			data := make([]complex128, len(v.Data))
			for n, x := range v.Data {
				data[n] = -x
			}
			return runtime.NewComplexTensor(data, append([]int(nil), v.Shape...))
		}
		return nil, runtime.NewTypeError("a numeric operand", operand, "unary -")
	case "!":
		if b, ok := operand.(*runtime.Boolean); ok {
			return &runtime.Boolean{Value: !b.Value}, nil
		}
		return nil, runtime.NewTypeError("BOOLEAN", operand, "unary !")
	default:
		return nil, runtime.NewInvariantError("unknown prefix operator " + node.Operator)
	}
}

func (i *Interpreter) evalInfixExpression(node *ast.InfixExpression) (runtime.Value, error) {
	// Logical operators short-circuit: the right operand is evaluated only
	// when the left one does not decide the result.
	if node.Operator == "&&" || node.Operator == "||" {
		return i.evalLogical(node)
	}

	left, err := i.Eval(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.Eval(node.Right)
	if err != nil {
		return nil, err
	}
	return applyBinary(node.Operator, runtime.Deref(left), runtime.Deref(right))
}

func (i *Interpreter) evalLogical(node *ast.InfixExpression) (runtime.Value, error) {
	left, err := i.Eval(node.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := runtime.Deref(left).(*runtime.Boolean)
	if !ok {
		return nil, runtime.NewTypeError("BOOLEAN", left, node.Operator)
	}
	if node.Operator == "&&" && !lb.Value {
		return &runtime.Boolean{Value: false}, nil
	}
	if node.Operator == "||" && lb.Value {
		return &runtime.Boolean{Value: true}, nil
	}
	right, err := i.Eval(node.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := runtime.Deref(right).(*runtime.Boolean)
	if !ok {
		return nil, runtime.NewTypeError("BOOLEAN", right, node.Operator)
	}
	return &runtime.Boolean{Value: rb.Value}, nil
}

// applyBinary dispatches a strict binary operator over the numeric tower:
// scalar⊕scalar with promotion, tensor⊕scalar broadcast, tensor⊕tensor
// elementwise on identical shapes, and string concatenation for +.
func applyBinary(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		return &runtime.Boolean{Value: runtime.Equal(left, right)}, nil
	case "!=":
		return &runtime.Boolean{Value: !runtime.Equal(left, right)}, nil
	case "<", "<=", ">", ">=":
		return applyComparison(op, left, right)
	}

	// String concatenation. Mixing string with non-string is a TypeError.
	if ls, ok := left.(*runtime.String); ok {
		if rs, ok := right.(*runtime.String); ok && op == "+" {
			return &runtime.String{Value: ls.Value + rs.Value}, nil
		}
		return nil, runtime.NewTypeError("STRING", right, "string "+op)
	}
	if _, ok := right.(*runtime.String); ok {
		return nil, runtime.NewTypeError("STRING", left, "string "+op)
	}

	return applyArithmetic(op, left, right)
}

func applyComparison(op string, left, right runtime.Value) (runtime.Value, error) {
	// Scalar comparison is defined on real numbers only.
	if lf, ok := runtime.AsNumber(left); ok {
		if rf, ok := runtime.AsNumber(right); ok {
			return &runtime.Boolean{Value: compareReals(op, lf, rf)}, nil
		}
		if rt, ok := right.(*runtime.RealTensor); ok {
			return compareTensorScalar(op, rt, lf, true)
		}
		return nil, runtime.NewTypeError("a real number", right, "comparison "+op)
	}
	if lt, ok := left.(*runtime.RealTensor); ok {
		if rf, ok := runtime.AsNumber(right); ok {
			return compareTensorScalar(op, lt, rf, false)
		}
		rt, ok := right.(*runtime.RealTensor)
		if !ok {
			return nil, runtime.NewTypeError("a real number or real tensor", right, "comparison "+op)
		}
		if !runtime.SameShape(lt.Shape, rt.Shape) {
			return nil, runtime.NewTypeError("tensors of identical shape", right, "comparison "+op)
		}
		elements := make([]runtime.Value, len(lt.Data))
		for n := range lt.Data {
			elements[n] = &runtime.Boolean{Value: compareReals(op, lt.Data[n], rt.Data[n])}
		}
		return &runtime.GenericVector{Elements: elements}, nil
	}
	return nil, runtime.NewTypeError("a real number or real tensor", left, "comparison "+op)
}

// compareTensorScalar compares every tensor element against a scalar.
// scalarLeft marks the scalar as the left operand.
func compareTensorScalar(op string, t *runtime.RealTensor, scalar float64, scalarLeft bool) (runtime.Value, error) {
	elements := make([]runtime.Value, len(t.Data))
	for n, x := range t.Data {
		if scalarLeft {
			elements[n] = &runtime.Boolean{Value: compareReals(op, scalar, x)}
		} else {
			elements[n] = &runtime.Boolean{Value: compareReals(op, x, scalar)}
		}
	}
	return &runtime.GenericVector{Elements: elements}, nil
}

func compareReals(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

// scalarReal extracts a real scalar for arithmetic, promoting booleans one
// step up the tower (false=0, true=1).
func scalarReal(v runtime.Value) (float64, bool) {
	switch n := v.(type) {
	case *runtime.Number:
		return n.Value, true
	case *runtime.Boolean:
		if n.Value {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func scalarComplex(v runtime.Value) (complex128, bool) {
	if f, ok := scalarReal(v); ok {
		return complex(f, 0), true
	}
	if c, ok := v.(*runtime.Complex); ok {
		return c.Value, true
	}
	return 0, false
}

func isComplexValue(v runtime.Value) bool {
	switch v.(type) {
	case *runtime.Complex, *runtime.ComplexTensor:
		return true
	}
	return false
}

func applyArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	lt, leftTensor := asAnyTensor(left)
	rt, rightTensor := asAnyTensor(right)

	switch {
	case !leftTensor && !rightTensor:
		return arithScalars(op, left, right)
	case leftTensor && !rightTensor:
		s, ok := scalarComplex(right)
		if !ok {
			return nil, runtime.NewTypeError("a numeric operand", right, op)
		}
		return arithTensorScalar(op, lt, s, isComplexValue(right), false)
	case !leftTensor && rightTensor:
		s, ok := scalarComplex(left)
		if !ok {
			return nil, runtime.NewTypeError("a numeric operand", left, op)
		}
		return arithTensorScalar(op, rt, s, isComplexValue(left), true)
	default:
		return arithTensors(op, lt, rt)
	}
}

// anyTensor is the promotion-aware view of a tensor operand.
type anyTensor struct {
	real *runtime.RealTensor
	cplx *runtime.ComplexTensor
}

func asAnyTensor(v runtime.Value) (anyTensor, bool) {
	switch t := v.(type) {
	case *runtime.RealTensor:
		return anyTensor{real: t}, true
	case *runtime.ComplexTensor:
		return anyTensor{cplx: t}, true
	}
	return anyTensor{}, false
}

func (t anyTensor) shape() []int {
	if t.real != nil {
		return t.real.Shape
	}
	return t.cplx.Shape
}

func (t anyTensor) size() int {
	if t.real != nil {
		return len(t.real.Data)
	}
	return len(t.cplx.Data)
}

func (t anyTensor) isComplex() bool { return t.cplx != nil }

func (t anyTensor) complexAt(n int) complex128 {
	if t.real != nil {
		return complex(t.real.Data[n], 0)
	}
	return t.cplx.Data[n]
}

func arithScalars(op string, left, right runtime.Value) (runtime.Value, error) {
	if isComplexValue(left) || isComplexValue(right) {
		lc, ok := scalarComplex(left)
		if !ok {
			return nil, runtime.NewTypeError("a numeric operand", left, op)
		}
		rc, ok := scalarComplex(right)
		if !ok {
			return nil, runtime.NewTypeError("a numeric operand", right, op)
		}
		v, err := complexBinary(op, lc, rc)
		if err != nil {
			return nil, err
		}
		return &runtime.Complex{Value: v}, nil
	}

	lf, ok := scalarReal(left)
	if !ok {
		return nil, runtime.NewTypeError("a numeric operand", left, op)
	}
	rf, ok := scalarReal(right)
	if !ok {
		return nil, runtime.NewTypeError("a numeric operand", right, op)
	}
	v, err := realBinary(op, lf, rf)
	if err != nil {
		return nil, err
	}
	return &runtime.Number{Value: v}, nil
}

func arithTensorScalar(op string, t anyTensor, scalar complex128, scalarIsComplex, scalarLeft bool) (runtime.Value, error) {
	shape := append([]int(nil), t.shape()...)

	if t.isComplex() || scalarIsComplex {
		data := make([]complex128, t.size())
		for n := range data {
			a, b := t.complexAt(n), scalar
			if scalarLeft {
				a, b = b, a
			}
			v, err := complexBinary(op, a, b)
			if err != nil {
				return nil, err
			}
			data[n] = v
		}
		return runtime.NewComplexTensor(data, shape)
	}

	data := make([]float64, t.size())
	s := real(scalar)
	for n, x := range t.real.Data {
		a, b := x, s
		if scalarLeft {
			a, b = b, a
		}
		v, err := realBinary(op, a, b)
		if err != nil {
			return nil, err
		}
		data[n] = v
	}
	return runtime.NewRealTensor(data, shape)
}

// arithTensors is elementwise over identical shapes. Real meets complex by
// promoting the real tensor; full broadcasting is not part of this
// revision.
func arithTensors(op string, lt, rt anyTensor) (runtime.Value, error) {
	if !runtime.SameShape(lt.shape(), rt.shape()) {
		var offending runtime.Value
		if rt.real != nil {
			offending = rt.real
		} else {
			offending = rt.cplx
		}
		return nil, runtime.NewTypeError("tensors of identical shape", offending, op)
	}
	shape := append([]int(nil), lt.shape()...)

	if lt.isComplex() || rt.isComplex() {
		data := make([]complex128, lt.size())
		for n := range data {
			v, err := complexBinary(op, lt.complexAt(n), rt.complexAt(n))
			if err != nil {
				return nil, err
			}
			data[n] = v
		}
		return runtime.NewComplexTensor(data, shape)
	}

	data := make([]float64, lt.size())
	for n := range data {
		v, err := realBinary(op, lt.real.Data[n], rt.real.Data[n])
		if err != nil {
			return nil, err
		}
		data[n] = v
	}
	return runtime.NewRealTensor(data, shape)
}

// realBinary computes a real arithmetic operation. Division (and modulo)
// by zero is an ArithmeticError for reals.
func realBinary(op string, a, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, runtime.NewArithmeticError("division by zero")
		}
		return a / b, nil
	case "%":
		if b == 0 {
			return 0, runtime.NewArithmeticError("modulo by zero")
		}
		return math.Mod(a, b), nil
	case "^":
		return math.Pow(a, b), nil
	}
	return 0, runtime.NewInvariantError("unknown operator " + op)
}

// complexBinary computes a complex arithmetic operation. Complex division
// by zero follows standard mathematical behavior (infinities/NaN) rather
// than raising.
func complexBinary(op string, a, b complex128) (complex128, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		return a / b, nil
	case "^":
		// Small integer exponents use repeated multiplication so that
		// identities like i^2 == -1 hold exactly.
		if imag(b) == 0 && real(b) == math.Trunc(real(b)) && math.Abs(real(b)) <= 64 {
			return ipow(a, int(real(b))), nil
		}
		return cmplx.Pow(a, b), nil
	case "%":
		return 0, runtime.NewTypeError("real operands", &runtime.Complex{Value: a}, "%")
	}
	return 0, runtime.NewInvariantError("unknown operator " + op)
}

// ipow raises a complex base to an integer power by binary exponentiation.
func ipow(a complex128, n int) complex128 {
	if n < 0 {
		return 1 / ipow(a, -n)
	}
	result := complex128(1)
	for n > 0 {
		if n&1 == 1 {
			result *= a
		}
		a *= a
		n >>= 1
	}
	return result
}
