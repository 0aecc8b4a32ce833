package interp

import (
	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// registerSpecialForms installs the lazy-argument handlers and marks their
// names in the registry so introspection sees one function table.
func (i *Interpreter) registerSpecialForms() {
	forms := map[string]specialFormFn{
		"if":        evalIf,
		"piecewise": evalPiecewise,
		"map":       evalMap,
		"filter":    evalFilter,
		"reduce":    evalReduce,
		"pipe":      evalPipe,
		"any":       evalAny,
		"all":       evalAll,
		"find":      evalFind,
		"findIndex": evalFindIndex,
		"count":     evalCount,
		"diff":      evalDiff,
		"integral":  evalIntegral,
		"solve":     evalSolve,
		"newton":    evalNewton,
	}
	for name, fn := range forms {
		i.specialForms[name] = fn
		i.registry.MarkSpecialForm(name)
	}
}

// evalIf evaluates only the selected branch. A two-argument form returns
// Number(0) when the condition is false.
func evalIf(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, runtime.NewArityError("if", 3, len(args))
	}
	cond, err := i.Eval(args[0])
	if err != nil {
		return nil, err
	}
	b, ok := runtime.Deref(cond).(*runtime.Boolean)
	if !ok {
		return nil, runtime.NewTypeError("BOOLEAN", cond, "if condition")
	}
	if b.Value {
		return i.Eval(args[1])
	}
	if len(args) == 3 {
		return i.Eval(args[2])
	}
	return &runtime.Number{Value: 0}, nil
}

// evalPiecewise scans [predicate, value] pairs in order and evaluates the
// first value whose predicate holds; a trailing non-pair argument is the
// default. Predicates and values must be literal pairs so unselected
// branches stay unevaluated.
func evalPiecewise(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, runtime.NewArityError("piecewise", 1, 0)
	}
	for idx, arg := range args {
		pair, isPair := arg.(*ast.VectorLiteral)
		if isPair && len(pair.Elements) == 2 {
			pred, err := i.Eval(pair.Elements[0])
			if err != nil {
				return nil, err
			}
			b, ok := runtime.Deref(pred).(*runtime.Boolean)
			if !ok {
				return nil, runtime.NewTypeError("BOOLEAN", pred, "piecewise predicate")
			}
			if b.Value {
				return i.Eval(pair.Elements[1])
			}
			continue
		}
		if idx == len(args)-1 {
			// Default branch.
			return i.Eval(arg)
		}
		return nil, runtime.NewTypeError("a [predicate, value] pair", nil, "piecewise")
	}
	return nil, runtime.NewArithmeticError("piecewise: no branch matched and no default given")
}

// evalCallable evaluates a special form's function argument once. The
// result must be callable.
func (i *Interpreter) evalCallable(expr ast.Expression, context string) (runtime.Value, error) {
	v, err := i.Eval(expr)
	if err != nil {
		return nil, err
	}
	v = runtime.Deref(v)
	switch v.(type) {
	case *runtime.Function, *runtime.Builtin:
		return v, nil
	}
	return nil, runtime.NewTypeError("FUNCTION", v, context)
}

// sequence materializes an iterable argument for the collection forms:
// tensors iterate row-major, vectors in order, generators to exhaustion.
func (i *Interpreter) sequence(expr ast.Expression, context string) ([]runtime.Value, runtime.Value, error) {
	v, err := i.Eval(expr)
	if err != nil {
		return nil, nil, err
	}
	v = runtime.Deref(v)
	elements, err := elementsOf(v, context)
	if err != nil {
		return nil, nil, err
	}
	return elements, v, nil
}

func elementsOf(v runtime.Value, context string) ([]runtime.Value, error) {
	switch src := v.(type) {
	case *runtime.RealTensor:
		elements := make([]runtime.Value, len(src.Data))
		for n, x := range src.Data {
			elements[n] = &runtime.Number{Value: x}
		}
		return elements, nil
	case *runtime.ComplexTensor:
		elements := make([]runtime.Value, len(src.Data))
		for n, x := range src.Data {
			elements[n] = &runtime.Complex{Value: x}
		}
		return elements, nil
	case *runtime.GenericVector:
		return append([]runtime.Value(nil), src.Elements...), nil
	case *runtime.Generator:
		var elements []runtime.Value
		for {
			next, ok := src.Next()
			if !ok {
				return elements, nil
			}
			elements = append(elements, next)
		}
	default:
		return nil, runtime.NewTypeError("an iterable (tensor, vector or generator)", v, context)
	}
}

// rebuildLike rebuilds a mapped result in the same container family as the
// source: tensors keep their shape when every result stays numeric,
// otherwise the classification rules decide.
func rebuildLike(source runtime.Value, results []runtime.Value) (runtime.Value, error) {
	if t, ok := source.(*runtime.RealTensor); ok && len(t.Shape) > 1 {
		if v, err := reshapeIfNumeric(results, t.Shape); v != nil || err != nil {
			return v, err
		}
	}
	if t, ok := source.(*runtime.ComplexTensor); ok && len(t.Shape) > 1 {
		if v, err := reshapeIfNumeric(results, t.Shape); v != nil || err != nil {
			return v, err
		}
	}
	return MakeVector(results)
}

func reshapeIfNumeric(results []runtime.Value, shape []int) (runtime.Value, error) {
	allReal, allNumeric := true, true
	for _, r := range results {
		switch r.(type) {
		case *runtime.Number:
		case *runtime.Complex:
			allReal = false
		default:
			allNumeric = false
		}
	}
	if !allNumeric {
		return nil, nil
	}
	if allReal {
		data := make([]float64, len(results))
		for n, r := range results {
			data[n] = r.(*runtime.Number).Value
		}
		return runtime.NewRealTensor(data, append([]int(nil), shape...))
	}
	data := make([]complex128, len(results))
	for n, r := range results {
		c, _ := runtime.AsComplex(r)
		data[n] = c
	}
	return runtime.NewComplexTensor(data, append([]int(nil), shape...))
}

func evalMap(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewArityError("map", 2, len(args))
	}
	fn, err := i.evalCallable(args[0], "map")
	if err != nil {
		return nil, err
	}
	elements, source, err := i.sequence(args[1], "map")
	if err != nil {
		return nil, err
	}
	results := make([]runtime.Value, len(elements))
	for n, el := range elements {
		r, err := i.Apply(fn, []runtime.Value{el})
		if err != nil {
			return nil, err
		}
		results[n] = runtime.Deref(r)
	}
	return rebuildLike(source, results)
}

func evalFilter(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewArityError("filter", 2, len(args))
	}
	fn, err := i.evalCallable(args[0], "filter")
	if err != nil {
		return nil, err
	}
	elements, _, err := i.sequence(args[1], "filter")
	if err != nil {
		return nil, err
	}
	var kept []runtime.Value
	for _, el := range elements {
		keep, err := i.applyPredicate(fn, el, "filter")
		if err != nil {
			return nil, err
		}
		if keep {
			kept = append(kept, el)
		}
	}
	return MakeVector(kept)
}

func evalReduce(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 3 {
		return nil, runtime.NewArityError("reduce", 3, len(args))
	}
	fn, err := i.evalCallable(args[0], "reduce")
	if err != nil {
		return nil, err
	}
	acc, err := i.Eval(args[1])
	if err != nil {
		return nil, err
	}
	acc = runtime.Deref(acc)
	elements, _, err := i.sequence(args[2], "reduce")
	if err != nil {
		return nil, err
	}
	for _, el := range elements {
		acc, err = i.Apply(fn, []runtime.Value{acc, el})
		if err != nil {
			return nil, err
		}
		acc = runtime.Deref(acc)
	}
	return acc, nil
}

// evalPipe threads a value through a chain of unary functions.
func evalPipe(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) < 1 {
		return nil, runtime.NewArityError("pipe", 1, 0)
	}
	value, err := i.Eval(args[0])
	if err != nil {
		return nil, err
	}
	value = runtime.Deref(value)
	for _, stage := range args[1:] {
		fn, err := i.evalCallable(stage, "pipe")
		if err != nil {
			return nil, err
		}
		value, err = i.Apply(fn, []runtime.Value{value})
		if err != nil {
			return nil, err
		}
		value = runtime.Deref(value)
	}
	return value, nil
}

func (i *Interpreter) applyPredicate(fn runtime.Value, el runtime.Value, context string) (bool, error) {
	r, err := i.Apply(fn, []runtime.Value{el})
	if err != nil {
		return false, err
	}
	b, ok := runtime.Deref(r).(*runtime.Boolean)
	if !ok {
		return false, runtime.NewTypeError("BOOLEAN", r, context+" predicate")
	}
	return b.Value, nil
}

func evalAny(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	return evalQuantifier(i, args, "any", false)
}

func evalAll(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	return evalQuantifier(i, args, "all", true)
}

// evalQuantifier short-circuits: any stops at the first true, all at the
// first false.
func evalQuantifier(i *Interpreter, args []ast.Expression, name string, wantAll bool) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewArityError(name, 2, len(args))
	}
	fn, err := i.evalCallable(args[0], name)
	if err != nil {
		return nil, err
	}
	elements, _, err := i.sequence(args[1], name)
	if err != nil {
		return nil, err
	}
	for _, el := range elements {
		ok, err := i.applyPredicate(fn, el, name)
		if err != nil {
			return nil, err
		}
		if wantAll && !ok {
			return &runtime.Boolean{Value: false}, nil
		}
		if !wantAll && ok {
			return &runtime.Boolean{Value: true}, nil
		}
	}
	return &runtime.Boolean{Value: wantAll}, nil
}

// evalFind returns the first matching element; no match is an IndexError.
func evalFind(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewArityError("find", 2, len(args))
	}
	fn, err := i.evalCallable(args[0], "find")
	if err != nil {
		return nil, err
	}
	elements, _, err := i.sequence(args[1], "find")
	if err != nil {
		return nil, err
	}
	for _, el := range elements {
		ok, err := i.applyPredicate(fn, el, "find")
		if err != nil {
			return nil, err
		}
		if ok {
			return el, nil
		}
	}
	return nil, runtime.NewNoMatchError("find")
}

// evalFindIndex returns the index of the first match, or -1.
func evalFindIndex(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewArityError("findIndex", 2, len(args))
	}
	fn, err := i.evalCallable(args[0], "findIndex")
	if err != nil {
		return nil, err
	}
	elements, _, err := i.sequence(args[1], "findIndex")
	if err != nil {
		return nil, err
	}
	for n, el := range elements {
		ok, err := i.applyPredicate(fn, el, "findIndex")
		if err != nil {
			return nil, err
		}
		if ok {
			return &runtime.Number{Value: float64(n)}, nil
		}
	}
	return &runtime.Number{Value: -1}, nil
}

func evalCount(i *Interpreter, args []ast.Expression) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewArityError("count", 2, len(args))
	}
	fn, err := i.evalCallable(args[0], "count")
	if err != nil {
		return nil, err
	}
	elements, _, err := i.sequence(args[1], "count")
	if err != nil {
		return nil, err
	}
	count := 0
	for _, el := range elements {
		ok, err := i.applyPredicate(fn, el, "count")
		if err != nil {
			return nil, err
		}
		if ok {
			count++
		}
	}
	return &runtime.Number{Value: float64(count)}, nil
}
