package interp

import (
	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// evalCallExpression dispatches a call. The order mirrors the language
// contract: the rec tail-call check first, then special forms by name,
// then ordinary application of whatever the callee evaluates to.
func (i *Interpreter) evalCallExpression(node *ast.CallExpression) (runtime.Value, error) {
	// rec(...) under the trampoline evaluates its arguments and returns
	// the marker instead of recursing.
	if _, isRec := node.Callee.(*ast.RecExpression); isRec {
		if i.tcoMode {
			args, err := i.evalArguments(node.Arguments)
			if err != nil {
				return nil, err
			}
			return &runtime.TailCall{Args: args}, nil
		}
		fn, err := i.evalRec()
		if err != nil {
			return nil, err
		}
		return i.applyValue(fn, node.Arguments)
	}

	if name, ok := node.Callee.(*ast.Identifier); ok {
		// Special forms are recognized by name before any lookup; they
		// receive the raw argument AST and evaluate it themselves.
		if handler, isSpecial := i.specialForms[name.Value]; isSpecial {
			return handler(i, node.Arguments)
		}
		if bound, inEnv := i.env.Get(name.Value); inEnv {
			return i.applyValue(runtime.Deref(bound), node.Arguments)
		}
		if b, isBuiltin := i.registry.Lookup(name.Value); isBuiltin {
			return i.applyValue(b, node.Arguments)
		}
		return nil, runtime.NewNameError(name.Value)
	}

	callee, err := i.Eval(node.Callee)
	if err != nil {
		return nil, err
	}
	return i.applyValue(callee, node.Arguments)
}

// applyValue evaluates arguments strictly left-to-right and applies a
// callable value.
func (i *Interpreter) applyValue(callee runtime.Value, argExprs []ast.Expression) (runtime.Value, error) {
	args, err := i.evalArguments(argExprs)
	if err != nil {
		return nil, err
	}
	return i.Apply(callee, args)
}

func (i *Interpreter) evalArguments(exprs []ast.Expression) ([]runtime.Value, error) {
	args := make([]runtime.Value, len(exprs))
	for n, expr := range exprs {
		v, err := i.Eval(expr)
		if err != nil {
			return nil, err
		}
		if err := checkNoTailCall(v); err != nil {
			return nil, err
		}
		args[n] = runtime.Deref(v)
	}
	return args, nil
}

// Apply calls an already evaluated callee with evaluated arguments. The
// collection special forms use this to invoke their lambda arguments.
func (i *Interpreter) Apply(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.Function:
		return i.applyFunction(fn, args)
	case *runtime.Builtin:
		if fn.Arity != runtime.Variadic && len(args) != fn.Arity {
			return nil, runtime.NewArityError(fn.Name, fn.Arity, len(args))
		}
		return fn.Fn(args)
	default:
		return nil, runtime.NewNotCallableError(callee)
	}
}

// applyFunction applies a user lambda. Tail-recursive bodies run under the
// trampoline; everything else uses plain recursive application. In both
// paths a fresh scope is rooted at the closure's captured environment, the
// parameters are bound, and rec is bound to the closure itself.
func (i *Interpreter) applyFunction(fn *runtime.Function, args []runtime.Value) (runtime.Value, error) {
	if len(args) != fn.Arity() {
		return nil, runtime.NewArityError("", fn.Arity(), len(args))
	}
	if fn.TailRecursive {
		return i.trampoline(fn, args)
	}

	savedEnv, savedMode := i.env, i.tcoMode
	i.env = bindCallScope(fn, args)
	i.tcoMode = false
	result, err := i.Eval(fn.Body)
	i.env, i.tcoMode = savedEnv, savedMode
	if err != nil {
		return nil, err
	}
	if err := checkNoTailCall(result); err != nil {
		return nil, err
	}
	return result, nil
}

// trampoline iterates a tail-recursive lambda. Each round binds the
// current arguments in a fresh scope and evaluates the body with tcoMode
// set; a TailCall result rebinds and loops, anything else is the answer.
func (i *Interpreter) trampoline(fn *runtime.Function, args []runtime.Value) (runtime.Value, error) {
	savedEnv, savedMode := i.env, i.tcoMode
	defer func() { i.env, i.tcoMode = savedEnv, savedMode }()

	i.tcoMode = true
	current := args
	for {
		i.env = bindCallScope(fn, current)
		result, err := i.Eval(fn.Body)
		if err != nil {
			return nil, err
		}
		tc, isTailCall := result.(*runtime.TailCall)
		if !isTailCall {
			return result, nil
		}
		if len(tc.Args) != fn.Arity() {
			return nil, runtime.NewArityError("rec", fn.Arity(), len(tc.Args))
		}
		current = tc.Args
	}
}

func bindCallScope(fn *runtime.Function, args []runtime.Value) *runtime.Environment {
	env := runtime.NewEnclosedEnvironment(fn.Env)
	for n, param := range fn.Parameters {
		env.Define(param, args[n])
	}
	env.Define("rec", fn)
	return env
}
