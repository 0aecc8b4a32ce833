// Package interp provides the tree-walking evaluator for SOC.
package interp

import (
	"io"
	"math"

	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/interp/builtins"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// Interpreter executes SOC AST nodes against a session environment. It is
// single-threaded and synchronous: every Eval runs to completion before
// control returns to the host.
type Interpreter struct {
	env          *runtime.Environment
	registry     *builtins.Registry
	specialForms map[string]specialFormFn

	// tcoMode is true only while the body of a tail-recursive lambda is
	// being evaluated by the trampoline. It is saved and restored around
	// every nested ordinary application so an inner function's rec is never
	// intercepted by an outer trampoline.
	tcoMode bool
}

// specialFormFn is the handler signature of a special form: it receives the
// evaluator and the raw argument AST and performs its own evaluation and
// scope management.
type specialFormFn func(i *Interpreter, args []ast.Expression) (runtime.Value, error)

// New creates an interpreter with a fresh global environment, the standard
// constants and the full builtin registry. Output from builtins like print
// goes to the given writer.
func New(output io.Writer) *Interpreter {
	i := &Interpreter{
		env:          runtime.NewEnvironment(),
		registry:     builtins.NewRegistry(),
		specialForms: make(map[string]specialFormFn),
	}
	builtins.RegisterAll(i.registry, &builtins.Context{Output: output})
	i.registerSpecialForms()
	i.defineConstants()
	return i
}

// Constants seeded into every session.
func (i *Interpreter) defineConstants() {
	phi := (1 + math.Sqrt(5)) / 2
	i.env.Define("PI", &runtime.Number{Value: math.Pi})
	i.env.Define("E", &runtime.Number{Value: math.E})
	i.env.Define("PHI", &runtime.Number{Value: phi})
	i.env.Define("TAU", &runtime.Number{Value: 2 * math.Pi})
	i.env.Define("i", &runtime.Complex{Value: complex(0, 1)})
}

// Env returns the current environment. The session environment persists
// between top-level evaluations in interactive mode.
func (i *Interpreter) Env() *runtime.Environment { return i.env }

// Registry returns the builtin function registry.
func (i *Interpreter) Registry() *builtins.Registry { return i.registry }

// EvalProgram evaluates each statement in order and returns the value of
// the last one, or Number(0) for an empty program.
func (i *Interpreter) EvalProgram(program *ast.Program) (runtime.Value, error) {
	var result runtime.Value = &runtime.Number{Value: 0}
	for _, stmt := range program.Statements {
		v, err := i.Eval(stmt)
		if err != nil {
			return nil, err
		}
		result = v
	}
	if err := checkNoTailCall(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Eval evaluates an AST node and returns its value. This is the recursive
// workhorse of the interpreter.
func (i *Interpreter) Eval(node ast.Node) (runtime.Value, error) {
	switch node := node.(type) {
	case *ast.Program:
		return i.EvalProgram(node)

	case *ast.ExpressionStatement:
		return i.Eval(node.Expression)

	case *ast.LetStatement:
		return i.evalLetStatement(node)

	case *ast.MutStatement:
		return i.evalMutStatement(node)

	case *ast.NumberLiteral:
		return &runtime.Number{Value: node.Value}, nil

	case *ast.ImaginaryLiteral:
		return &runtime.Complex{Value: complex(0, node.Value)}, nil

	case *ast.BooleanLiteral:
		return &runtime.Boolean{Value: node.Value}, nil

	case *ast.StringLiteral:
		return &runtime.String{Value: node.Value}, nil

	case *ast.Identifier:
		return i.evalIdentifier(node)

	case *ast.SelfExpression:
		return i.evalSelf()

	case *ast.RecExpression:
		return i.evalRec()

	case *ast.PrefixExpression:
		return i.evalPrefixExpression(node)

	case *ast.InfixExpression:
		return i.evalInfixExpression(node)

	case *ast.VectorLiteral:
		return i.evalVectorLiteral(node)

	case *ast.RecordLiteral:
		return i.evalRecordLiteral(node)

	case *ast.FieldAccess:
		return i.evalFieldAccess(node)

	case *ast.IndexExpression:
		return i.evalIndexExpression(node)

	case *ast.CallExpression:
		return i.evalCallExpression(node)

	case *ast.LambdaLiteral:
		return i.evalLambdaLiteral(node)

	case *ast.AssignExpression:
		return i.evalAssignExpression(node)

	case *ast.DoBlock:
		return i.evalDoBlock(node)

	case *ast.ForInExpression:
		return i.evalForIn(node)

	default:
		return nil, runtime.NewInvariantError("unhandled AST node kind")
	}
}

func (i *Interpreter) evalLetStatement(node *ast.LetStatement) (runtime.Value, error) {
	value, err := i.Eval(node.Value)
	if err != nil {
		return nil, err
	}
	if err := checkNoTailCall(value); err != nil {
		return nil, err
	}
	i.env.Define(node.Name, value)
	return value, nil
}

func (i *Interpreter) evalMutStatement(node *ast.MutStatement) (runtime.Value, error) {
	value, err := i.Eval(node.Value)
	if err != nil {
		return nil, err
	}
	if err := checkNoTailCall(value); err != nil {
		return nil, err
	}
	i.env.Define(node.Name, runtime.NewMutableRef(value))
	return value, nil
}

// evalIdentifier resolves a name. Environment bindings win; otherwise the
// builtin registry is consulted. A special-form name has no value form:
// using one outside call position is a TypeError.
func (i *Interpreter) evalIdentifier(node *ast.Identifier) (runtime.Value, error) {
	if v, ok := i.env.Get(node.Value); ok {
		// Reads auto-dereference mutable cells.
		return runtime.Deref(v), nil
	}
	if _, ok := i.specialForms[node.Value]; ok {
		return nil, runtime.NewTypeError("a value", nil, node.Value+" (special forms are not first-class)")
	}
	if b, ok := i.registry.Lookup(node.Value); ok {
		return b, nil
	}
	return nil, runtime.NewNameError(node.Value)
}

func (i *Interpreter) evalSelf() (runtime.Value, error) {
	if v, ok := i.env.Get("self"); ok {
		return v, nil
	}
	return nil, runtime.NewInvariantError("self referenced outside a record")
}

// evalRec resolves a bare rec reference to the function currently being
// applied. rec used as a value (rather than as a callee) disqualifies a
// body from TCO, so reaching this path with tcoMode set is impossible.
func (i *Interpreter) evalRec() (runtime.Value, error) {
	if v, ok := i.env.Get("rec"); ok {
		return v, nil
	}
	return nil, runtime.NewInvariantError("rec referenced outside a function body")
}

// evalDoBlock runs statements in a pushed scope and yields the last value,
// or Number(0) for an empty block. The scope is popped on every exit path.
func (i *Interpreter) evalDoBlock(node *ast.DoBlock) (runtime.Value, error) {
	saved := i.env
	i.env = runtime.NewEnclosedEnvironment(saved)
	defer func() { i.env = saved }()

	var result runtime.Value = &runtime.Number{Value: 0}
	for _, stmt := range node.Statements {
		v, err := i.Eval(stmt)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (i *Interpreter) evalFieldAccess(node *ast.FieldAccess) (runtime.Value, error) {
	obj, err := i.Eval(node.Object)
	if err != nil {
		return nil, err
	}
	record, ok := runtime.Deref(obj).(*runtime.Record)
	if !ok {
		return nil, runtime.NewTypeError("RECORD", obj, "field access ."+node.Field)
	}
	v, ok := record.Get(node.Field)
	if !ok {
		return nil, runtime.NewTypeError("a record with field "+node.Field, obj, "field access")
	}
	// Mutable field cells auto-dereference on read.
	return runtime.Deref(v), nil
}

func (i *Interpreter) evalIndexExpression(node *ast.IndexExpression) (runtime.Value, error) {
	left, err := i.Eval(node.Left)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(node.Indices))
	for n, ixExpr := range node.Indices {
		v, err := i.Eval(ixExpr)
		if err != nil {
			return nil, err
		}
		ix, ok := asIntIndex(v)
		if !ok {
			return nil, runtime.NewTypeError("an integer index", v, "index expression")
		}
		indices[n] = ix
	}

	switch target := runtime.Deref(left).(type) {
	case *runtime.RealTensor:
		v, err := target.At(indices)
		if err != nil {
			return nil, err
		}
		return &runtime.Number{Value: v}, nil
	case *runtime.ComplexTensor:
		v, err := target.At(indices)
		if err != nil {
			return nil, err
		}
		return &runtime.Complex{Value: v}, nil
	case *runtime.GenericVector:
		if len(indices) != 1 {
			return nil, runtime.NewRankError(1, len(indices))
		}
		ix := indices[0]
		if ix < 0 || ix >= len(target.Elements) {
			return nil, runtime.NewIndexError(ix, len(target.Elements))
		}
		return runtime.Deref(target.Elements[ix]), nil
	default:
		return nil, runtime.NewTypeError("TENSOR or VECTOR", left, "index expression")
	}
}

func (i *Interpreter) evalLambdaLiteral(node *ast.LambdaLiteral) (runtime.Value, error) {
	return &runtime.Function{
		Parameters:    node.Parameters,
		Body:          node.Body,
		Env:           i.env,
		TailRecursive: IsTailRecursive(node.Body),
	}, nil
}

// asIntIndex accepts a Number holding an exact integer. Negative values
// pass through so indexing can report them as IndexError (no wraparound).
func asIntIndex(v runtime.Value) (int, bool) {
	n, ok := runtime.Deref(v).(*runtime.Number)
	if !ok {
		return 0, false
	}
	if n.Value != math.Trunc(n.Value) || math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		return 0, false
	}
	return int(n.Value), true
}

// checkNoTailCall guards every non-trampoline path where a value becomes
// observable. A TailCall here means the trampoline protocol was broken.
func checkNoTailCall(v runtime.Value) error {
	if _, ok := v.(*runtime.TailCall); ok {
		return runtime.NewInvariantError("tail-call marker escaped the trampoline")
	}
	return nil
}
