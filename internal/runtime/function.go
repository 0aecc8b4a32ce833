package runtime

import (
	"strings"

	"github.com/eddndev/achronyme-core/internal/ast"
)

// Function is a user-defined closure: a parameter list, a body AST and a
// shared reference to the environment where the lambda literal was
// evaluated. The captured environment is shared, not copied; calling the
// function never mutates it unless the body assigns through a MutableRef
// visible from it.
type Function struct {
	Parameters []string
	Body       ast.Expression
	Env        *Environment

	// TailRecursive is decided once at closure creation by the tail-position
	// analyzer; the trampoline consults it on every application.
	TailRecursive bool
}

// Type returns "FUNCTION".
func (f *Function) Type() string { return FunctionType }

func (f *Function) String() string {
	return "(" + strings.Join(f.Parameters, ", ") + ") => <body>"
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int { return len(f.Parameters) }

// Builtin is a native function registered under a name in the function
// registry. Ordinary builtins receive strictly evaluated argument values;
// they never see raw AST or TailCall markers.
type Builtin struct {
	Name string
	// Arity is the fixed argument count, or Variadic.
	Arity int
	Fn    func(args []Value) (Value, error)
}

// Variadic marks a builtin accepting any number of arguments.
const Variadic = -1

// Type returns "BUILTIN".
func (b *Builtin) Type() string { return BuiltinType }

func (b *Builtin) String() string { return "<builtin " + b.Name + ">" }
