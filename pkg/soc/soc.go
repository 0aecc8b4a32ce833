// Package soc is the public embedding API of the SOC interpreter.
//
// An Engine wraps a parser and evaluator around a long-lived session
// environment: top-level bindings persist between Evaluate calls, which is
// what interactive hosts (REPL, WASM bridge) build on.
//
//	engine := soc.New()
//	v, err := engine.Evaluate("let add = (a, b) => a + b; add(2, 3)")
//	// v.String() == "5"
package soc

import (
	"errors"
	"io"
	"os"

	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/interp"
	"github.com/eddndev/achronyme-core/internal/parser"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// Value is a SOC runtime value.
type Value = runtime.Value

// Variadic marks a registered builtin as accepting any argument count.
const Variadic = runtime.Variadic

// Engine is a SOC interpreter session.
type Engine struct {
	interp *interp.Interpreter
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	output io.Writer
}

// WithOutput directs builtin output (print) to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// New creates an engine with a fresh session environment, the standard
// constants and the builtin library.
func New(opts ...Option) *Engine {
	o := &options{output: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	return &Engine{interp: interp.New(o.output)}
}

// Evaluate parses and evaluates source. Top-level bindings persist in the
// session environment for subsequent calls. On a syntax error the combined
// parser errors are returned; runtime errors abort the evaluation and
// surface unchanged.
func (e *Engine) Evaluate(source string) (Value, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return e.interp.EvalProgram(program)
}

// RegisterBuiltin installs a host-defined ordinary builtin in the engine's
// registry. arity is a fixed count or Variadic.
func (e *Engine) RegisterBuiltin(name string, arity int, fn func([]Value) (Value, error)) {
	e.interp.Registry().Register(name, arity, "host", "host-registered function", fn)
}

// Parse parses source without evaluating it, returning the combined syntax
// errors when the source is malformed. Used by hosts that want to validate
// input separately from running it.
func Parse(source string) (*Program, error) {
	p := parser.New(source)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		combined := make([]error, len(errs))
		for i, e := range errs {
			combined[i] = e
		}
		return nil, errors.Join(combined...)
	}
	return program, nil
}

// Program is a parsed SOC program, opaque to callers.
type Program = ast.Program
