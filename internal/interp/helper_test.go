package interp

import (
	"bytes"
	"io"
	"testing"

	"github.com/eddndev/achronyme-core/internal/parser"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// newTestInterpreter creates an interpreter with discarded output.
func newTestInterpreter() *Interpreter {
	return New(io.Discard)
}

// evalSource parses and evaluates a program in a fresh interpreter,
// failing the test on syntax errors.
func evalSource(t *testing.T, source string) (runtime.Value, error) {
	t.Helper()
	return evalSourceOn(t, New(io.Discard), source)
}

func evalSourceOn(t *testing.T, i *Interpreter, source string) (runtime.Value, error) {
	t.Helper()
	p := parser.New(source)
	program := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("syntax error in %q: %v", source, errs[0])
	}
	return i.EvalProgram(program)
}

// mustEval evaluates source and fails on any error.
func mustEval(t *testing.T, source string) runtime.Value {
	t.Helper()
	v, err := evalSource(t, source)
	if err != nil {
		t.Fatalf("eval %q: %v", source, err)
	}
	return v
}

// evalNumber evaluates source and requires a Number result.
func evalNumber(t *testing.T, source string) float64 {
	t.Helper()
	v := mustEval(t, source)
	n, ok := v.(*runtime.Number)
	if !ok {
		t.Fatalf("eval %q: expected NUMBER, got %s (%s)", source, v.Type(), v.String())
	}
	return n.Value
}

// evalDisplay evaluates source and returns the display string.
func evalDisplay(t *testing.T, source string) string {
	t.Helper()
	return mustEval(t, source).String()
}

// evalWithOutput evaluates source and returns the result plus everything
// print wrote.
func evalWithOutput(t *testing.T, source string) (runtime.Value, string) {
	t.Helper()
	var buf bytes.Buffer
	v, err := evalSourceOn(t, New(&buf), source)
	if err != nil {
		t.Fatalf("eval %q: %v", source, err)
	}
	return v, buf.String()
}
