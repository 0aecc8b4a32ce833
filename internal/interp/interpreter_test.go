package interp

import (
	"testing"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

func TestLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"true", "true"},
		{"false", "false"},
		{`"hello"`, "hello"},
		{"2i", "2i"},
		{"0xff", "255"},
		{"0b101", "5"},
	}
	for _, tt := range tests {
		if got := evalDisplay(t, tt.input); got != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestLetBindingAndShadowing(t *testing.T) {
	if got := evalNumber(t, "let x = 1; let x = x + 1; x"); got != 2 {
		t.Errorf("shadowing: expected 2, got %g", got)
	}
	if got := evalNumber(t, "let x = 10; do { let x = 20; x }"); got != 20 {
		t.Errorf("inner scope: expected 20, got %g", got)
	}
	if got := evalNumber(t, "let x = 10; do { let x = 20; x }; x"); got != 10 {
		t.Errorf("outer binding survives: expected 10, got %g", got)
	}
}

func TestNameError(t *testing.T) {
	_, err := evalSource(t, "nope")
	if err == nil || !runtime.IsNameError(err) {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestConstants(t *testing.T) {
	if got := evalDisplay(t, "i * i"); got != "-1" {
		t.Errorf("i*i: expected -1, got %s", got)
	}
	if got := evalNumber(t, "TAU / PI"); got != 2 {
		t.Errorf("TAU/PI: expected 2, got %g", got)
	}
	if got := evalNumber(t, "floor(PHI * 1000)"); got != 1618 {
		t.Errorf("PHI: expected 1618, got %g", got)
	}
	if got := evalNumber(t, "floor(E * 100)"); got != 271 {
		t.Errorf("E: expected 271, got %g", got)
	}
}

func TestScenarioAdd(t *testing.T) {
	// let add = (a, b) => a + b; add(2, 3) → 5
	if got := evalNumber(t, "let add = (a, b) => a + b; add(2, 3)"); got != 5 {
		t.Errorf("expected 5, got %g", got)
	}
}

func TestMutabilityThroughSharedCell(t *testing.T) {
	if got := evalNumber(t, "mut a = 1; a = a + 1; a"); got != 2 {
		t.Errorf("expected 2, got %g", got)
	}
	// A closure and the outer scope observe the same cell.
	if got := evalNumber(t, "mut a = 1; let bump = () => a = a + 10; bump(); bump(); a"); got != 21 {
		t.Errorf("shared cell: expected 21, got %g", got)
	}
}

func TestAssignmentToImmutableBindingFails(t *testing.T) {
	_, err := evalSource(t, "let a = 1; a = 2")
	if err == nil || !runtime.IsTypeError(err) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestAssignmentToUndefinedFails(t *testing.T) {
	_, err := evalSource(t, "a = 2")
	if err == nil || !runtime.IsNameError(err) {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestDoBlock(t *testing.T) {
	if got := evalNumber(t, "do { let a = 1; let b = 2; a + b }"); got != 3 {
		t.Errorf("expected 3, got %g", got)
	}
	// Empty do-block yields the default zero.
	if got := evalNumber(t, "do { }"); got != 0 {
		t.Errorf("empty block: expected 0, got %g", got)
	}
	// Block-local bindings do not leak.
	_, err := evalSource(t, "do { let hidden = 1; hidden }; hidden")
	if err == nil || !runtime.IsNameError(err) {
		t.Fatalf("expected NameError after block, got %v", err)
	}
}

func TestClosuresCaptureBySharing(t *testing.T) {
	source := `
		let makeCounter = () => do {
			mut n = 0;
			{ inc: () => n = n + 1, get: () => n }
		};
		let c = makeCounter();
		c.inc(); c.inc(); c.inc();
		c.get()
	`
	if got := evalNumber(t, source); got != 3 {
		t.Errorf("expected 3, got %g", got)
	}
}

func TestArityError(t *testing.T) {
	_, err := evalSource(t, "let f = (a, b) => a + b; f(1)")
	if err == nil || !runtime.IsArityError(err) {
		t.Fatalf("expected ArityError, got %v", err)
	}
	_, err = evalSource(t, "let f = x => x; f(1, 2)")
	if err == nil || !runtime.IsArityError(err) {
		t.Fatalf("expected ArityError, got %v", err)
	}
}

func TestNotCallable(t *testing.T) {
	_, err := evalSource(t, "let x = 5; x(1)")
	if err == nil || !runtime.IsTypeError(err) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestIndexing(t *testing.T) {
	if got := evalNumber(t, "[10, 20, 30][1]"); got != 20 {
		t.Errorf("vector index: expected 20, got %g", got)
	}
	if got := evalNumber(t, "[[1, 2], [3, 4]][1, 0]"); got != 3 {
		t.Errorf("matrix index: expected 3, got %g", got)
	}

	_, err := evalSource(t, "[1, 2, 3][3]")
	if err == nil || !runtime.IsIndexError(err) {
		t.Fatalf("out of bounds: expected IndexError, got %v", err)
	}
	// Negative indices have no wraparound.
	_, err = evalSource(t, "[1, 2, 3][-1]")
	if err == nil || !runtime.IsIndexError(err) {
		t.Fatalf("negative index: expected IndexError, got %v", err)
	}
	// Rank mismatch.
	_, err = evalSource(t, "[[1, 2], [3, 4]][0]")
	if err == nil || !runtime.IsIndexError(err) {
		t.Fatalf("rank mismatch: expected IndexError, got %v", err)
	}
}

func TestFieldAccessErrors(t *testing.T) {
	_, err := evalSource(t, "let x = 5; x.field")
	if err == nil || !runtime.IsTypeError(err) {
		t.Fatalf("field on non-record: expected TypeError, got %v", err)
	}
	_, err = evalSource(t, "let r = { a: 1 }; r.b")
	if err == nil || !runtime.IsTypeError(err) {
		t.Fatalf("missing field: expected TypeError, got %v", err)
	}
}

func TestForIn(t *testing.T) {
	if got := evalNumber(t, "mut s = 0; for x in [1, 2, 3, 4] { s = s + x }; s"); got != 10 {
		t.Errorf("tensor iteration: expected 10, got %g", got)
	}
	if got := evalNumber(t, "mut s = 0; for x in range(5) { s = s + x }; s"); got != 10 {
		t.Errorf("generator iteration: expected 10, got %g", got)
	}
	// Loop value is the last body value; empty iterable yields zero.
	if got := evalNumber(t, "for x in [] { x }"); got != 0 {
		t.Errorf("empty iterable: expected 0, got %g", got)
	}
}

func TestPrintOutput(t *testing.T) {
	_, out := evalWithOutput(t, `print("x =", 42)`)
	if out != "x = 42\n" {
		t.Errorf("expected %q, got %q", "x = 42\n", out)
	}
}

func TestDeterminism(t *testing.T) {
	source := "let f = x => x * x + 1; map(f, linspace(0, 1, 11))"
	first := evalDisplay(t, source)
	for n := 0; n < 3; n++ {
		if got := evalDisplay(t, source); got != first {
			t.Fatalf("non-deterministic result: %s vs %s", first, got)
		}
	}
}

func TestSessionPersistence(t *testing.T) {
	i := newTestInterpreter()
	if _, err := evalSourceOn(t, i, "let x = 40"); err != nil {
		t.Fatal(err)
	}
	v, err := evalSourceOn(t, i, "x + 2")
	if err != nil {
		t.Fatal(err)
	}
	if v.(*runtime.Number).Value != 42 {
		t.Errorf("expected 42, got %s", v.String())
	}
}
