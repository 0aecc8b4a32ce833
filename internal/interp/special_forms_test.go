package interp

import (
	"math"
	"testing"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

func TestIfEvaluatesOnlySelectedBranch(t *testing.T) {
	// The unselected branch must stay unevaluated.
	source := `
		mut hits = 0;
		let bump = () => do { hits = hits + 1; hits };
		if(true, 1, bump());
		if(false, bump(), 2);
		hits
	`
	if got := evalNumber(t, source); got != 0 {
		t.Errorf("if must be lazy: expected 0 side effects, got %g", got)
	}

	if got := evalNumber(t, "if(1 < 2, 10, 20)"); got != 10 {
		t.Errorf("expected 10, got %g", got)
	}
	if got := evalNumber(t, "if(false, 10, 20)"); got != 20 {
		t.Errorf("expected 20, got %g", got)
	}
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	_, err := evalSource(t, "if(1, 2, 3)")
	if err == nil || !runtime.IsTypeError(err) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestIfWithoutElse(t *testing.T) {
	if got := evalNumber(t, "if(false, 5)"); got != 0 {
		t.Errorf("expected 0, got %g", got)
	}
}

func TestSpecialFormAsValueIsRejected(t *testing.T) {
	_, err := evalSource(t, "let g = map; g")
	if err == nil || !runtime.IsTypeError(err) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	_, err = evalSource(t, "pipe([1], if)")
	if err == nil || !runtime.IsTypeError(err) {
		t.Fatalf("if as value: expected TypeError, got %v", err)
	}
}

func TestPiecewise(t *testing.T) {
	source := `
		let sgn = x => piecewise([x < 0, -1], [x > 0, 1], 0);
		sgn(-5) * 100 + sgn(7) * 10 + sgn(0)
	`
	if got := evalNumber(t, source); got != -90 {
		t.Errorf("expected -90, got %g", got)
	}

	// Predicates after the selected branch stay unevaluated.
	lazy := `
		mut hits = 0;
		let bump = () => do { hits = hits + 1; true };
		piecewise([true, 1], [bump(), 2], 3);
		hits
	`
	if got := evalNumber(t, lazy); got != 0 {
		t.Errorf("piecewise must be lazy: got %g side effects", got)
	}

	_, err := evalSource(t, "piecewise([false, 1])")
	if err == nil || !runtime.IsArithmeticError(err) {
		t.Fatalf("no branch, no default: expected ArithmeticError, got %v", err)
	}
}

func TestMap(t *testing.T) {
	if got := evalDisplay(t, "map(x => x * x, [1, 2, 3, 4])"); got != "[1, 4, 9, 16]" {
		t.Errorf("map: got %s", got)
	}
	// map over an empty container returns an empty container of the same
	// kind.
	if got := evalDisplay(t, "map(x => x * x, [])"); got != "[]" {
		t.Errorf("map empty: got %s", got)
	}
	// A matrix keeps its shape when the function stays numeric.
	if got := evalDisplay(t, "map(x => x + 1, [[1, 2], [3, 4]])"); got != "[[2, 3], [4, 5]]" {
		t.Errorf("map matrix: got %s", got)
	}
	// Builtin names work as mapped functions.
	if got := evalDisplay(t, "map(abs, [-1, 2, -3])"); got != "[1, 2, 3]" {
		t.Errorf("map abs: got %s", got)
	}
	// Non-numeric results fall back to a generic vector.
	if got := evalDisplay(t, `map(x => str(x), [1, 2])`); got != `["1", "2"]` {
		t.Errorf("map to strings: got %s", got)
	}
}

func TestFilter(t *testing.T) {
	if got := evalDisplay(t, "filter(x => x > 2, [1, 2, 3, 4])"); got != "[3, 4]" {
		t.Errorf("filter: got %s", got)
	}
	if got := evalDisplay(t, "filter(x => x > 99, [1, 2])"); got != "[]" {
		t.Errorf("filter none: got %s", got)
	}
	_, err := evalSource(t, "filter(x => x, [1])")
	if err == nil || !runtime.IsTypeError(err) {
		t.Fatalf("non-boolean predicate: expected TypeError, got %v", err)
	}
}

func TestReduce(t *testing.T) {
	if got := evalNumber(t, "reduce((a, b) => a + b, 0, [1, 2, 3, 4])"); got != 10 {
		t.Errorf("reduce sum: got %g", got)
	}
	if got := evalNumber(t, "reduce((a, b) => a * b, 1, [1, 2, 3, 4])"); got != 24 {
		t.Errorf("reduce product: got %g", got)
	}
	if got := evalNumber(t, "reduce((a, b) => a + b, 7, [])"); got != 7 {
		t.Errorf("reduce empty: got %g", got)
	}
}

func TestScenarioPipe(t *testing.T) {
	// pipe([1,2,3,4], map squares, reduce sum) → 30
	source := `pipe([1, 2, 3, 4], v => map(x => x * x, v), v => reduce((a, b) => a + b, 0, v))`
	if got := evalNumber(t, source); got != 30 {
		t.Errorf("expected 30, got %g", got)
	}
	if got := evalNumber(t, "pipe(5)"); got != 5 {
		t.Errorf("pipe identity: got %g", got)
	}
}

func TestQuantifiers(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"any(x => x > 3, [1, 2, 4])", true},
		{"any(x => x > 9, [1, 2, 4])", false},
		{"all(x => x > 0, [1, 2, 4])", true},
		{"all(x => x > 1, [1, 2, 4])", false},
		{"any(x => x > 0, [])", false},
		{"all(x => x > 0, [])", true},
	}
	for _, tt := range tests {
		v := mustEval(t, tt.input)
		b, ok := v.(*runtime.Boolean)
		if !ok || b.Value != tt.want {
			t.Errorf("%q: expected %v, got %s", tt.input, tt.want, v.String())
		}
	}

	// Short-circuit: elements after the decision are not visited.
	source := `
		mut hits = 0;
		let spy = x => do { hits = hits + 1; x > 0 };
		any(spy, [1, 2, 3]);
		hits
	`
	if got := evalNumber(t, source); got != 1 {
		t.Errorf("any must short-circuit: expected 1 visit, got %g", got)
	}
}

func TestFindAndFriends(t *testing.T) {
	if got := evalNumber(t, "find(x => x > 2, [1, 2, 3, 4])"); got != 3 {
		t.Errorf("find: got %g", got)
	}
	_, err := evalSource(t, "find(x => x > 9, [1, 2])")
	if err == nil || !runtime.IsIndexError(err) {
		t.Fatalf("empty find: expected IndexError, got %v", err)
	}

	if got := evalNumber(t, "findIndex(x => x > 2, [1, 2, 3, 4])"); got != 2 {
		t.Errorf("findIndex: got %g", got)
	}
	if got := evalNumber(t, "findIndex(x => x > 9, [1, 2])"); got != -1 {
		t.Errorf("findIndex missing: got %g", got)
	}

	if got := evalNumber(t, "count(x => x % 2 == 0, [1, 2, 3, 4, 6])"); got != 3 {
		t.Errorf("count: got %g", got)
	}
}

func TestDiff(t *testing.T) {
	got := evalNumber(t, "diff(x => x * x, 3)")
	if math.Abs(got-6) > 1e-5 {
		t.Errorf("d/dx x^2 at 3: expected ~6, got %g", got)
	}
	got = evalNumber(t, "diff(sin, 0)")
	if math.Abs(got-1) > 1e-5 {
		t.Errorf("d/dx sin at 0: expected ~1, got %g", got)
	}
}

func TestIntegral(t *testing.T) {
	got := evalNumber(t, "integral(x => x * x, 0, 1)")
	if math.Abs(got-1.0/3) > 1e-8 {
		t.Errorf("∫x² over [0,1]: expected ~1/3, got %g", got)
	}
	got = evalNumber(t, "integral(sin, 0, PI)")
	if math.Abs(got-2) > 1e-8 {
		t.Errorf("∫sin over [0,π]: expected ~2, got %g", got)
	}
	if got := evalNumber(t, "integral(x => x, 2, 2)"); got != 0 {
		t.Errorf("empty interval: expected 0, got %g", got)
	}
}

func TestSolve(t *testing.T) {
	got := evalNumber(t, "solve(x => x * x - 2, 0, 2)")
	if math.Abs(got-math.Sqrt2) > 1e-9 {
		t.Errorf("root of x²-2: expected ~√2, got %g", got)
	}
	_, err := evalSource(t, "solve(x => x * x + 1, -1, 1)")
	if err == nil || !runtime.IsArithmeticError(err) {
		t.Fatalf("no sign change: expected ArithmeticError, got %v", err)
	}
}

func TestNewton(t *testing.T) {
	got := evalNumber(t, "newton(x => x * x - 2, 1)")
	if math.Abs(got-math.Sqrt2) > 1e-9 {
		t.Errorf("newton on x²-2: expected ~√2, got %g", got)
	}
}

func TestSpecialFormsIterateGenerators(t *testing.T) {
	if got := evalNumber(t, "reduce((a, b) => a + b, 0, range(1, 101))"); got != 5050 {
		t.Errorf("sum 1..100: expected 5050, got %g", got)
	}
	if got := evalDisplay(t, "map(x => x * 2, range(3))"); got != "[0, 2, 4]" {
		t.Errorf("map over generator: got %s", got)
	}
}
