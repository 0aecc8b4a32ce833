// Package runtime provides the SOC value model, the lexical environment and
// the structured runtime errors shared by the evaluator and the builtins.
package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value represents a runtime value in the SOC interpreter. All runtime
// values implement this interface.
type Value interface {
	// Type returns the type name of the value (e.g. "NUMBER", "TENSOR").
	Type() string
	// String returns the display representation of the value.
	String() string
}

// Type names returned by Value.Type.
const (
	NumberType        = "NUMBER"
	BooleanType       = "BOOLEAN"
	ComplexType       = "COMPLEX"
	StringType        = "STRING"
	RealTensorType    = "TENSOR"
	ComplexTensorType = "CTENSOR"
	VectorType        = "VECTOR"
	RecordType        = "RECORD"
	EdgeType          = "EDGE"
	FunctionType      = "FUNCTION"
	BuiltinType       = "BUILTIN"
	MutableRefType    = "MUTREF"
	GeneratorType     = "GENERATOR"
	TailCallType      = "TAILCALL"
)

// Number is a real number. SOC has a single real numeric type backed by a
// 64-bit float; integer literals are Numbers too.
type Number struct {
	Value float64
}

// Type returns "NUMBER".
func (n *Number) Type() string { return NumberType }

// String formats the number with the shortest representation that
// round-trips.
func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// Boolean is true or false. Booleans and numbers are distinct: 1 is not
// true and comparisons never coerce between them.
type Boolean struct {
	Value bool
}

// Type returns "BOOLEAN".
func (b *Boolean) Type() string { return BooleanType }

// String returns "true" or "false".
func (b *Boolean) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Complex is a complex number with 64-bit float components.
type Complex struct {
	Value complex128
}

// Type returns "COMPLEX".
func (c *Complex) Type() string { return ComplexType }

// String renders "a + bi" with the sign folded into the imaginary part.
func (c *Complex) String() string {
	return FormatComplex(c.Value)
}

// FormatComplex renders a complex number the way SOC displays it: the real
// part is omitted when zero, a pure-imaginary unit renders as "i" or "-i".
func FormatComplex(v complex128) string {
	re, im := real(v), imag(v)
	if im == 0 {
		return strconv.FormatFloat(re, 'g', -1, 64)
	}
	imStr := strconv.FormatFloat(math.Abs(im), 'g', -1, 64)
	if imStr == "1" {
		imStr = ""
	}
	sign := "+"
	if im < 0 {
		sign = "-"
	}
	if re == 0 {
		if im < 0 {
			return "-" + imStr + "i"
		}
		return imStr + "i"
	}
	return fmt.Sprintf("%s %s %si", strconv.FormatFloat(re, 'g', -1, 64), sign, imStr)
}

// String is a Unicode string value.
type String struct {
	Value string
}

// Type returns "STRING".
func (s *String) Type() string { return StringType }

// String returns the string contents without quoting.
func (s *String) String() string { return s.Value }

// GenericVector is an ordered heterogeneous sequence. Vector literals whose
// elements are not all numeric produce this container.
type GenericVector struct {
	Elements []Value
}

// Type returns "VECTOR".
func (v *GenericVector) Type() string { return VectorType }

func (v *GenericVector) String() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		if s, ok := el.(*String); ok {
			parts[i] = strconv.Quote(s.Value)
		} else {
			parts[i] = el.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Edge is a graph edge between two string-identified nodes. A graph value
// is a vector of edges plus a record of node properties.
type Edge struct {
	From     string
	To       string
	Directed bool
	Weight   *float64
	Label    string
}

// Type returns "EDGE".
func (e *Edge) Type() string { return EdgeType }

func (e *Edge) String() string {
	arrow := "--"
	if e.Directed {
		arrow = "->"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s", e.From, arrow, e.To)
	if e.Weight != nil {
		fmt.Fprintf(&sb, " [%s]", strconv.FormatFloat(*e.Weight, 'g', -1, 64))
	}
	if e.Label != "" {
		fmt.Fprintf(&sb, " %q", e.Label)
	}
	return sb.String()
}

// MutableRef is an interior-mutable cell holding a single Value. It is
// created only by mut declarations and mut record fields, and is
// auto-dereferenced on every read; two names bound to the same cell observe
// each other's writes.
type MutableRef struct {
	cell Value
}

// NewMutableRef creates a cell holding the given value.
func NewMutableRef(v Value) *MutableRef {
	return &MutableRef{cell: v}
}

// Type returns "MUTREF".
func (r *MutableRef) Type() string { return MutableRefType }

// String displays the current cell contents.
func (r *MutableRef) String() string { return r.cell.String() }

// Get returns the current cell contents.
func (r *MutableRef) Get() Value { return r.cell }

// Set replaces the cell contents.
func (r *MutableRef) Set(v Value) { r.cell = v }

// Deref unwraps a MutableRef to its contents; any other value is returned
// unchanged. Reads auto-dereference, writes go through explicit assignment.
func Deref(v Value) Value {
	if ref, ok := v.(*MutableRef); ok {
		return ref.Get()
	}
	return v
}

// TailCall is the internal trampoline marker carrying the argument values
// of a tail rec call. It is produced only while the trampoline runs and
// must never escape into user-visible results; the evaluator treats a
// leaked TailCall as an InvariantError.
type TailCall struct {
	Args []Value
}

// Type returns "TAILCALL".
func (t *TailCall) Type() string { return TailCallType }

// String is only ever seen in invariant-violation diagnostics.
func (t *TailCall) String() string { return "<tail call>" }

// Generator is a value satisfying the iteration protocol: Next yields the
// next element until exhausted. Generators are consumed by for-in loops and
// the collection special forms.
type Generator struct {
	next func() (Value, bool)
}

// NewGenerator wraps a next function into a Generator. next returns the
// next value and true, or (nil, false) once exhausted.
func NewGenerator(next func() (Value, bool)) *Generator {
	return &Generator{next: next}
}

// Type returns "GENERATOR".
func (g *Generator) Type() string { return GeneratorType }

// String identifies the value without draining it.
func (g *Generator) String() string { return "<generator>" }

// Next yields the next element, or false when the generator is exhausted.
func (g *Generator) Next() (Value, bool) { return g.next() }
