package builtins

import (
	"strings"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

func registerStrings(r *Registry) {
	r.Register("str", 1, CategoryString, "display representation of a value", strBuiltin)
	r.Register("upper", 1, CategoryString, "uppercase copy", stringMap("upper", strings.ToUpper))
	r.Register("lower", 1, CategoryString, "lowercase copy", stringMap("lower", strings.ToLower))
	r.Register("trim", 1, CategoryString, "whitespace-trimmed copy", stringMap("trim", strings.TrimSpace))
	r.Register("split", 2, CategoryString, "split a string by a separator", splitBuiltin)
	r.Register("join", 2, CategoryString, "join a vector of strings with a separator", joinBuiltin)
}

func strBuiltin(args []runtime.Value) (runtime.Value, error) {
	return &runtime.String{Value: runtime.Deref(args[0]).String()}, nil
}

func stringMap(name string, fn func(string) string) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		s, ok := runtime.Deref(args[0]).(*runtime.String)
		if !ok {
			return nil, runtime.NewTypeError("STRING", args[0], name)
		}
		return &runtime.String{Value: fn(s.Value)}, nil
	}
}

func splitBuiltin(args []runtime.Value) (runtime.Value, error) {
	s, ok := runtime.Deref(args[0]).(*runtime.String)
	if !ok {
		return nil, runtime.NewTypeError("STRING", args[0], "split")
	}
	sep, ok := runtime.Deref(args[1]).(*runtime.String)
	if !ok {
		return nil, runtime.NewTypeError("STRING", args[1], "split")
	}
	parts := strings.Split(s.Value, sep.Value)
	elements := make([]runtime.Value, len(parts))
	for n, part := range parts {
		elements[n] = &runtime.String{Value: part}
	}
	return &runtime.GenericVector{Elements: elements}, nil
}

func joinBuiltin(args []runtime.Value) (runtime.Value, error) {
	vec, ok := runtime.Deref(args[0]).(*runtime.GenericVector)
	if !ok {
		return nil, runtime.NewTypeError("VECTOR", args[0], "join")
	}
	sep, ok := runtime.Deref(args[1]).(*runtime.String)
	if !ok {
		return nil, runtime.NewTypeError("STRING", args[1], "join")
	}
	parts := make([]string, len(vec.Elements))
	for n, el := range vec.Elements {
		s, isString := runtime.Deref(el).(*runtime.String)
		if !isString {
			return nil, runtime.NewTypeError("a vector of strings", el, "join")
		}
		parts[n] = s.Value
	}
	return &runtime.String{Value: strings.Join(parts, sep.Value)}, nil
}
