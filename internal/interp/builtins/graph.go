package builtins

import (
	"github.com/eddndev/achronyme-core/internal/runtime"
)

func registerGraph(r *Registry) {
	r.Register("edge", runtime.Variadic, CategoryGraph, "graph edge between two nodes", edgeBuiltin)
}

// edgeBuiltin builds an Edge: edge(from, to[, directed[, weight[, label]]]).
// A graph value is a vector of edges plus a record of node properties.
func edgeBuiltin(args []runtime.Value) (runtime.Value, error) {
	if len(args) < 2 || len(args) > 5 {
		return nil, runtime.NewArityError("edge", 2, len(args))
	}
	from, ok := runtime.Deref(args[0]).(*runtime.String)
	if !ok {
		return nil, runtime.NewTypeError("a node identifier string", args[0], "edge")
	}
	to, ok := runtime.Deref(args[1]).(*runtime.String)
	if !ok {
		return nil, runtime.NewTypeError("a node identifier string", args[1], "edge")
	}

	edge := &runtime.Edge{From: from.Value, To: to.Value}
	if len(args) >= 3 {
		directed, ok := runtime.Deref(args[2]).(*runtime.Boolean)
		if !ok {
			return nil, runtime.NewTypeError("BOOLEAN", args[2], "edge directed flag")
		}
		edge.Directed = directed.Value
	}
	if len(args) >= 4 {
		w, ok := runtime.AsNumber(args[3])
		if !ok {
			return nil, runtime.NewTypeError("a numeric weight", args[3], "edge")
		}
		edge.Weight = &w
	}
	if len(args) == 5 {
		label, ok := runtime.Deref(args[4]).(*runtime.String)
		if !ok {
			return nil, runtime.NewTypeError("a label string", args[4], "edge")
		}
		edge.Label = label.Value
	}
	return edge, nil
}
