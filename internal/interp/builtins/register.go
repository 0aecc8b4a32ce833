package builtins

// RegisterAll seeds a registry with the full ordinary builtin library.
// Special forms are marked separately by the evaluator.
func RegisterAll(r *Registry, ctx *Context) {
	registerMath(r)
	registerTensor(r)
	registerComplex(r)
	registerStrings(r)
	registerGraph(r)
	registerIO(r, ctx)
}
