package builtins

import (
	"fmt"

	"github.com/eddndev/achronyme-core/internal/runtime"
)

func registerIO(r *Registry, ctx *Context) {
	r.Register("print", runtime.Variadic, CategoryIO, "write values to the host output", printBuiltin(ctx))
}

// printBuiltin writes the display form of each argument, space-separated
// with a trailing newline, and returns the last argument so print can sit
// inside a pipe. Printing nothing yields Number(0).
func printBuiltin(ctx *Context) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		for n, arg := range args {
			if n > 0 {
				if _, err := fmt.Fprint(ctx.Output, " "); err != nil {
					return nil, err
				}
			}
			if _, err := fmt.Fprint(ctx.Output, runtime.Deref(arg).String()); err != nil {
				return nil, err
			}
		}
		if _, err := fmt.Fprintln(ctx.Output); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return &runtime.Number{Value: 0}, nil
		}
		return args[len(args)-1], nil
	}
}
