package interp

import (
	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// evalForIn iterates a generator, tensor or vector, executing the body per
// element in a pushed scope. Generators stream element by element; they
// are not materialized up front. The loop's value is the last body value,
// Number(0) for an empty iterable.
func (i *Interpreter) evalForIn(node *ast.ForInExpression) (runtime.Value, error) {
	iterable, err := i.Eval(node.Iterable)
	if err != nil {
		return nil, err
	}
	iterable = runtime.Deref(iterable)

	var result runtime.Value = &runtime.Number{Value: 0}
	runBody := func(el runtime.Value) error {
		saved := i.env
		i.env = runtime.NewEnclosedEnvironment(saved)
		i.env.Define(node.Name, el)
		v, err := i.Eval(node.Body)
		i.env = saved
		if err != nil {
			return err
		}
		result = v
		return nil
	}

	if gen, ok := iterable.(*runtime.Generator); ok {
		for {
			el, more := gen.Next()
			if !more {
				return result, nil
			}
			if err := runBody(el); err != nil {
				return nil, err
			}
		}
	}

	elements, err := elementsOf(iterable, "for-in")
	if err != nil {
		return nil, err
	}
	for _, el := range elements {
		if err := runBody(el); err != nil {
			return nil, err
		}
	}
	return result, nil
}
