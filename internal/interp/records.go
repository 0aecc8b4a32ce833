package interp

import (
	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/runtime"
)

// evalRecordLiteral builds a record in three phases: create the empty
// shared cell, bind self to it in a pushed scope, then evaluate and install
// each field in listed order. Lambda fields capture the pushed scope, so
// their bodies see self at call time; later fields can read earlier ones
// through self. Nested record literals shadow the outer self.
func (i *Interpreter) evalRecordLiteral(node *ast.RecordLiteral) (runtime.Value, error) {
	record := runtime.NewRecord()

	saved := i.env
	i.env = runtime.NewEnclosedEnvironment(saved)
	i.env.Define("self", record)
	defer func() { i.env = saved }()

	for _, field := range node.Fields {
		v, err := i.Eval(field.Value)
		if err != nil {
			return nil, err
		}
		if err := checkNoTailCall(v); err != nil {
			return nil, err
		}
		if field.Mutable {
			record.Define(field.Name, runtime.NewMutableRef(v))
		} else {
			record.Define(field.Name, v)
		}
	}
	return record, nil
}

// evalAssignExpression assigns to a mutable binding, a record field or a
// self field. The assigned value is the expression's result.
func (i *Interpreter) evalAssignExpression(node *ast.AssignExpression) (runtime.Value, error) {
	value, err := i.Eval(node.Value)
	if err != nil {
		return nil, err
	}
	if err := checkNoTailCall(value); err != nil {
		return nil, err
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		bound, ok := i.env.Get(target.Value)
		if !ok {
			return nil, runtime.NewNameError(target.Value)
		}
		ref, ok := bound.(*runtime.MutableRef)
		if !ok {
			return nil, runtime.NewTypeError("a mutable binding", bound, "assignment to "+target.Value)
		}
		ref.Set(value)
		return value, nil

	case *ast.FieldAccess:
		obj, err := i.Eval(target.Object)
		if err != nil {
			return nil, err
		}
		record, ok := runtime.Deref(obj).(*runtime.Record)
		if !ok {
			return nil, runtime.NewTypeError("RECORD", obj, "assignment to ."+target.Field)
		}
		record.Set(target.Field, value)
		return value, nil

	default:
		return nil, runtime.NewInvariantError("invalid assignment target")
	}
}
