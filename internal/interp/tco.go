package interp

import (
	"github.com/eddndev/achronyme-core/internal/ast"
)

// IsTailRecursive reports whether a lambda body is tail-recursive: every
// occurrence of rec within it is a direct call in tail position. Bodies
// that never mention rec are trivially tail-recursive, but the trampoline
// then has nothing to intercept and behaves like a plain application.
//
// Tail positions: the body itself; both branches of if (not the
// condition); every value and the default of piecewise (not the
// predicates); the last statement of a do-block. Everywhere else — operator
// operands, vector and record elements, index and field targets, arguments
// to any call other than rec itself — rec is not in tail position, and a
// bare rec used as a value never is.
func IsTailRecursive(body ast.Expression) bool {
	return recOnlyInTailPosition(body, true)
}

// recOnlyInTailPosition walks the tree; tail carries whether the current
// node is in tail position with respect to the enclosing lambda.
func recOnlyInTailPosition(node ast.Node, tail bool) bool {
	switch n := node.(type) {
	case *ast.RecExpression:
		// A bare rec (not a call callee) is a value use, never a tail call.
		return false

	case *ast.CallExpression:
		if _, isRec := n.Callee.(*ast.RecExpression); isRec {
			if !tail {
				return false
			}
			for _, arg := range n.Arguments {
				if !recOnlyInTailPosition(arg, false) {
					return false
				}
			}
			return true
		}
		if name, ok := n.Callee.(*ast.Identifier); ok {
			switch name.Value {
			case "if":
				return ifBranchesTail(n.Arguments, tail)
			case "piecewise":
				return piecewiseBranchesTail(n.Arguments, tail)
			}
		}
		if !recOnlyInTailPosition(n.Callee, false) {
			return false
		}
		for _, arg := range n.Arguments {
			if !recOnlyInTailPosition(arg, false) {
				return false
			}
		}
		return true

	case *ast.DoBlock:
		for idx, stmt := range n.Statements {
			last := idx == len(n.Statements)-1
			if !statementTail(stmt, tail && last) {
				return false
			}
		}
		return true

	case *ast.LambdaLiteral:
		// rec inside a nested lambda refers to that lambda, not this one.
		return true

	case *ast.PrefixExpression:
		return recOnlyInTailPosition(n.Right, false)
	case *ast.InfixExpression:
		return recOnlyInTailPosition(n.Left, false) && recOnlyInTailPosition(n.Right, false)
	case *ast.VectorLiteral:
		for _, el := range n.Elements {
			if !recOnlyInTailPosition(el, false) {
				return false
			}
		}
		return true
	case *ast.RecordLiteral:
		for _, f := range n.Fields {
			if !recOnlyInTailPosition(f.Value, false) {
				return false
			}
		}
		return true
	case *ast.FieldAccess:
		return recOnlyInTailPosition(n.Object, false)
	case *ast.IndexExpression:
		if !recOnlyInTailPosition(n.Left, false) {
			return false
		}
		for _, ix := range n.Indices {
			if !recOnlyInTailPosition(ix, false) {
				return false
			}
		}
		return true
	case *ast.AssignExpression:
		return recOnlyInTailPosition(n.Target, false) && recOnlyInTailPosition(n.Value, false)
	case *ast.ForInExpression:
		// The loop body value repeats per element; a marker there would
		// leak, so neither position is tail.
		if !recOnlyInTailPosition(n.Iterable, false) {
			return false
		}
		return recOnlyInTailPosition(n.Body, false)

	default:
		// Literals, identifiers, self: no rec underneath.
		return true
	}
}

func statementTail(stmt ast.Statement, tail bool) bool {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return recOnlyInTailPosition(s.Expression, tail)
	case *ast.LetStatement:
		// A binding's RHS feeds the environment, not the block result.
		return recOnlyInTailPosition(s.Value, false)
	case *ast.MutStatement:
		return recOnlyInTailPosition(s.Value, false)
	default:
		return true
	}
}

// ifBranchesTail: if(cond, then, else) keeps tail position in both
// branches; the condition is never a tail position.
func ifBranchesTail(args []ast.Expression, tail bool) bool {
	for idx, arg := range args {
		argTail := tail && idx > 0
		if !recOnlyInTailPosition(arg, argTail) {
			return false
		}
	}
	return true
}

// piecewiseBranchesTail: every [predicate, value] pair keeps tail position
// in the value; a trailing default keeps it as well.
func piecewiseBranchesTail(args []ast.Expression, tail bool) bool {
	for _, arg := range args {
		if pair, ok := arg.(*ast.VectorLiteral); ok && len(pair.Elements) == 2 {
			if !recOnlyInTailPosition(pair.Elements[0], false) {
				return false
			}
			if !recOnlyInTailPosition(pair.Elements[1], tail) {
				return false
			}
			continue
		}
		// Default branch.
		if !recOnlyInTailPosition(arg, tail) {
			return false
		}
	}
	return true
}
