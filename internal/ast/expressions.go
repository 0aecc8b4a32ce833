package ast

import (
	"strconv"
	"strings"

	"github.com/eddndev/achronyme-core/internal/lexer"
)

// NumberLiteral is a real numeric literal.
type NumberLiteral struct {
	Token lexer.Token
	Value float64
}

func (e *NumberLiteral) expressionNode()     {}
func (e *NumberLiteral) Pos() lexer.Position { return e.Token.Pos }
func (e *NumberLiteral) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

// ImaginaryLiteral is an imaginary numeric literal such as 2i.
type ImaginaryLiteral struct {
	Token lexer.Token
	Value float64 // the imaginary part
}

func (e *ImaginaryLiteral) expressionNode()     {}
func (e *ImaginaryLiteral) Pos() lexer.Position { return e.Token.Pos }
func (e *ImaginaryLiteral) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64) + "i"
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()     {}
func (e *BooleanLiteral) Pos() lexer.Position { return e.Token.Pos }
func (e *BooleanLiteral) String() string      { return strconv.FormatBool(e.Value) }

// StringLiteral is a double-quoted string literal (already unescaped).
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (e *StringLiteral) expressionNode()     {}
func (e *StringLiteral) Pos() lexer.Position { return e.Token.Pos }
func (e *StringLiteral) String() string      { return strconv.Quote(e.Value) }

// Identifier is a name reference.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (e *Identifier) expressionNode()     {}
func (e *Identifier) Pos() lexer.Position { return e.Token.Pos }
func (e *Identifier) String() string      { return e.Value }

// SelfExpression is the reserved name self, legal only while a record
// literal is being evaluated or one of its methods executes.
type SelfExpression struct {
	Token lexer.Token
}

func (e *SelfExpression) expressionNode()     {}
func (e *SelfExpression) Pos() lexer.Position { return e.Token.Pos }
func (e *SelfExpression) String() string      { return "self" }

// RecExpression is the reserved name rec, bound inside every lambda
// application to the function being applied.
type RecExpression struct {
	Token lexer.Token
}

func (e *RecExpression) expressionNode()     {}
func (e *RecExpression) Pos() lexer.Position { return e.Token.Pos }
func (e *RecExpression) String() string      { return "rec" }

// PrefixExpression is a unary operation: -x, !x.
type PrefixExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

func (e *PrefixExpression) expressionNode()     {}
func (e *PrefixExpression) Pos() lexer.Position { return e.Token.Pos }
func (e *PrefixExpression) String() string {
	return "(" + e.Operator + e.Right.String() + ")"
}

// InfixExpression is a binary operation.
type InfixExpression struct {
	Token    lexer.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *InfixExpression) expressionNode()     {}
func (e *InfixExpression) Pos() lexer.Position { return e.Token.Pos }
func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// VectorLiteral is [e1, e2, ...]. Nested vector literals whose rows are
// homogeneous numeric tensors collapse into a higher-rank tensor at
// evaluation time, which is how matrix literals are expressed.
type VectorLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (e *VectorLiteral) expressionNode()     {}
func (e *VectorLiteral) Pos() lexer.Position { return e.Token.Pos }
func (e *VectorLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RecordField is one field of a record literal. Mutable marks fields
// declared with the mut prefix; they are stored as interior-mutable cells.
type RecordField struct {
	Name    string
	Mutable bool
	Value   Expression
}

// RecordLiteral is { f1: e1, mut f2: e2, ... }.
type RecordLiteral struct {
	Token  lexer.Token
	Fields []RecordField
}

func (e *RecordLiteral) expressionNode()     {}
func (e *RecordLiteral) Pos() lexer.Position { return e.Token.Pos }
func (e *RecordLiteral) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		prefix := ""
		if f.Mutable {
			prefix = "mut "
		}
		parts[i] = prefix + f.Name + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FieldAccess is record.field.
type FieldAccess struct {
	Token  lexer.Token
	Object Expression
	Field  string
}

func (e *FieldAccess) expressionNode()     {}
func (e *FieldAccess) Pos() lexer.Position { return e.Token.Pos }
func (e *FieldAccess) String() string      { return e.Object.String() + "." + e.Field }

// IndexExpression is t[i] or t[i, j, ...].
type IndexExpression struct {
	Token   lexer.Token
	Left    Expression
	Indices []Expression
}

func (e *IndexExpression) expressionNode()     {}
func (e *IndexExpression) Pos() lexer.Position { return e.Token.Pos }
func (e *IndexExpression) String() string {
	parts := make([]string, len(e.Indices))
	for i, ix := range e.Indices {
		parts[i] = ix.String()
	}
	return e.Left.String() + "[" + strings.Join(parts, ", ") + "]"
}

// CallExpression is callee(arg1, arg2, ...).
type CallExpression struct {
	Token     lexer.Token
	Callee    Expression
	Arguments []Expression
}

func (e *CallExpression) expressionNode()     {}
func (e *CallExpression) Pos() lexer.Position { return e.Token.Pos }
func (e *CallExpression) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// LambdaLiteral is (a, b) => body or x => body.
type LambdaLiteral struct {
	Token      lexer.Token
	Parameters []string
	Body       Expression
}

func (e *LambdaLiteral) expressionNode()     {}
func (e *LambdaLiteral) Pos() lexer.Position { return e.Token.Pos }
func (e *LambdaLiteral) String() string {
	return "(" + strings.Join(e.Parameters, ", ") + ") => " + e.Body.String()
}

// AssignExpression assigns to a mutable binding, a record field, or a
// self field: x = e, r.f = e, self.f = e.
type AssignExpression struct {
	Token  lexer.Token
	Target Expression // Identifier or FieldAccess
	Value  Expression
}

func (e *AssignExpression) expressionNode()     {}
func (e *AssignExpression) Pos() lexer.Position { return e.Token.Pos }
func (e *AssignExpression) String() string {
	return e.Target.String() + " = " + e.Value.String()
}

// DoBlock is do { s1; s2; ... }: statements evaluated in a pushed scope,
// yielding the value of the last statement.
type DoBlock struct {
	Token      lexer.Token
	Statements []Statement
}

func (e *DoBlock) expressionNode()     {}
func (e *DoBlock) Pos() lexer.Position { return e.Token.Pos }
func (e *DoBlock) String() string {
	parts := make([]string, len(e.Statements))
	for i, s := range e.Statements {
		parts[i] = s.String()
	}
	return "do { " + strings.Join(parts, "; ") + " }"
}

// ForInExpression is for name in iterable { body }.
type ForInExpression struct {
	Token    lexer.Token
	Name     string
	Iterable Expression
	Body     *DoBlock
}

func (e *ForInExpression) expressionNode()     {}
func (e *ForInExpression) Pos() lexer.Position { return e.Token.Pos }
func (e *ForInExpression) String() string {
	body := e.Body.String()
	return "for " + e.Name + " in " + e.Iterable.String() + " " + strings.TrimPrefix(body, "do ")
}
