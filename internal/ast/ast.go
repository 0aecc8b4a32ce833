// Package ast defines the SOC abstract syntax tree consumed by the evaluator.
package ast

import (
	"strings"

	"github.com/eddndev/achronyme-core/internal/lexer"
)

// Node is the common interface of all AST nodes.
type Node interface {
	// Pos returns the source position of the node's first token.
	Pos() lexer.Position
	// String returns a canonical source-like rendering, used in error
	// messages and parser tests.
	String() string
}

// Statement is a node that appears at statement level.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered list of statements. Its value is the
// value of the last statement.
type Program struct {
	Statements []Statement
}

// Pos returns the position of the first statement, or line 1, column 1 for
// an empty program.
func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

// ExpressionStatement wraps an expression used at statement level.
type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expression
}

func (s *ExpressionStatement) statementNode()      {}
func (s *ExpressionStatement) Pos() lexer.Position { return s.Token.Pos }
func (s *ExpressionStatement) String() string      { return s.Expression.String() }

// LetStatement is an immutable binding: let name = value.
type LetStatement struct {
	Token lexer.Token
	Name  string
	Value Expression
}

func (s *LetStatement) statementNode()      {}
func (s *LetStatement) Pos() lexer.Position { return s.Token.Pos }
func (s *LetStatement) String() string      { return "let " + s.Name + " = " + s.Value.String() }

// MutStatement binds a name to a fresh mutable cell: mut name = value.
type MutStatement struct {
	Token lexer.Token
	Name  string
	Value Expression
}

func (s *MutStatement) statementNode()      {}
func (s *MutStatement) Pos() lexer.Position { return s.Token.Pos }
func (s *MutStatement) String() string      { return "mut " + s.Name + " = " + s.Value.String() }
