// Package parser turns SOC tokens into the AST consumed by the evaluator.
//
// The parser is a Pratt (top-down operator precedence) parser over a
// pre-lexed token slice. Buffering the full token stream keeps arbitrary
// lookahead cheap, which the lambda/grouping ambiguity needs: "(a, b) => e"
// and "(a + b)" share a prefix and are disambiguated by scanning ahead for
// the arrow.
package parser

import (
	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/lexer"
)

// Operator precedence levels, lowest first.
const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	POWER       // ^ (right-associative, binds tighter than unary minus)
	CALL        // f(x), r.f, t[i]
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   ASSIGN,
	lexer.OR:       OR,
	lexer.AND:      AND,
	lexer.EQ:       EQUALS,
	lexer.NOT_EQ:   EQUALS,
	lexer.LT:       LESSGREATER,
	lexer.LTE:      LESSGREATER,
	lexer.GT:       LESSGREATER,
	lexer.GTE:      LESSGREATER,
	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.CARET:    POWER,
	lexer.LPAREN:   CALL,
	lexer.LBRACKET: CALL,
	lexer.DOT:      CALL,
}

// Parser consumes a token slice and produces an ast.Program.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []*Error
}

// New lexes the given source and returns a parser positioned at the first
// token.
func New(source string) *Parser {
	l := lexer.New(source)
	var tokens []lexer.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return &Parser{tokens: tokens}
}

// Errors returns the syntax errors collected during parsing.
func (p *Parser) Errors() []*Error { return p.errors }

func (p *Parser) cur() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// mark and reset implement backtracking for speculative parses.
func (p *Parser) mark() int      { return p.pos }
func (p *Parser) reset(mark int) { p.pos = mark }

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek().Type == t }

// expect consumes the current token when it has the wanted type, otherwise
// records a syntax error and leaves the position unchanged.
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curIs(t) {
		p.next()
		return true
	}
	p.errorf(p.cur().Pos, "expected %q, found %q", string(t), p.cur().Literal)
	return false
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur().Type]; ok {
		return prec
	}
	return LOWEST
}

// Parse parses the whole input as a program. Syntax errors are collected
// rather than aborting; callers check Errors() before using the result.
func (p *Parser) Parse() *ast.Program {
	program := &ast.Program{}
	for !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SEMICOLON) {
			p.next()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if !p.curIs(lexer.EOF) && !p.curIs(lexer.SEMICOLON) {
			p.errorf(p.cur().Pos, "expected %q between statements, found %q", ";", p.cur().Literal)
			p.synchronize()
			continue
		}
	}
	return program
}

// synchronize skips tokens until a statement boundary so that one syntax
// error does not cascade into dozens.
func (p *Parser) synchronize() {
	for !p.curIs(lexer.EOF) && !p.curIs(lexer.SEMICOLON) {
		p.next()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.LET:
		return p.parseLetStatement()
	case lexer.MUT:
		return p.parseMutStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.cur()
	p.next()
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.cur().Pos, "expected identifier after %q, found %q", "let", p.cur().Literal)
		p.synchronize()
		return nil
	}
	name := p.cur().Literal
	p.next()
	if !p.expect(lexer.ASSIGN) {
		p.synchronize()
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.LetStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseMutStatement() ast.Statement {
	tok := p.cur()
	p.next()
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.cur().Pos, "expected identifier after %q, found %q", "mut", p.cur().Literal)
		p.synchronize()
		return nil
	}
	name := p.cur().Literal
	p.next()
	if !p.expect(lexer.ASSIGN) {
		p.synchronize()
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.MutStatement{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.synchronize()
		return nil
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}
