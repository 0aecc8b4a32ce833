package parser

import (
	"strconv"

	"github.com/eddndev/achronyme-core/internal/ast"
	"github.com/eddndev/achronyme-core/internal/lexer"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}

	for precedence < p.curPrecedence() {
		switch p.cur().Type {
		case lexer.LPAREN:
			left = p.parseCallExpression(left)
		case lexer.LBRACKET:
			left = p.parseIndexExpression(left)
		case lexer.DOT:
			left = p.parseFieldAccess(left)
		case lexer.ASSIGN:
			left = p.parseAssignExpression(left)
		default:
			left = p.parseInfixExpression(left)
		}
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		return p.parseNumberLiteral()
	case lexer.IMAG:
		return p.parseImaginaryLiteral()
	case lexer.STRING:
		p.next()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case lexer.TRUE, lexer.FALSE:
		p.next()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Type == lexer.TRUE}
	case lexer.IDENT:
		// "x => body" is a single-parameter lambda.
		if p.peekIs(lexer.ARROW) {
			return p.parseSingleParamLambda()
		}
		p.next()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case lexer.SELF:
		p.next()
		return &ast.SelfExpression{Token: tok}
	case lexer.REC:
		p.next()
		return &ast.RecExpression{Token: tok}
	case lexer.MINUS, lexer.BANG:
		p.next()
		right := p.parseExpression(PREFIX)
		if right == nil {
			return nil
		}
		return &ast.PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
	case lexer.LPAREN:
		return p.parseParenOrLambda()
	case lexer.LBRACKET:
		return p.parseVectorLiteral()
	case lexer.LBRACE:
		return p.parseRecordLiteral()
	case lexer.DO:
		return p.parseDoBlock()
	case lexer.FOR:
		return p.parseForIn()
	default:
		p.errorf(tok.Pos, "unexpected token %q", tok.Literal)
		p.next()
		return nil
	}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.cur()
	p.next()
	value, err := parseNumber(tok.Literal)
	if err != nil {
		p.errorf(tok.Pos, "invalid number literal %q", tok.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: tok, Value: value}
}

func (p *Parser) parseImaginaryLiteral() ast.Expression {
	tok := p.cur()
	p.next()
	value, err := parseNumber(tok.Literal)
	if err != nil {
		p.errorf(tok.Pos, "invalid imaginary literal %q", tok.Literal)
		return nil
	}
	return &ast.ImaginaryLiteral{Token: tok, Value: value}
}

// parseNumber handles decimal, hexadecimal and binary spellings. Integer
// forms are stored as float64: SOC has a single real number type.
func parseNumber(literal string) (float64, error) {
	if len(literal) > 2 && literal[0] == '0' {
		switch literal[1] {
		case 'x', 'X':
			n, err := strconv.ParseUint(literal[2:], 16, 64)
			return float64(n), err
		case 'b', 'B':
			n, err := strconv.ParseUint(literal[2:], 2, 64)
			return float64(n), err
		}
	}
	return strconv.ParseFloat(literal, 64)
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.cur()
	precedence := p.curPrecedence()
	p.next()

	// Exponentiation is right-associative: 2^3^2 parses as 2^(3^2).
	if tok.Type == lexer.CARET {
		precedence--
	}
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{Token: tok, Operator: tok.Literal, Left: left, Right: right}
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	tok := p.cur()
	switch left.(type) {
	case *ast.Identifier, *ast.FieldAccess:
	default:
		p.errorf(tok.Pos, "invalid assignment target %q", left.String())
		return nil
	}
	p.next()
	// Right-associative: a = b = c nests rightward.
	value := p.parseExpression(ASSIGN - 1)
	if value == nil {
		return nil
	}
	return &ast.AssignExpression{Token: tok, Target: left, Value: value}
}

// parseParenOrLambda disambiguates "(x, y) => e" from "(e)". A speculative
// scan of the parameter list decides which production applies; on failure
// the position is reset and the parenthesized form is parsed.
func (p *Parser) parseParenOrLambda() ast.Expression {
	mark := p.mark()
	if lambda := p.tryParseLambdaParams(); lambda != nil {
		return lambda
	}
	p.reset(mark)

	p.next()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return expr
}

// tryParseLambdaParams attempts "( [ident {, ident}] ) =>" and, on
// success, parses the full lambda. Returns nil without reporting errors
// when the shape does not match.
func (p *Parser) tryParseLambdaParams() ast.Expression {
	tok := p.cur() // LPAREN
	p.next()

	var params []string
	if !p.curIs(lexer.RPAREN) {
		for {
			if !p.curIs(lexer.IDENT) {
				return nil
			}
			params = append(params, p.cur().Literal)
			p.next()
			if p.curIs(lexer.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if !p.curIs(lexer.RPAREN) {
		return nil
	}
	p.next()
	if !p.curIs(lexer.ARROW) {
		return nil
	}
	p.next()

	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	return &ast.LambdaLiteral{Token: tok, Parameters: params, Body: body}
}

func (p *Parser) parseSingleParamLambda() ast.Expression {
	tok := p.cur()
	params := []string{tok.Literal}
	p.next() // identifier
	p.next() // arrow
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	return &ast.LambdaLiteral{Token: tok, Parameters: params, Body: body}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.cur()
	args := p.parseExpressionList(lexer.RPAREN)
	if args == nil {
		return nil
	}
	return &ast.CallExpression{Token: tok, Callee: callee, Arguments: args}
}

// parseExpressionList parses "( e1, e2, ... end" style lists. The current
// token must be the opening delimiter; end is the closing one.
func (p *Parser) parseExpressionList(end lexer.TokenType) []ast.Expression {
	p.next() // opening delimiter
	list := []ast.Expression{}
	if p.curIs(end) {
		p.next()
		return list
	}
	for {
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		list = append(list, expr)
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	if !p.expect(end) {
		return nil
	}
	return list
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.cur()
	indices := p.parseExpressionList(lexer.RBRACKET)
	if indices == nil {
		return nil
	}
	if len(indices) == 0 {
		p.errorf(tok.Pos, "index expression requires at least one index")
		return nil
	}
	return &ast.IndexExpression{Token: tok, Left: left, Indices: indices}
}

func (p *Parser) parseFieldAccess(left ast.Expression) ast.Expression {
	tok := p.cur()
	p.next()
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.cur().Pos, "expected field name after %q, found %q", ".", p.cur().Literal)
		return nil
	}
	field := p.cur().Literal
	p.next()
	return &ast.FieldAccess{Token: tok, Object: left, Field: field}
}

func (p *Parser) parseVectorLiteral() ast.Expression {
	tok := p.cur()
	elements := p.parseExpressionList(lexer.RBRACKET)
	if elements == nil {
		return nil
	}
	return &ast.VectorLiteral{Token: tok, Elements: elements}
}

func (p *Parser) parseRecordLiteral() ast.Expression {
	tok := p.cur()
	p.next() // {
	record := &ast.RecordLiteral{Token: tok}

	if p.curIs(lexer.RBRACE) {
		p.next()
		return record
	}
	for {
		mutable := false
		if p.curIs(lexer.MUT) {
			mutable = true
			p.next()
		}
		if !p.curIs(lexer.IDENT) {
			p.errorf(p.cur().Pos, "expected field name in record literal, found %q", p.cur().Literal)
			return nil
		}
		name := p.cur().Literal
		p.next()
		if !p.expect(lexer.COLON) {
			return nil
		}
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		record.Fields = append(record.Fields, ast.RecordField{Name: name, Mutable: mutable, Value: value})
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return record
}

func (p *Parser) parseDoBlock() ast.Expression {
	tok := p.cur()
	p.next() // do
	if !p.expect(lexer.LBRACE) {
		return nil
	}
	block := &ast.DoBlock{Token: tok}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SEMICOLON) {
			p.next()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if !p.curIs(lexer.RBRACE) && !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.EOF) {
			p.errorf(p.cur().Pos, "expected %q between statements, found %q", ";", p.cur().Literal)
			p.synchronize()
		}
	}
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return block
}

func (p *Parser) parseForIn() ast.Expression {
	tok := p.cur()
	p.next() // for
	if !p.curIs(lexer.IDENT) {
		p.errorf(p.cur().Pos, "expected loop variable after %q, found %q", "for", p.cur().Literal)
		return nil
	}
	name := p.cur().Literal
	p.next()
	if !p.expect(lexer.IN) {
		return nil
	}
	iterable := p.parseExpression(LOWEST)
	if iterable == nil {
		return nil
	}
	if !p.curIs(lexer.LBRACE) {
		p.errorf(p.cur().Pos, "expected %q to open loop body, found %q", "{", p.cur().Literal)
		return nil
	}
	bodyTok := p.cur()
	p.next()
	body := &ast.DoBlock{Token: bodyTok}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SEMICOLON) {
			p.next()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			body.Statements = append(body.Statements, stmt)
		}
		if !p.curIs(lexer.RBRACE) && !p.curIs(lexer.SEMICOLON) && !p.curIs(lexer.EOF) {
			p.errorf(p.cur().Pos, "expected %q between statements, found %q", ";", p.cur().Literal)
			p.synchronize()
		}
	}
	if !p.expect(lexer.RBRACE) {
		return nil
	}
	return &ast.ForInExpression{Token: tok, Name: name, Iterable: iterable, Body: body}
}
