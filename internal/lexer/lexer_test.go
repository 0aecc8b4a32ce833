package lexer

import (
	"testing"
)

func TestNextTokenOperators(t *testing.T) {
	input := `+ - * / % ^ = == != < <= > >= && || ! => , ; : . ( ) [ ] { }`
	expected := []TokenType{
		PLUS, MINUS, ASTERISK, SLASH, PERCENT, CARET, ASSIGN, EQ, NOT_EQ,
		LT, LTE, GT, GTE, AND, OR, BANG, ARROW, COMMA, SEMICOLON, COLON,
		DOT, LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE, EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: expected %q, got %q (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenProgram(t *testing.T) {
	input := `let add = (a, b) => a + b; add(2, 3)`
	expected := []struct {
		typ     TokenType
		literal string
	}{
		{LET, "let"},
		{IDENT, "add"},
		{ASSIGN, "="},
		{LPAREN, "("},
		{IDENT, "a"},
		{COMMA, ","},
		{IDENT, "b"},
		{RPAREN, ")"},
		{ARROW, "=>"},
		{IDENT, "a"},
		{PLUS, "+"},
		{IDENT, "b"},
		{SEMICOLON, ";"},
		{IDENT, "add"},
		{LPAREN, "("},
		{NUMBER, "2"},
		{COMMA, ","},
		{NUMBER, "3"},
		{RPAREN, ")"},
		{EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ || tok.Literal != want.literal {
			t.Fatalf("token %d: expected (%q, %q), got (%q, %q)",
				i, want.typ, want.literal, tok.Type, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		typ     TokenType
		literal string
	}{
		{"42", NUMBER, "42"},
		{"3.14", NUMBER, "3.14"},
		{"1e10", NUMBER, "1e10"},
		{"2.5e-3", NUMBER, "2.5e-3"},
		{"0xff", NUMBER, "0xff"},
		{"0b1010", NUMBER, "0b1010"},
		{"2i", IMAG, "2"},
		{"0.5i", IMAG, "0.5"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.typ || tok.Literal != tt.literal {
			t.Errorf("%q: expected (%q, %q), got (%q, %q)",
				tt.input, tt.typ, tt.literal, tok.Type, tok.Literal)
		}
	}
}

func TestImaginarySuffixVsIdentifier(t *testing.T) {
	// "2i" is an imaginary literal but "2in" must not swallow the suffix.
	l := New("2index")
	tok := l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "2" {
		t.Fatalf("expected NUMBER 2, got (%q, %q)", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "index" {
		t.Fatalf("expected IDENT index, got (%q, %q)", tok.Type, tok.Literal)
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"let", LET},
		{"mut", MUT},
		{"do", DO},
		{"for", FOR},
		{"in", IN},
		{"true", TRUE},
		{"false", FALSE},
		{"rec", REC},
		{"self", SELF},
		{"Letter", IDENT},
		{"selfies", IDENT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		if tok := l.NextToken(); tok.Type != tt.typ {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.typ, tok.Type)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"quote \" end"`, `quote " end`},
		{`"π ≈ 3.14"`, "π ≈ 3.14"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != STRING || tok.Literal != tt.want {
			t.Errorf("%s: expected STRING %q, got (%q, %q)", tt.input, tt.want, tok.Type, tok.Literal)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"no end`)
	if tok := l.NextToken(); tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
}

func TestComments(t *testing.T) {
	l := New("1 # a comment\n2")
	if tok := l.NextToken(); tok.Literal != "1" {
		t.Fatalf("expected 1, got %q", tok.Literal)
	}
	if tok := l.NextToken(); tok.Literal != "2" {
		t.Fatalf("expected 2 after comment, got %q", tok.Literal)
	}
}

func TestPositions(t *testing.T) {
	l := New("a\n  b")
	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("a: expected 1:1, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 || tok.Pos.Column != 3 {
		t.Fatalf("b: expected 2:3, got %d:%d", tok.Pos.Line, tok.Pos.Column)
	}
}
