package parser

import (
	"fmt"
	"strings"

	"github.com/eddndev/achronyme-core/internal/lexer"
)

// Error is a syntax error with a source position.
type Error struct {
	Pos     lexer.Position
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.errors = append(p.errors, &Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// FormatError renders a syntax error with the offending source line and a
// caret under the error column. The CLI and the REPL do not call it; they
// print the plain Error text.
func FormatError(err *Error, source string, color bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Syntax error at line %d:%d\n", err.Pos.Line, err.Pos.Column))

	lines := strings.Split(source, "\n")
	if err.Pos.Line >= 1 && err.Pos.Line <= len(lines) {
		lineNum := fmt.Sprintf("%4d | ", err.Pos.Line)
		sb.WriteString(lineNum)
		sb.WriteString(lines[err.Pos.Line-1])
		sb.WriteString("\n")

		col := err.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNum)+col-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(err.Message)
	return sb.String()
}
