package lexer

import (
	"kvd/internal/diag"
	"kvd/internal/token"
)

// scanString scans "..." where a backslash escapes any following byte.
// Str holds the body without the quotes; escapes are not decoded.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Eat('"')
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Eat('"')
			tok := lx.emit(token.String, start)
			tok.Str = tok.Text[1 : len(tok.Text)-1]
			return tok
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
