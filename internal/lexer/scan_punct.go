package lexer

import (
	"fmt"

	"kvd/internal/diag"
	"kvd/internal/token"
)

// scanPunct handles the single-byte tokens; anything else is one Invalid rune.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	switch lx.cursor.Peek() {
	case ',':
		lx.cursor.Bump()
		return lx.emit(token.Comma, start)
	case '{':
		lx.cursor.Bump()
		return lx.emit(token.LBrace, start)
	case '}':
		lx.cursor.Bump()
		return lx.emit(token.RBrace, start)
	case '[':
		lx.cursor.Bump()
		return lx.emit(token.LBracket, start)
	case ']':
		lx.cursor.Bump()
		return lx.emit(token.RBracket, start)
	case ':':
		lx.cursor.Bump()
		return lx.emit(token.Colon, start)
	}

	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", tok.Text))
	return tok
}
