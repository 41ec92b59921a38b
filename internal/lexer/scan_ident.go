package lexer

import (
	"kvd/internal/token"
)

// scanIdent scans [A-Za-z_]+. Digits end the identifier.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	for isIdentByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	tok.Str = tok.Text
	return tok
}
