package lexer

import (
	"errors"
	"math"
	"strconv"

	"kvd/internal/diag"
	"kvd/internal/token"
)

// scanNumber scans 123 and 1.5. A Float needs digits on both sides of the
// '.', so ".5" is a stray '.' followed by an Integer.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.Integer

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.isNumberAfterDot() {
		kind = token.Float
		lx.cursor.Eat('.')
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	tok := lx.emit(kind, start)
	var err error
	if kind == token.Integer {
		tok.Int, err = strconv.ParseInt(tok.Text, 10, 64)
	} else {
		tok.Float, err = strconv.ParseFloat(tok.Text, 64)
		// an overflowing float saturates to +Inf instead of failing
		if errors.Is(err, strconv.ErrRange) && math.IsInf(tok.Float, 0) {
			err = nil
		}
	}
	if err != nil {
		lx.report(diag.LexBadNumber, tok.Span, "number literal out of range: "+tok.Text)
		return token.Token{Kind: token.Invalid, Span: tok.Span, Text: tok.Text}
	}
	return tok
}
