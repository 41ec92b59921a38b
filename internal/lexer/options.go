package lexer

import (
	"kvd/internal/diag"
	"kvd/internal/source"
)

type Options struct {
	// Reporter receives one diagnostic per malformed lexeme. May be nil:
	// malformed input still becomes token.Invalid either way.
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
