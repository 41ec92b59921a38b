package parser

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"kvd/internal/ast"
	"kvd/internal/diag"
	"kvd/internal/lexer"
	"kvd/internal/source"
	"kvd/internal/token"
	"kvd/internal/trace"
)

// ParseTokens parses a whole document: exactly one value followed by EOF.
// On failure the returned node is nil and the error is an *UnexpectedTokenError.
func ParseTokens(tokens []token.Token, opts Options) (ast.Node, error) {
	p := New(tokens, opts)
	root, err := p.Parse()
	if err == nil && !p.at(token.EOF) {
		err = p.unexpected(token.EOF)
	}
	if err != nil {
		p.reportFailure(err)
		return nil, err
	}
	return root, nil
}

// ParseFile lexes and parses file. Lexer diagnostics go to the same reporter.
func ParseFile(ctx context.Context, file *source.File, opts Options) (ast.Node, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	lexSpan := trace.Begin(tracer, trace.ScopePass, "lex", parent)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	lexSpan.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")

	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", parent)
	root, err := ParseTokens(tokens, opts)
	if err != nil {
		parseSpan.End("error")
		return nil, err
	}
	parseSpan.End(ast.KindOf(root).String())
	return root, nil
}

// ParseString parses src as an anonymous in-memory document. The text is
// normalized like a loaded file (BOM, CRLF, NFC), so string values match
// what ParseFile yields for the same bytes on disk.
func ParseString(src string) (ast.Node, error) {
	fs := source.NewFileSet()
	id, err := fs.LoadReader("<string>", strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return ParseFile(context.Background(), fs.Get(id), Options{})
}

func (p *Parser) reportFailure(err error) {
	if p.opts.Reporter == nil {
		return
	}
	var ute *UnexpectedTokenError
	if !errors.As(err, &ute) {
		return
	}
	code := diag.SynUnexpectedToken
	if len(ute.Expected) == 1 && ute.Expected[0] == token.EOF {
		code = diag.SynTrailingInput
	}
	diag.ReportError(p.opts.Reporter, code, ute.Token.Span, ute.Error()).Emit()
}
