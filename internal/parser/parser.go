package parser

import (
	"kvd/internal/ast"
	"kvd/internal/diag"
	"kvd/internal/source"
	"kvd/internal/token"
)

type Options struct {
	// Reporter, when set, receives the parse failure as a diagnostic.
	Reporter diag.Reporter
}

// Parser is the state for one token sequence.
type Parser struct {
	tokens  []token.Token
	pos     int // index of the next token to load into peek
	current token.Token
	peek    token.Token
	opts    Options
}

// New returns a parser whose window is already primed: current holds the
// first token and peek the second.
func New(tokens []token.Token, opts Options) *Parser {
	p := &Parser{
		tokens:  tokens,
		current: token.Token{Kind: token.EOF},
		peek:    token.Token{Kind: token.EOF},
		opts:    opts,
	}
	p.advance()
	p.advance()
	return p
}

// Current returns the token under examination.
func (p *Parser) Current() token.Token { return p.current }

// Peek returns the lookahead token.
func (p *Parser) Peek() token.Token { return p.peek }

// advance shifts the window by one. An exhausted sequence reads as EOF.
func (p *Parser) advance() {
	p.current = p.peek
	if p.pos < len(p.tokens) {
		p.peek = p.tokens[p.pos]
		p.pos++
		return
	}
	p.peek = token.Token{Kind: token.EOF, Span: p.endSpan()}
}

func (p *Parser) endSpan() source.Span {
	if len(p.tokens) == 0 {
		return source.Span{}
	}
	last := p.tokens[len(p.tokens)-1].Span
	return source.Span{File: last.File, Start: last.End, End: last.End}
}

func (p *Parser) at(k token.Kind) bool {
	return p.current.Is(k)
}

// expect checks only the kind of the current token and advances past it.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, p.unexpected(k)
	}
	tok := p.current
	p.advance()
	return tok, nil
}

func (p *Parser) unexpected(expected ...token.Kind) error {
	return &UnexpectedTokenError{Token: p.current, Expected: expected}
}

// Parse parses one value starting at the current token.
func (p *Parser) Parse() (ast.Node, error) {
	tok := p.current
	switch tok.Kind {
	case token.LBrace:
		return p.parseObject()
	case token.LBracket:
		return p.parseList()
	case token.String, token.Ident:
		p.advance()
		return &ast.String{Value: tok.Str, Span: tok.Span}, nil
	case token.Integer:
		p.advance()
		return &ast.Integer{Value: tok.Int, Span: tok.Span}, nil
	case token.Float:
		p.advance()
		return &ast.Float{Value: tok.Float, Span: tok.Span}, nil
	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) parseObject() (ast.Node, error) {
	open, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	obj := ast.NewKeyValueList(open.Span)
	for !p.at(token.RBrace) {
		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		if err := obj.Append(member); err != nil {
			return nil, err
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance() // a trailing comma before '}' is fine
	}
	closing, err := p.expect(token.RBrace)
	if err != nil {
		return nil, err
	}
	obj.Span = open.Span.Cover(closing.Span)
	return obj, nil
}

// parseMember parses `key: value`. Numeric keys are kept as their source text.
func (p *Parser) parseMember() (ast.Node, error) {
	keyTok := p.current
	var key string
	switch keyTok.Kind {
	case token.String:
		key = keyTok.Str
	case token.Integer, token.Float:
		key = keyTok.Text
	default:
		return nil, p.unexpected(token.String, token.Integer, token.Float)
	}
	p.advance()

	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	value, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return &ast.KeyValue{
		Key:     key,
		KeySpan: keyTok.Span,
		Value:   value,
		Span:    keyTok.Span.Cover(value.Pos()),
	}, nil
}

func (p *Parser) parseList() (ast.Node, error) {
	open, err := p.expect(token.LBracket)
	if err != nil {
		return nil, err
	}
	list := &ast.List{Items: make([]ast.Node, 0)}
	if !p.at(token.RBracket) {
		for {
			item, err := p.Parse()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
			if !p.at(token.Comma) {
				break
			}
			p.advance() // no trailing comma: a value must follow
		}
	}
	closing, err := p.expect(token.RBracket)
	if err != nil {
		return nil, err
	}
	list.Span = open.Span.Cover(closing.Span)
	return list, nil
}
